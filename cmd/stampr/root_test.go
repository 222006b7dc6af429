// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/stampr/pkg/operation"
)

// 🧪 testOptions isolates the command from the process environment
func testOptions(environ ...string) *rootOptions {
	return &rootOptions{
		environ:  func() []string { return environ },
		discover: func() string { return "" },
	}
}

func execute(t *testing.T, opts *rootOptions, args ...string) (string, string, error) {
	t.Helper()
	pterm.DisableStyling()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func readNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

var prefixed = regexp.MustCompile(`^\d{6}_\d{6}_`)

func TestRootCopy(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "in")
	out := filepath.Join(tmp, "out")
	logFile := filepath.Join(tmp, "stampr.log")
	writeFiles(t, in, "a.txt", "b.pdf", "c.TXT")

	stdout, stderr, err := execute(t, testOptions(), "-i", in, "-o", out, "-c", "-e", "txt", "--log-file", logFile)
	require.NoError(t, err)

	names := readNames(t, out)
	require.Len(t, names, 2)
	for _, name := range names {
		assert.Regexp(t, prefixed, name)
	}
	assert.ElementsMatch(t, []string{"a.txt", "b.pdf", "c.TXT"}, readNames(t, in), "copy keeps sources")

	assert.Contains(t, stdout, "Succeeded")
	assert.Contains(t, stdout, "2 of 2 files placed")
	assert.Contains(t, stderr, "Starting file renaming process...")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	logs := string(data)
	assert.Contains(t, logs, "INFO - Starting file renaming process...")
	assert.Contains(t, logs, "INFO - Found 2 files to process")
	assert.Contains(t, logs, "INFO - Processing complete: 2 successful, 0 errors")
	assert.Contains(t, logs, "INFO - File renaming process completed")
}

func TestRootMoveFromEnvironment(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "in")
	out := filepath.Join(tmp, "nested", "out")
	writeFiles(t, in, "notes")

	opts := testOptions("STAMPR_INPUT="+in, "STAMPR_DESTINATION="+out, "STAMPR_LOG_FILE="+filepath.Join(tmp, "env.log"))
	_, _, err := execute(t, opts)
	require.NoError(t, err)

	assert.Empty(t, readNames(t, in), "move removes sources")
	names := readNames(t, out)
	require.Len(t, names, 1)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}_\d{6}_notes$`), names[0])
	assert.FileExists(t, filepath.Join(tmp, "env.log"))
}

func TestRootMissingInput(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")
	logFile := filepath.Join(tmp, "stampr.log")

	_, stderr, err := execute(t, testOptions(), "-i", filepath.Join(tmp, "nope"), "-o", out, "--log-file", logFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, operation.ErrInputMissing))
	assert.NoDirExists(t, out)

	var printed bytes.Buffer
	reportError(&printed, err)
	assert.Empty(t, printed.String(), "the runner already logged it")
	assert.Equal(t, 1, strings.Count(strings.ToLower(stderr), "does not exist"), "reported once")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ERROR - Input directory does not exist")
	assert.NotContains(t, string(data), "File renaming process completed")
}

func TestRootSingleFile(t *testing.T) {
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")
	logFile := filepath.Join(tmp, "stampr.log")

	t.Run("missing", func(t *testing.T) {
		_, _, err := execute(t, testOptions(), "-f", filepath.Join(tmp, "ghost.pdf"), "-o", out, "--log-file", logFile)
		require.NoError(t, err)
		assert.NoDirExists(t, out)

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "File does not exist")
		assert.Contains(t, string(data), "Failed to process file:")
	})

	t.Run("present", func(t *testing.T) {
		writeFiles(t, filepath.Join(tmp, "in"), "report.pdf", "other.pdf")
		stdout, _, err := execute(t, testOptions(), "-f", filepath.Join(tmp, "in", "report.pdf"), "-o", out, "--log-file", logFile)
		require.NoError(t, err)
		assert.NotContains(t, stdout, "Succeeded", "no totals table for a single file")
		assert.NotContains(t, stdout, "files placed")

		names := readNames(t, out)
		require.Len(t, names, 1)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}_\d{6}_report\.pdf$`), names[0])
		assert.Equal(t, []string{"other.pdf"}, readNames(t, filepath.Join(tmp, "in")))

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Successfully processed file: "+names[0])
	})
}

func TestResolveConfigPrecedence(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "stampr.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
input: /from/file
destination: /file/out
mode: copy
extensions: [".jpg"]
collision_cap: 50
`), 0o644))

	tests := []struct {
		name        string
		environ     []string
		args        []string
		errContains string
	}{
		{
			name: "file_only",
			args: []string{"--config", cfgPath},
		},
		{
			name:    "env_over_file",
			environ: []string{"STAMPR_DESTINATION=/env/out", "STAMPR_EXTENSIONS=png,gif"},
			args:    []string{"--config", cfgPath},
		},
		{
			name:    "flags_over_env",
			environ: []string{"STAMPR_DESTINATION=/env/out"},
			args:    []string{"--config", cfgPath, "-o", "/flag/out", "--collision-cap", "7"},
		},
		{
			name:        "invalid_cap",
			args:        []string{"--collision-cap=-1"},
			errContains: "collision_cap",
		},
		{
			name:        "missing_config",
			args:        []string{"--config", filepath.Join(tmp, "nope.yaml")},
			errContains: "loading config",
		},
	}

	want := map[string]struct {
		destination  string
		extensions   []string
		collisionCap int
	}{
		"file_only":      {destination: "/file/out", extensions: []string{".jpg"}, collisionCap: 50},
		"env_over_file":  {destination: "/env/out", extensions: []string{".png", ".gif"}, collisionCap: 50},
		"flags_over_env": {destination: "/flag/out", extensions: []string{".jpg"}, collisionCap: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(tt.environ...)
			cmd := newRootCmd(opts)
			require.NoError(t, cmd.ParseFlags(tt.args))

			cfg, err := opts.resolveConfig(context.Background(), cmd, cmd.Flags().Args())
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)

			w := want[tt.name]
			assert.Equal(t, "/from/file", cfg.Input)
			assert.Equal(t, "copy", cfg.Mode)
			assert.Equal(t, w.destination, cfg.Destination)
			assert.Equal(t, w.extensions, cfg.Extensions)
			assert.Equal(t, w.collisionCap, cfg.CollisionCap)
		})
	}
}

func TestRootExtensions(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		want        int
		errContains string
	}{
		{name: "space_separated_value", args: []string{"-e", ".txt .pdf"}, want: 2},
		{name: "separate_arguments", args: []string{"-e", ".txt", ".pdf"}, want: 2},
		{name: "comma_separated", args: []string{"-e", "txt,PDF"}, want: 2},
		{name: "repeated_flag", args: []string{"-e", ".txt", "-e", ".jpg"}, want: 2},
		{name: "single", args: []string{"-e", ".jpg"}, want: 1},
		{name: "stray_argument", args: []string{"extra"}, errContains: `unexpected argument "extra"`},
		{name: "path_after_extensions", args: []string{"-e", ".txt", "./in"}, errContains: "extensions start with a dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			in := filepath.Join(tmp, "in")
			out := filepath.Join(tmp, "out")
			writeFiles(t, in, "a.txt", "b.pdf", "c.jpg")

			args := append([]string{"-i", in, "-o", out, "-c", "--log-file", filepath.Join(tmp, "stampr.log")}, tt.args...)
			_, _, err := execute(t, testOptions(), args...)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.NoDirExists(t, out)
				return
			}
			require.NoError(t, err)
			assert.Len(t, readNames(t, out), tt.want)
		})
	}
}

func TestSwitchesOverrideConfig(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "stampr.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input: /in\ndestination: /out\nmode: copy\ndebug: true\n"), 0o644))

	tests := []struct {
		name      string
		args      []string
		wantMode  string
		wantDebug bool
	}{
		{name: "config_only", args: nil, wantMode: "copy", wantDebug: true},
		{name: "move_flag", args: []string{"--move"}, wantMode: "move", wantDebug: true},
		{name: "copy_false", args: []string{"--copy=false"}, wantMode: "move", wantDebug: true},
		{name: "debug_off", args: []string{"--debug=false"}, wantMode: "copy", wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			cmd := newRootCmd(opts)
			require.NoError(t, cmd.ParseFlags(append([]string{"--config", cfgPath}, tt.args...)))

			cfg, err := opts.resolveConfig(context.Background(), cmd, cmd.Flags().Args())
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, cfg.Mode)
			assert.Equal(t, tt.wantDebug, cfg.Debug)
		})
	}

	_, _, err := execute(t, testOptions(), "--config", cfgPath, "--copy", "--move")
	require.Error(t, err, "copy and move are exclusive")
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("loading config: boom"))
	assert.Contains(t, buf.String(), "loading config: boom")

	buf.Reset()
	reportError(&buf, &reportedError{err: errors.New("already logged")})
	assert.Empty(t, buf.String())
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, testOptions(), "version", "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)

	stdout, _, err = execute(t, testOptions(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "stampr version info")
}
