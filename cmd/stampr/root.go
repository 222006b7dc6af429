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
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/stampr/pkg/config"
	"github.com/walteh/stampr/pkg/log"
	"github.com/walteh/stampr/pkg/operation"
	"github.com/walteh/stampr/pkg/placement"
	"github.com/walteh/stampr/pkg/status"
	"github.com/walteh/stampr/pkg/timestamp"
)

// 🔧 rootOptions holds the flag values and process hooks of the root command
type rootOptions struct {
	input        string
	output       string
	copy         bool
	move         bool
	extensions   []string
	file         string
	ignore       []string
	collisionCap int
	logFile      string
	configFile   string
	debug        bool

	environ  func() []string
	discover func() string
}

func defaultRootOptions() *rootOptions {
	return &rootOptions{
		environ:  os.Environ,
		discover: config.Discover,
	}
}

// 🌱 newRootCmd creates the stampr command
func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stampr",
		Short: "Prefix files with their creation time and move or copy them",
		Long: `stampr renames every file in an input directory (or a single file) to
yymmdd_hhmmss_<name>, using the file's creation time, and moves or copies it
into an output directory. Name collisions get a _001, _002, ... suffix.`,
		Args:          extensionArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", config.DefaultInput, "input directory")
	flags.StringVarP(&opts.output, "output", "o", config.DefaultOutput, "output directory")
	flags.BoolVarP(&opts.copy, "copy", "c", false, "copy files instead of moving them")
	flags.BoolVar(&opts.move, "move", false, "move files, overriding a configured copy mode")
	flags.StringSliceVarP(&opts.extensions, "extensions", "e", nil, "file extensions to process, e.g. -e .jpg .png or -e .jpg,.png")
	flags.StringVarP(&opts.file, "file", "f", "", "process a single file instead of a directory")
	flags.StringSliceVar(&opts.ignore, "ignore", nil, "glob patterns of file names to skip")
	flags.IntVar(&opts.collisionCap, "collision-cap", placement.DefaultCollisionCap, "highest collision counter tried per name")
	flags.StringVar(&opts.logFile, "log-file", config.DefaultLogFile, "log file, appended to")
	flags.StringVar(&opts.configFile, "config", "", "config file (yaml, json or hcl)")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	cmd.MarkFlagsMutuallyExclusive("copy", "move")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// extensionArgs accepts positional arguments only as further extensions
// after -e, so that "-e .txt .pdf" works.
func extensionArgs(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if !cmd.Flags().Changed("extensions") {
			return errors.Errorf("unexpected argument %q", arg)
		}
		if !strings.HasPrefix(arg, ".") || strings.ContainsAny(arg, `/\`) {
			return errors.Errorf("unexpected argument %q, extensions start with a dot", arg)
		}
	}
	return nil
}

// resolveConfig layers defaults, the config file, STAMPR_* variables and the
// flags set on the command line, in that order.
func (o *rootOptions) resolveConfig(ctx context.Context, cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	path := o.configFile
	if path == "" && o.discover != nil {
		path = o.discover()
	}
	if path != "" {
		fileCfg, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg.Merge(fileCfg)
	}

	if o.environ != nil {
		envCfg, err := config.FromEnviron(o.environ())
		if err != nil {
			return nil, errors.Errorf("loading environment: %w", err)
		}
		cfg.Merge(envCfg)
	}

	cfg.Merge(o.flagConfig(cmd, args))
	o.applySwitches(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// flagConfig returns a partial config holding only the flags that were set.
// Positional args are extensions following -e.
func (o *rootOptions) flagConfig(cmd *cobra.Command, args []string) *config.Config {
	changed := cmd.Flags().Changed
	cfg := &config.Config{}
	if changed("input") {
		cfg.Input = o.input
	}
	if changed("output") {
		cfg.Destination = o.output
	}
	if changed("extensions") {
		cfg.Extensions = append(append([]string(nil), o.extensions...), args...)
	}
	if changed("file") {
		cfg.File = o.file
	}
	if changed("ignore") {
		cfg.Ignore = o.ignore
	}
	if changed("collision-cap") {
		cfg.CollisionCap = o.collisionCap
	}
	if changed("log-file") {
		cfg.LogFile = o.logFile
	}
	return cfg
}

// applySwitches sets the mode and debug flags last. Merge only turns
// values on, while these flags must also be able to turn them off.
func (o *rootOptions) applySwitches(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("copy") {
		cfg.Mode = string(placement.ModeMove)
		if o.copy {
			cfg.Mode = string(placement.ModeCopy)
		}
	}
	if changed("move") && o.move {
		cfg.Mode = string(placement.ModeMove)
	}
	if changed("debug") {
		cfg.Debug = o.debug
	}
}

// reportedError marks an error that has already been written to the log.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

// 🚀 run resolves the configuration and processes the files
func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := o.resolveConfig(ctx, cmd, args)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	logger, err := log.Open(cfg.LogFile, cmd.ErrOrStderr(), level)
	if err != nil {
		return errors.Errorf("setting up logging: %w", err)
	}
	defer logger.Close()

	logger.Info("Starting file renaming process...")
	logger.Debugf("configuration: %s", cfg)

	probe := cfg.Input
	if cfg.File != "" {
		probe = cfg.File
	}
	resolver := timestamp.Detect(probe)
	logger.Debugf("timestamp source: %s", resolver.Capability())

	fs := afero.NewOsFs()
	engine, err := placement.New(placement.Options{
		Fs:           fs,
		Resolver:     resolver,
		CollisionCap: cfg.CollisionCap,
	})
	if err != nil {
		return errors.Errorf("creating placement engine: %w", err)
	}

	formatter := status.NewDefaultFileFormatter()
	runner, err := operation.NewRunner(operation.Options{
		Placer:  engine,
		Logger:  logger,
		Fs:      fs,
		Tracker: status.NewTracker(formatter),
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	summary, err := runner.Run(ctx, cfg)
	if err != nil {
		return &reportedError{err: err}
	}

	if err := renderSummary(cmd.OutOrStdout(), formatter, cfg, summary); err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}

	logger.Info("File renaming process completed")
	return nil
}
