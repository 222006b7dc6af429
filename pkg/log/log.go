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

// Package log writes the run log: every line goes to an interactive console
// sink and to an append-only log file, both rendered as
//
//	<timestamp> - <LEVEL> - <message>
//
// A Logger is created once by the caller and passed explicitly to whatever
// needs it. Nothing here touches zerolog's global state.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// TimeFormat is the timestamp layout of every log line.
const TimeFormat = "2006-01-02 15:04:05"

// 🎯 FileOperation is one file's outcome as reported to the log
type FileOperation struct {
	Action      string // "Moved" or "Copied"
	Source      string // original base name
	Destination string // resolved destination name, empty on failure
	Err         error  // failure detail
}

// 🔧 Options configures a Logger
type Options struct {
	Console io.Writer     // interactive sink, nil disables it
	File    io.Writer     // persistent sink, nil disables it
	Level   zerolog.Level // minimum level written to both sinks
	NoColor bool          // disable ANSI colors on the console sink
}

// 🎯 Logger handles leveled logging to the console and the log file
type Logger struct {
	zlog   zerolog.Logger
	closer io.Closer
}

// 🏭 New creates a new logger writing to the sinks in opts
func New(opts Options) *Logger {
	var sinks []io.Writer
	if opts.Console != nil {
		sinks = append(sinks, newSink(opts.Console, opts.NoColor))
	}
	if opts.File != nil {
		sinks = append(sinks, newSink(opts.File, true))
	}

	var out io.Writer = io.Discard
	if len(sinks) > 0 {
		out = zerolog.MultiLevelWriter(sinks...)
	}

	return &Logger{
		zlog: zerolog.New(out).Level(opts.Level).With().Timestamp().Logger(),
	}
}

// 📂 Open creates a logger whose persistent sink is the file at path, opened
// for appending. Call Close when done.
func Open(path string, console io.Writer, level zerolog.Level) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Errorf("opening log file: %w", err)
	}

	l := New(Options{Console: console, File: f, Level: level, NoColor: color.NoColor})
	l.closer = f
	return l, nil
}

// Close closes the log file if the logger owns one.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// With returns a logger that appends key=value to every line.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{
		zlog:   l.zlog.With().Str(key, value).Logger(),
		closer: nil,
	}
}

// 📝 LogFileOperation logs the outcome of one file
func (l *Logger) LogFileOperation(op FileOperation) {
	if op.Err != nil {
		l.zlog.Error().Msgf("Failed to process %s: %v", op.Source, op.Err)
		return
	}
	l.zlog.Info().Msgf("%s: %s -> %s", op.Action, op.Source, op.Destination)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.zlog.Error().Msg(msg)
}

// 📝 Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.zlog.Debug().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

// newSink renders events as "<timestamp> - <LEVEL> - <message>" followed by
// any fields.
func newSink(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:     out,
		NoColor: noColor,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FormatTimestamp: formatTimestamp,
		FormatLevel: func(i interface{}) string {
			return formatLevel(i, noColor)
		},
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
	}
}

func formatTimestamp(i interface{}) string {
	s, ok := i.(string)
	if !ok {
		return fmt.Sprint(i) + " -"
	}
	t, err := time.Parse(zerolog.TimeFieldFormat, s)
	if err != nil {
		return s + " -"
	}
	return t.Local().Format(TimeFormat) + " -"
}

// 🎨 level names and console colors
var levelNames = map[string]struct {
	name  string
	color color.Attribute
}{
	zerolog.LevelTraceValue: {"TRACE", color.FgHiBlack},
	zerolog.LevelDebugValue: {"DEBUG", color.FgCyan},
	zerolog.LevelInfoValue:  {"INFO", color.FgBlue},
	zerolog.LevelWarnValue:  {"WARNING", color.FgYellow},
	zerolog.LevelErrorValue: {"ERROR", color.FgRed},
	zerolog.LevelFatalValue: {"CRITICAL", color.FgRed},
	zerolog.LevelPanicValue: {"CRITICAL", color.FgRed},
}

func formatLevel(i interface{}, noColor bool) string {
	raw, _ := i.(string)
	lvl, ok := levelNames[raw]
	if !ok {
		return strings.ToUpper(raw) + " -"
	}
	if noColor {
		return lvl.name + " -"
	}
	return color.New(lvl.color).Sprint(lvl.name) + " -"
}
