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

package operation

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/stampr/pkg/config"
	"github.com/walteh/stampr/pkg/log"
	"github.com/walteh/stampr/pkg/placement"
	"github.com/walteh/stampr/pkg/status"
)

// 🎯 Placer places a single file. *placement.Engine satisfies it.
type Placer interface {
	Place(ctx context.Context, req placement.Request) placement.Result
}

// 📦 Batch describes a directory run
type Batch struct {
	Input       string
	Destination string
	Mode        placement.Mode
	Filter      Filter
}

// 🔧 Options configures a Runner
type Options struct {
	// Placer performs each placement. Required.
	Placer Placer
	// Logger receives the run's log lines. Required.
	Logger *log.Logger
	// Fs is used for discovery. Defaults to the OS filesystem.
	Fs afero.Fs
	// Tracker collects results. Defaults to a tracker with the default formatter.
	Tracker *status.Tracker
}

// 🏃 Runner processes files one at a time
type Runner struct {
	placer  Placer
	logger  *log.Logger
	fs      afero.Fs
	tracker *status.Tracker
}

// 🏭 NewRunner creates a new runner
func NewRunner(opts Options) (*Runner, error) {
	if opts.Placer == nil {
		return nil, errors.Errorf("placer is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Tracker == nil {
		opts.Tracker = status.NewTracker(nil)
	}
	return &Runner{
		placer:  opts.Placer,
		logger:  opts.Logger,
		fs:      opts.Fs,
		tracker: opts.Tracker,
	}, nil
}

// 🚀 Run processes cfg.File when set, otherwise every matching file in
// cfg.Input. cfg must already be validated. A returned error has already
// been logged.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (status.Summary, error) {
	mode, err := placement.ParseMode(cfg.Mode)
	if err != nil {
		r.logger.Errorf("Invalid transfer mode: %v", err)
		return status.Summary{}, errors.Errorf("parsing mode: %w", err)
	}

	if cfg.File != "" {
		r.RunFile(ctx, cfg.File, cfg.Destination, mode)
		return r.tracker.Summary(), nil
	}

	return r.RunDirectory(ctx, Batch{
		Input:       cfg.Input,
		Destination: cfg.Destination,
		Mode:        mode,
		Filter:      NewFilter(cfg.Extensions, cfg.Ignore),
	})
}

// 📂 RunDirectory places every file of b.Input that passes b.Filter. The
// returned error is non-nil only when the run could not start or was
// cancelled; per-file failures are reported in the summary.
func (r *Runner) RunDirectory(ctx context.Context, b Batch) (status.Summary, error) {
	logger := r.logger.With("run", uuid.NewString())
	logger.Debugf("processing %s -> %s (%s)", b.Input, b.Destination, b.Mode)

	files, err := Discover(r.fs, b.Input, b.Filter)
	if err != nil {
		if errors.Is(err, ErrInputMissing) {
			logger.Errorf("Input directory does not exist: %s", b.Input)
		} else {
			logger.Errorf("Cannot read input directory %s: %v", b.Input, err)
		}
		return status.Summary{}, err
	}

	r.tracker.StartOperation(len(files))

	if len(files) == 0 {
		logger.Warning("No files found to process")
		return r.tracker.Summary(), nil
	}

	logger.Infof("Found %d files to process", len(files))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			logger.Warningf("Run cancelled after %d of %d files", i, len(files))
			summary := r.tracker.Summary()
			logger.Info(summary.String())
			return summary, errors.Errorf("run cancelled: %w", err)
		}

		res := r.placer.Place(ctx, placement.Request{
			Source:      path,
			Destination: b.Destination,
			Mode:        b.Mode,
		})
		logger.LogFileOperation(fileOperation(res))
		logger.Debug(r.tracker.Track(res))
	}

	summary := r.tracker.Summary()
	logger.Info(summary.String())
	return summary, nil
}

// 📄 RunFile places a single file. A missing path fails without touching the
// destination.
func (r *Runner) RunFile(ctx context.Context, path, destination string, mode placement.Mode) placement.Result {
	req := placement.Request{Source: path, Destination: destination, Mode: mode}
	r.tracker.StartOperation(1)

	var res placement.Result
	if _, err := r.fs.Stat(path); err != nil {
		r.logger.Errorf("File does not exist: %s", path)
		res = placement.Result{
			Request: req,
			Outcome: placement.OutcomeFailure,
			Err:     &placement.Error{Kind: placement.KindResolve, Path: path, Err: err},
		}
	} else {
		res = r.placer.Place(ctx, req)
		r.logger.LogFileOperation(fileOperation(res))
	}
	r.tracker.Track(res)

	if res.OK() {
		r.logger.Infof("Successfully processed file: %s", res.Filename)
	} else {
		r.logger.Errorf("Failed to process file: %v", res.Err)
	}
	return res
}

func fileOperation(res placement.Result) log.FileOperation {
	action := "Moved"
	if res.Request.Mode == placement.ModeCopy {
		action = "Copied"
	}
	return log.FileOperation{
		Action:      action,
		Source:      filepath.Base(res.Request.Source),
		Destination: res.Filename,
		Err:         res.Err,
	}
}
