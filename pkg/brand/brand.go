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

package brand

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/brander/pkg/log"
	"github.com/walteh/brander/pkg/status"
	"github.com/walteh/brander/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📍 Position is where the boilerplate goes in a target file
type Position int

const (
	PositionTop Position = iota
	PositionBottom
)

// String returns a string representation of Position
func (p Position) String() string {
	if p == PositionBottom {
		return "bottom"
	}
	return "top"
}

// PositionFor maps the insert-at-the-top switch to a Position.
func PositionFor(insertAtTheTop bool) Position {
	if insertAtTheTop {
		return PositionTop
	}
	return PositionBottom
}

// 🔧 Options are the parameters of a single branding run
type Options struct {
	// Files are the target paths, processed in this order
	Files []string
	// FromBoilerplate is the path of the boilerplate template
	FromBoilerplate string
	// SkipWhenHas is a regular expression. A file it matches is left alone.
	// When blank, the expanded boilerplate itself is used as the pattern,
	// without escaping.
	SkipWhenHas string
	// Position is where the boilerplate is inserted
	Position Position
}

// 📊 Result is the outcome of a branding run
type Result struct {
	Success bool
	// Reason is set when the run finished early without touching any file
	Reason  string
	Branded []string
	Skipped []string
	Err     error
}

// 🏷️ Brander inserts a boilerplate into files that lack it
type Brander struct {
	files    status.FileManager
	tracker  status.StatusReporter
	replacer text.TextReplacer
	now      func() time.Time
}

// Option configures a Brander
type Option func(*Brander)

// WithClock overrides the clock used for the year substitution.
func WithClock(now func() time.Time) Option {
	return func(b *Brander) {
		b.now = now
	}
}

// 🏭 New creates a Brander reading and writing through files and recording
// outcomes in tracker
func New(files status.FileManager, tracker status.StatusReporter, opts ...Option) *Brander {
	b := &Brander{
		files:    files,
		tracker:  tracker,
		replacer: text.NewSimpleTextReplacer(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// 🏃 Execute runs one branding pass. It never returns an error or panics:
// every failure is caught here, logged, and reported through Result.
//
// Files are processed strictly in order. The first failure stops the run;
// files branded before it stay branded and later files are not touched.
func (b *Brander) Execute(ctx context.Context, opts Options) (res *Result) {
	res = &Result{}

	defer func() {
		if r := recover(); r != nil {
			res.Err = errors.Errorf("unexpected failure: %v", r)
		}
		res.Success = res.Err == nil
		if res.Err != nil {
			zerolog.Ctx(ctx).Error().
				Err(res.Err).
				Str("details", fmt.Sprintf("%+v", res.Err)).
				Msg("branding failed")
			log.FromContext(ctx).Errorf("Branding failed: %v", res.Err)
		}
	}()

	res.Err = b.run(ctx, opts, res)
	return res
}

func (b *Brander) run(ctx context.Context, opts Options, res *Result) error {
	logger := log.FromContext(ctx)

	if len(opts.Files) == 0 {
		res.Reason = "No files to brand."
		logger.Info(res.Reason)
		return nil
	}

	if opts.FromBoilerplate == "" {
		res.Reason = "No boilerplate file specified."
		logger.Info(res.Reason)
		return nil
	}

	raw, err := b.files.ReadFile(ctx, opts.FromBoilerplate)
	if err != nil {
		return errors.Errorf("reading boilerplate %s: %w", opts.FromBoilerplate, err)
	}

	boilerplate, err := text.ExpandBoilerplate(ctx, b.replacer, bytes.NewReader(raw), b.now())
	if err != nil {
		return err
	}

	if strings.TrimSpace(boilerplate) == "" {
		res.Reason = fmt.Sprintf("Boilerplate %q is empty.", opts.FromBoilerplate)
		logger.Info(res.Reason)
		return nil
	}

	skip, err := compileSkipPattern(opts.SkipWhenHas, boilerplate)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Str("boilerplate", opts.FromBoilerplate).
		Str("skip_when_has", skip.String()).
		Str("position", opts.Position.String()).
		Int("files", len(opts.Files)).
		Msg("branding files")

	b.tracker.StartOperation(ctx, len(opts.Files))
	defer b.tracker.FinishOperation(ctx)

	for i, path := range opts.Files {
		branded, err := b.brandFile(ctx, path, []byte(boilerplate), skip, opts.Position)
		if err != nil {
			b.tracker.TrackFile(ctx, path, status.FileInfo{Status: status.StatusFailed, Error: err})
			return errors.Errorf("branding file %s: %w", path, err)
		}

		if branded {
			res.Branded = append(res.Branded, path)
			logger.Infof("Branded File \"%s\".", path)
		} else {
			res.Skipped = append(res.Skipped, path)
		}
		b.tracker.UpdateProgress(ctx, i+1)
	}

	if len(res.Branded) == 0 {
		logger.Infof("All %d files already branded.", len(opts.Files))
	}

	return nil
}

// 📄 brandFile rewrites one file unless skip matches its content
func (b *Brander) brandFile(ctx context.Context, path string, boilerplate []byte, skip *regexp.Regexp, pos Position) (bool, error) {
	content, err := b.files.ReadFile(ctx, path)
	if err != nil {
		return false, err
	}

	if skip.Match(content) {
		b.tracker.TrackFile(ctx, path, status.FileInfo{Status: status.StatusSkipped, Size: int64(len(content))})
		return false, nil
	}

	branded := insert(content, boilerplate, pos)
	if err := b.files.WriteFile(ctx, path, branded); err != nil {
		return false, err
	}

	b.tracker.TrackFile(ctx, path, status.FileInfo{Status: status.StatusBranded, Size: int64(len(branded))})
	return true, nil
}

// insert places boilerplate before or after content with nothing in between.
func insert(content, boilerplate []byte, pos Position) []byte {
	out := make([]byte, 0, len(content)+len(boilerplate))
	if pos == PositionBottom {
		out = append(out, content...)
		return append(out, boilerplate...)
	}
	out = append(out, boilerplate...)
	return append(out, content...)
}
