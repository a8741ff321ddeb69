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

// Package target turns the caller's file arguments into an ordered list of
// paths to brand.
package target

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const globMeta = "*?[{"

// 🔍 IsGlob reports whether pattern contains glob metacharacters
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, globMeta)
}

// 🎯 Resolve expands patterns into file paths relative to root.
//
// Literal paths are kept verbatim even when they do not exist, so that a
// missing target surfaces as an error when it is read. Glob patterns are
// matched against regular files under root and sorted within the pattern.
// Exclude patterns drop any match. Input order is preserved. A literal path
// is kept every time it is given; a glob match already listed is dropped.
func Resolve(ctx context.Context, root string, patterns, exclude []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if root == "" {
		root = "."
	}

	for _, pattern := range append(append([]string{}, patterns...), exclude...) {
		if IsGlob(pattern) && !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string, literal bool) {
		if (seen[path] && !literal) || isExcluded(path, exclude) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	fsys := os.DirFS(root)
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}

		if !IsGlob(pattern) {
			add(pattern, true)
			continue
		}

		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
		}
		sort.Strings(matches)

		logger.Debug().Str("pattern", pattern).Int("matches", len(matches)).Msg("expanded glob")

		for _, match := range matches {
			add(filepath.FromSlash(match), false)
		}
	}

	return files, nil
}

// 🚫 isExcluded checks a path against the exclude globs
func isExcluded(path string, exclude []string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range exclude {
		matched, err := doublestar.Match(filepath.ToSlash(pattern), slashed)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
