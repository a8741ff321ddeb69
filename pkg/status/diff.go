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

package status

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"
)

// 🔍 FileDiff is a pending rewrite recorded instead of written
type FileDiff struct {
	Path  string
	Diffs []diffmatchpatch.Diff
}

// 🧪 DiffManager is a Manager that never writes. WriteFile records the
// difference between the current and the proposed content.
type DiffManager struct {
	*Manager

	differ *diffmatchpatch.DiffMatchPatch
	mu     sync.Mutex
	diffs  []FileDiff
}

var _ FileManager = (*DiffManager)(nil)

// 🏭 NewDiffManager wraps m so that writes become recorded diffs
func NewDiffManager(m *Manager) *DiffManager {
	return &DiffManager{
		Manager: m,
		differ:  diffmatchpatch.New(),
	}
}

// WriteFile implements FileManager.WriteFile without touching the file.
func (d *DiffManager) WriteFile(ctx context.Context, path string, content []byte) error {
	current, err := d.Manager.ReadFile(ctx, path)
	if err != nil {
		return errors.Errorf("reading file for diff: %w", err)
	}

	if bytes.Equal(current, content) {
		return nil
	}

	// diff whole lines so a boilerplate without a trailing newline shows
	// up as a changed first line
	before, after, lines := d.differ.DiffLinesToChars(string(current), string(content))
	diffs := d.differ.DiffCharsToLines(d.differ.DiffMain(before, after, false), lines)

	d.mu.Lock()
	d.diffs = append(d.diffs, FileDiff{Path: path, Diffs: diffs})
	d.mu.Unlock()

	d.logger.Debug().Str("path", path).Int("diffs", len(diffs)).Msg("recorded pending rewrite")
	return nil
}

// Diffs returns the recorded diffs in the order they were written.
func (d *DiffManager) Diffs() []FileDiff {
	d.mu.Lock()
	defer d.mu.Unlock()

	diffs := make([]FileDiff, len(d.diffs))
	copy(diffs, d.diffs)
	return diffs
}

// Render formats a recorded diff as lines numbered by their position in the
// proposed content. Added lines are prefixed with +, removed lines with - and
// carry no number.
func (d *DiffManager) Render(fd FileDiff) string {
	var out strings.Builder
	lineNumber := 0
	for _, diff := range fd.Diffs {
		lines := strings.Split(diff.Text, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}

		for _, line := range lines {
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				out.WriteString("\t-" + line + "\n")
			case diffmatchpatch.DiffInsert:
				lineNumber++
				out.WriteString(strconv.Itoa(lineNumber) + "\t+" + line + "\n")
			default:
				lineNumber++
				out.WriteString(strconv.Itoa(lineNumber) + "\t " + line + "\n")
			}
		}
	}
	return fmt.Sprintf("%s:\n%s", fd.Path, out.String())
}
