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

package brand_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/brander/pkg/brand"
	"github.com/walteh/brander/pkg/log"
	"github.com/walteh/brander/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var fixedNow = func() time.Time {
	return time.Date(2024, time.May, 17, 10, 0, 0, 0, time.Local)
}

type testEnv struct {
	ctx     context.Context
	dir     string
	console *bytes.Buffer
	mgr     *status.Manager
	brander *brand.Brander
}

// 🧪 newTestEnv creates a temp dir, a console buffer and a brander over them
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	dir := t.TempDir()
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	console := &bytes.Buffer{}

	ctx := zlog.WithContext(context.Background())
	ctx = log.NewContext(ctx, log.New(console, zlog))

	mgr := status.New(dir, &zlog)
	return &testEnv{
		ctx:     ctx,
		dir:     dir,
		console: console,
		mgr:     mgr,
		brander: brand.New(mgr, mgr, brand.WithClock(fixedNow)),
	}
}

func (e *testEnv) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0o644))
}

func (e *testEnv) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestExecute_ShortCircuits(t *testing.T) {
	tests := []struct {
		name        string
		boilerplate string
		opts        brand.Options
		wantReason  string
	}{
		{
			name:        "no_files",
			boilerplate: "Copyright $(Year)\n",
			opts:        brand.Options{FromBoilerplate: "HEADER.txt"},
			wantReason:  "No files to brand.",
		},
		{
			name:        "no_boilerplate_source",
			boilerplate: "Copyright $(Year)\n",
			opts:        brand.Options{Files: []string{"a.js"}},
			wantReason:  "No boilerplate file specified.",
		},
		{
			name:        "empty_boilerplate",
			boilerplate: "",
			opts:        brand.Options{Files: []string{"a.js"}, FromBoilerplate: "HEADER.txt"},
			wantReason:  `Boilerplate "HEADER.txt" is empty.`,
		},
		{
			name:        "whitespace_boilerplate",
			boilerplate: " \r\n\t\n",
			opts:        brand.Options{Files: []string{"a.js"}, FromBoilerplate: "HEADER.txt"},
			wantReason:  `Boilerplate "HEADER.txt" is empty.`,
		},
		{
			name:        "no_files_with_missing_boilerplate",
			boilerplate: "",
			opts:        brand.Options{Files: nil, FromBoilerplate: "does-not-exist.txt"},
			wantReason:  "No files to brand.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.write(t, "HEADER.txt", tt.boilerplate)
			env.write(t, "a.js", "console.log(1);")

			res := env.brander.Execute(env.ctx, tt.opts)

			assert.True(t, res.Success, "short circuit should succeed")
			assert.NoError(t, res.Err)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.Empty(t, res.Branded)
			assert.Equal(t, "console.log(1);", env.read(t, "a.js"), "file must not be modified")
			assert.Contains(t, env.console.String(), tt.wantReason)
		})
	}
}

func TestExecute_Position(t *testing.T) {
	tests := []struct {
		name     string
		position brand.Position
		want     string
	}{
		{
			name:     "top",
			position: brand.PositionTop,
			want:     "Copyright 2024\nconsole.log(1);",
		},
		{
			name:     "bottom",
			position: brand.PositionBottom,
			want:     "console.log(1);Copyright 2024\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.write(t, "HEADER.txt", "Copyright $(Year)\n")
			env.write(t, "a.js", "console.log(1);")

			res := env.brander.Execute(env.ctx, brand.Options{
				Files:           []string{"a.js"},
				FromBoilerplate: "HEADER.txt",
				Position:        tt.position,
			})

			require.True(t, res.Success, "run should succeed: %v", res.Err)
			assert.Equal(t, []string{"a.js"}, res.Branded)
			assert.Equal(t, tt.want, env.read(t, "a.js"))
			assert.Contains(t, env.console.String(), `Branded File "a.js".`)
		})
	}
}

func TestExecute_DefaultSkipIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "HEADER.txt", "// Copyright $(Year) Example Corp\n// SPDX-License-Identifier: MIT\n\n")
	env.write(t, "a.go", "package a\n")
	env.write(t, "b.go", "package b\n")

	opts := brand.Options{
		Files:           []string{"a.go", "b.go"},
		FromBoilerplate: "HEADER.txt",
	}

	first := env.brander.Execute(env.ctx, opts)
	require.True(t, first.Success, "first run should succeed: %v", first.Err)
	assert.Equal(t, []string{"a.go", "b.go"}, first.Branded)

	wantA := "// Copyright 2024 Example Corp\n// SPDX-License-Identifier: MIT\n\npackage a\n"
	assert.Equal(t, wantA, env.read(t, "a.go"))

	env.console.Reset()
	second := env.brander.Execute(env.ctx, opts)
	require.True(t, second.Success, "second run should succeed: %v", second.Err)
	assert.Empty(t, second.Branded)
	assert.Equal(t, []string{"a.go", "b.go"}, second.Skipped)
	assert.Equal(t, wantA, env.read(t, "a.go"), "second run must not change content")
	assert.Contains(t, env.console.String(), "All 2 files already branded.")
	assert.NotContains(t, env.console.String(), "Branded File")
}

func TestExecute_DefaultSkipIsRegex(t *testing.T) {
	env := newTestEnv(t)
	// "(c)" is a regex group, so the default pattern matches "Copyright c 2024"
	// and not the literal "(c)" that was inserted.
	env.write(t, "HEADER.txt", "Copyright (c) $(Year)")
	env.write(t, "a.js", "console.log(1);")
	env.write(t, "b.js", "// COPYRIGHT C 2024\n")

	opts := brand.Options{
		Files:           []string{"a.js", "b.js"},
		FromBoilerplate: "HEADER.txt",
	}

	first := env.brander.Execute(env.ctx, opts)
	require.True(t, first.Success, "first run should succeed: %v", first.Err)
	assert.Equal(t, []string{"a.js"}, first.Branded)
	assert.Equal(t, []string{"b.js"}, first.Skipped, "case-insensitive regex should match b.js")
	assert.Equal(t, "Copyright (c) 2024console.log(1);", env.read(t, "a.js"))

	second := env.brander.Execute(env.ctx, opts)
	require.True(t, second.Success, "second run should succeed: %v", second.Err)
	assert.Equal(t, []string{"a.js"}, second.Branded)
	assert.Equal(t, "Copyright (c) 2024Copyright (c) 2024console.log(1);", env.read(t, "a.js"))
}

func TestExecute_RepeatedPathProcessedEachTime(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "HEADER.txt", "// (c) Acme\n")
	env.write(t, "a.js", "a();")

	res := env.brander.Execute(env.ctx, brand.Options{
		Files:           []string{"a.js", "a.js"},
		FromBoilerplate: "HEADER.txt",
	})
	require.True(t, res.Success, "run should succeed: %v", res.Err)
	assert.Equal(t, []string{"a.js", "a.js"}, res.Branded)
	assert.Equal(t, "// (c) Acme\n// (c) Acme\na();", env.read(t, "a.js"))
}

func TestExecute_SkipWhenHas(t *testing.T) {
	tests := []struct {
		name        string
		skipWhenHas string
		content     string
		wantBranded bool
	}{
		{
			name:        "custom_pattern_matches",
			skipWhenHas: `copyright \(c\) \d{4}`,
			content:     "/* Copyright (C) 1999 Someone */\nx();",
			wantBranded: false,
		},
		{
			name:        "custom_pattern_matches_anywhere",
			skipWhenHas: "generated",
			content:     "x();\n// Code GENERATED by tool\n",
			wantBranded: false,
		},
		{
			name:        "custom_pattern_misses",
			skipWhenHas: "SPDX-License-Identifier",
			content:     "x();",
			wantBranded: true,
		},
		{
			name:        "blank_pattern_uses_boilerplate",
			skipWhenHas: "   ",
			content:     "x();",
			wantBranded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.write(t, "HEADER.txt", "// Licensed $(Year)\n")
			env.write(t, "a.js", tt.content)

			res := env.brander.Execute(env.ctx, brand.Options{
				Files:           []string{"a.js"},
				FromBoilerplate: "HEADER.txt",
				SkipWhenHas:     tt.skipWhenHas,
			})
			require.True(t, res.Success, "run should succeed: %v", res.Err)

			if tt.wantBranded {
				assert.Equal(t, []string{"a.js"}, res.Branded)
				assert.Equal(t, "// Licensed 2024\n"+tt.content, env.read(t, "a.js"))
				return
			}
			assert.Empty(t, res.Branded)
			assert.Equal(t, []string{"a.js"}, res.Skipped)
			assert.Equal(t, tt.content, env.read(t, "a.js"), "skipped file must be byte-for-byte unchanged")
		})
	}
}

func TestExecute_InvalidSkipPattern(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "HEADER.txt", "// Licensed $(Year)\n")
	env.write(t, "a.js", "x();")

	res := env.brander.Execute(env.ctx, brand.Options{
		Files:           []string{"a.js"},
		FromBoilerplate: "HEADER.txt",
		SkipWhenHas:     "([unclosed",
	})

	assert.False(t, res.Success)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "compiling skip pattern")
	assert.Equal(t, "x();", env.read(t, "a.js"))
	assert.Contains(t, env.console.String(), "Branding failed")
}

func TestExecute_MissingBoilerplate(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "a.js", "x();")

	res := env.brander.Execute(env.ctx, brand.Options{
		Files:           []string{"a.js"},
		FromBoilerplate: "missing.txt",
	})

	assert.False(t, res.Success)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "reading boilerplate missing.txt")
	assert.True(t, errors.Is(res.Err, os.ErrNotExist), "error should wrap os.ErrNotExist")
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "HEADER.txt", "// Licensed $(Year)\n")
	env.write(t, "a.js", "a();")
	env.write(t, "c.js", "c();")
	env.write(t, "d.js", "// licensed 2020\nd();")

	res := env.brander.Execute(env.ctx, brand.Options{
		Files:           []string{"d.js", "a.js", "b.js", "c.js"},
		FromBoilerplate: "HEADER.txt",
		SkipWhenHas:     `licensed \d+`,
	})

	assert.False(t, res.Success)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "branding file b.js")
	assert.Equal(t, []string{"a.js"}, res.Branded)
	assert.Equal(t, []string{"d.js"}, res.Skipped)

	assert.Equal(t, "// Licensed 2024\na();", env.read(t, "a.js"), "files before the failure stay branded")
	assert.Equal(t, "c();", env.read(t, "c.js"), "files after the failure are untouched")

	files := env.mgr.ListFiles(env.ctx)
	require.Len(t, files, 3)
	assert.Equal(t, "b.js", files[2].Path)
	assert.Equal(t, status.StatusFailed, files[2].Status)
}

func TestExecute_LogsInInputOrder(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "HEADER.txt", "// Licensed $(Year)\n")
	for _, name := range []string{"z.js", "m.js", "a.js"} {
		env.write(t, name, name)
	}

	res := env.brander.Execute(env.ctx, brand.Options{
		Files:           []string{"z.js", "m.js", "a.js"},
		FromBoilerplate: "HEADER.txt",
	})
	require.True(t, res.Success, "run should succeed: %v", res.Err)
	assert.Equal(t, []string{"z.js", "m.js", "a.js"}, res.Branded)

	out := env.console.String()
	iz := strings.Index(out, `Branded File "z.js".`)
	im := strings.Index(out, `Branded File "m.js".`)
	ia := strings.Index(out, `Branded File "a.js".`)
	require.True(t, iz >= 0 && im >= 0 && ia >= 0, "every branded file should be logged: %s", out)
	assert.True(t, iz < im && im < ia, "log lines should follow input order")
}

type panickingFiles struct {
	status.FileManager
}

func (p panickingFiles) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "boom.js" {
		panic("disk on fire")
	}
	return p.FileManager.ReadFile(ctx, path)
}

func TestExecute_RecoversPanics(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "HEADER.txt", "// Licensed $(Year)\n")
	env.write(t, "a.js", "a();")

	b := brand.New(panickingFiles{env.mgr}, env.mgr, brand.WithClock(fixedNow))

	var res *brand.Result
	require.NotPanics(t, func() {
		res = b.Execute(env.ctx, brand.Options{
			Files:           []string{"a.js", "boom.js"},
			FromBoilerplate: "HEADER.txt",
		})
	})

	assert.False(t, res.Success)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "disk on fire")
	assert.Equal(t, []string{"a.js"}, res.Branded)
}

func TestPosition(t *testing.T) {
	assert.Equal(t, brand.PositionTop, brand.PositionFor(true))
	assert.Equal(t, brand.PositionBottom, brand.PositionFor(false))
	assert.Equal(t, "top", brand.PositionTop.String())
	assert.Equal(t, "bottom", brand.PositionBottom.String())

	var zero brand.Options
	assert.Equal(t, brand.PositionTop, zero.Position, "top should be the default")
}
