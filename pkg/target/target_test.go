package target

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(f), 0o644))
	}
}

func slashed(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	return out
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/b.js",
		"src/a.js",
		"src/lib/c.js",
		"src/vendor/v.js",
		"src/readme.md",
	)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	tests := []struct {
		name      string
		patterns  []string
		exclude   []string
		want      []string
		wantError string
	}{
		{
			name:     "literal_paths_keep_order",
			patterns: []string{"src/b.js", "src/a.js"},
			want:     []string{"src/b.js", "src/a.js"},
		},
		{
			name:     "missing_literal_kept",
			patterns: []string{"src/a.js", "src/missing.js"},
			want:     []string{"src/a.js", "src/missing.js"},
		},
		{
			name:     "glob_sorted_within_pattern",
			patterns: []string{"src/*.js"},
			want:     []string{"src/a.js", "src/b.js"},
		},
		{
			name:     "doublestar_glob",
			patterns: []string{"src/**/*.js"},
			want:     []string{"src/a.js", "src/b.js", "src/lib/c.js", "src/vendor/v.js"},
		},
		{
			name:     "exclude_applies",
			patterns: []string{"src/**/*.js"},
			exclude:  []string{"src/vendor/**"},
			want:     []string{"src/a.js", "src/b.js", "src/lib/c.js"},
		},
		{
			name:     "duplicates_keep_first_position",
			patterns: []string{"src/lib/c.js", "src/**/*.js"},
			exclude:  []string{"**/v.js"},
			want:     []string{"src/lib/c.js", "src/a.js", "src/b.js"},
		},
		{
			name:     "repeated_literal_kept",
			patterns: []string{"src/a.js", "src/b.js", "src/a.js"},
			want:     []string{"src/a.js", "src/b.js", "src/a.js"},
		},
		{
			name:     "glob_after_repeated_literal",
			patterns: []string{"src/a.js", "src/a.js", "src/*.js"},
			want:     []string{"src/a.js", "src/a.js", "src/b.js"},
		},
		{
			name:     "blank_patterns_ignored",
			patterns: []string{"", "  ", "src/readme.md"},
			want:     []string{"src/readme.md"},
		},
		{
			name:     "no_patterns",
			patterns: nil,
			want:     nil,
		},
		{
			name:      "invalid_glob",
			patterns:  []string{"src/[*.js"},
			wantError: "invalid glob pattern",
		},
		{
			name:      "invalid_exclude",
			patterns:  []string{"src/a.js"},
			exclude:   []string{"src/{a"},
			wantError: "invalid glob pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(ctx, root, tt.patterns, tt.exclude)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, slashed(got))
		})
	}
}

func TestIsGlob(t *testing.T) {
	assert.True(t, IsGlob("src/*.js"))
	assert.True(t, IsGlob("src/{a,b}.js"))
	assert.True(t, IsGlob("src/?.js"))
	assert.True(t, IsGlob("src/[ab].js"))
	assert.False(t, IsGlob("src/a.js"))
}
