package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmir/pkg/runner"
)

func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+f+"\n"), 0o644))
	}
}

func abs(dir string, files ...string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Join(dir, filepath.FromSlash(f))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{filepath.Join(dir, "readme.md")},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "readme.md"), files)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		opts  runner.Options
		want  []string
	}{
		{
			name:  "directory keeps only markdown",
			files: []string{"readme.md", "docs/guide.md", "docs/api.markdown", "src/main.go", "notes.txt"},
			want:  []string{"docs/api.markdown", "docs/guide.md", "readme.md"},
		},
		{
			name:  "custom extensions",
			files: []string{"file.md", "file.markdown", "file.txt", "file.mdx"},
			opts:  runner.Options{Extensions: []string{".mdx", ".TXT"}},
			want:  []string{"file.mdx", "file.txt"},
		},
		{
			name:  "exclude directories with double star",
			files: []string{"readme.md", "vendor/pkg/doc.md", "node_modules/lib/readme.md", "docs/guide.md"},
			opts:  runner.Options{ExcludeGlobs: []string{"vendor/**", "node_modules/**"}},
			want:  []string{"docs/guide.md", "readme.md"},
		},
		{
			name:  "exclude by base name",
			files: []string{"a.md", "docs/b.draft.md", "c.draft.md"},
			opts:  runner.Options{ExcludeGlobs: []string{"*.draft.md"}},
			want:  []string{"a.md"},
		},
		{
			name:  "single star stays within a segment",
			files: []string{"docs/a.md", "docs/deep/b.md"},
			opts:  runner.Options{ExcludeGlobs: []string{"docs/*.md"}},
			want:  []string{"docs/deep/b.md"},
		},
		{
			name:  "hidden files and directories are skipped",
			files: []string{"visible.md", ".hidden.md", ".git/notes.md", "docs/.cache/x.md"},
			want:  []string{"visible.md"},
		},
		{
			name:  "multiple paths are deduplicated and sorted",
			files: []string{"b/two.md", "a/one.md"},
			opts:  runner.Options{Paths: []string{"b", "a", "b/two.md", "."}},
			want:  []string{"a/one.md", "b/two.md"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, testCase.files...)

			opts := testCase.opts
			opts.WorkingDir = dir

			got, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, abs(dir, testCase.want...), got)
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}

	dir := t.TempDir()
	target := t.TempDir()
	writeTree(t, dir, "local.md")
	writeTree(t, target, "linked.md")
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "shared")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "local.md"), files)

	realTarget, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, append(abs(dir, "local.md"), filepath.Join(realTarget, "linked.md")), files)
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}
