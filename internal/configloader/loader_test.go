package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmir/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	configPath := filepath.Join(tmpDir, ".mdmir.yml")
	writeFile(t, configPath, "render:\n  max_heading: 3\ncompare:\n  flavor: gfm\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Config.Render.MaxHeading)
	assert.Equal(t, "gfm", result.Config.Compare.Flavor)
	// Untouched keys in a partially specified section keep their defaults.
	assert.False(t, result.Config.Render.DetectLanguage)
	assert.Equal(t, "json", result.Config.Wire.Format)
	assert.Equal(t, []string{configPath}, result.LoadedFrom)
}

func TestLoad_UpwardSearch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".mdmir.yaml"), "wire:\n  format: yaml\n")

	nested := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, "yaml", result.Config.Wire.Format)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".mdmir.yml"), "wire:\n  format: yaml\n  indent: 4\n")
	explicit := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, explicit, "wire:\n  format: json\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "json", result.Config.Wire.Format)
	assert.Equal(t, 4, result.Config.Wire.Indent, "project value survives where explicit file is silent")
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".mdmir.yml"), "convert:\n  jobs: 2\n")

	opts := isolated(tmpDir)
	opts.Overrides = map[string]any{
		"convert.jobs":    8,
		"convert.out_dir": "site",
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Config.Convert.Jobs)
	assert.Equal(t, "site", result.Config.Convert.OutDir)
}

func TestLoad_Environment(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))

	t.Setenv("MDMIR_WIRE_FORMAT", "yaml")
	t.Setenv("MDMIR_RENDER_DETECT_LANGUAGE", "true")
	t.Setenv("MDMIR_CONVERT_EXTENSIONS", ".md,.mdx")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "yaml", result.Config.Wire.Format)
	assert.True(t, result.Config.Render.DetectLanguage)
	assert.Equal(t, []string{".md", ".mdx"}, result.Config.Convert.Extensions)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid format",
			content: "wire:\n  format: xml\n",
			wantErr: "wire.format",
		},
		{
			name:    "heading out of range",
			content: "render:\n  max_heading: 7\n",
			wantErr: "render.max_heading",
		},
		{
			name:    "bad glob",
			content: "convert:\n  exclude: [\"[unclosed\"]\n",
			wantErr: "convert.exclude[0]",
		},
		{
			name:    "malformed yaml",
			content: "wire: [\n",
			wantErr: "load project config",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
			writeFile(t, filepath.Join(tmpDir, ".mdmir.yml"), testCase.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.wantErr)
		})
	}
}

func TestLoad_UnknownKeyWarning(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".mdmir.yml"), "render:\n  theme: dark\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `"render.theme"`)
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.Error(t, err)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".mdmir.yml"), "wire:\n  indent: 2\n")

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	found, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, DefaultProjectFile)

	require.NoError(t, WriteTemplate(path, config.TemplateOptions{Full: true}, false))
	require.Error(t, WriteTemplate(path, config.TemplateOptions{}, false))
	require.NoError(t, WriteTemplate(path, config.TemplateOptions{}, true))

	// The minimal template changes nothing.
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), result.Config)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(config.Settings()))
	assert.Contains(t, vars, "MDMIR_RENDER_MAX_HEADING")
	assert.Equal(t, "MDMIR_CONVERT_OUT_DIR", EnvVarName("convert.out_dir"))
}
