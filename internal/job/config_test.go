package job_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/jobtrack/internal/job"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_LoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := job.LoadConfig(job.LoadConfigInput{WorkDirOverride: dir})
	require.NoError(t, err)

	want := job.DefaultConfig()
	want.EffectiveCwd = dir
	want.DataDirAbs = filepath.Join(dir, ".jobtrack")

	assert.Equal(t, want, cfg)
}

func Test_LoadConfig_Layers_In_Order(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := filepath.Join(dir, "xdg")

	writeFile(t, filepath.Join(xdg, "jt", "config.json"), `{
		"backend": "sqlite",
		"color": "never",
		"log_level": "info",
		"storage_key": "global",
	}`)
	writeFile(t, filepath.Join(dir, job.ConfigFileName), `{"color": "always", "storage_key": "project"}`)
	writeFile(t, filepath.Join(dir, job.DotEnvFileName), "JT_STORAGE_KEY=dotenv\nJT_LOG_LEVEL=error\n")

	dataDir := "/abs/data"

	cfg, err := job.LoadConfig(job.LoadConfigInput{
		WorkDirOverride: dir,
		DataDirOverride: &dataDir,
		Env: map[string]string{
			"XDG_CONFIG_HOME": xdg,
			"JT_LOG_LEVEL":    "debug",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, job.BackendSQLite, cfg.Backend, "global")
	assert.Equal(t, job.ColorAlways, cfg.Color, "project over global")
	assert.Equal(t, "dotenv", cfg.StorageKey, ".env over project")
	assert.Equal(t, "debug", cfg.LogLevel, "environment over .env")
	assert.Equal(t, "/abs/data", cfg.DataDirAbs, "flag, absolute path kept")

	assert.Equal(t, filepath.Join(xdg, "jt", "config.json"), cfg.Sources.Global)
	assert.Equal(t, filepath.Join(dir, job.ConfigFileName), cfg.Sources.Project)
	assert.Equal(t, filepath.Join(dir, job.DotEnvFileName), cfg.Sources.DotEnv)
}

func Test_LoadConfig_Does_Not_Modify_Env_Map(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, job.DotEnvFileName), "JT_BACKEND=sqlite\n")

	env := map[string]string{"HOME": dir}

	cfg, err := job.LoadConfig(job.LoadConfigInput{WorkDirOverride: dir, Env: env})
	require.NoError(t, err)

	assert.Equal(t, job.BackendSQLite, cfg.Backend)
	assert.Equal(t, map[string]string{"HOME": dir}, env)
}

func Test_LoadConfig_Errors(t *testing.T) {
	t.Parallel()

	empty := ""

	tests := []struct {
		name    string
		project string
		input   job.LoadConfigInput
		want    error
	}{
		{name: "EmptyDataDirOverride", input: job.LoadConfigInput{DataDirOverride: &empty}, want: job.ErrDataDirEmpty},
		{name: "EmptyDataDirInFile", project: `{"data_dir": ""}`, want: job.ErrDataDirEmpty},
		{name: "EmptyStorageKeyIsIgnored", project: `{"storage_key": ""}`, want: nil},
		{name: "BadBackend", input: job.LoadConfigInput{BackendOverride: "redis"}, want: job.ErrInvalidBackend},
		{name: "BadColor", project: `{"color": "pink"}`, want: job.ErrInvalidColor},
		{name: "BadLogLevel", input: job.LoadConfigInput{Env: map[string]string{"JT_LOG_LEVEL": "trace"}}, want: job.ErrInvalidLogLevel},
		{name: "BrokenJSON", project: `{"backend":`, want: job.ErrConfigInvalid},
		{name: "MissingExplicit", input: job.LoadConfigInput{ConfigPath: "nope.json"}, want: job.ErrConfigFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tt.project != "" {
				writeFile(t, filepath.Join(dir, job.ConfigFileName), tt.project)
			}

			in := tt.input
			in.WorkDirOverride = dir

			_, err := job.LoadConfig(in)
			if tt.want == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.want)
		})
	}
}
