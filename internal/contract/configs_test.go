package contract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bekerk/hotspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation against a mocked repo root.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Ref:         "HEAD",
		Marker:      schema.DefaultFixMarker,
		Limit:       10,
		Workers:     4,
		Precision:   2,
		Output:      "text",
		RepoPathStr: ".",
	}
}

// absResolved mirrors how ProcessAndValidate resolves the search path before asking for the repo root.
func absResolved(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		setupMock   bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}, setupMock: true},
		{name: "zero limit keeps all", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, setupMock: true},
		{name: "negative limit", mutate: func(in *ConfigRawInput) { in.Limit = -1 }, expectError: true},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "precision too high", mutate: func(in *ConfigRawInput) { in.Precision = 5 }, expectError: true},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{
			name: "parquet with file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "out.parquet"
			},
			setupMock: true,
		},
		{name: "empty marker", mutate: func(in *ConfigRawInput) { in.Marker = "  " }, expectError: true},
		{name: "ref with leading dash", mutate: func(in *ConfigRawInput) { in.Ref = "--all" }, expectError: true},
		{name: "negative threshold", mutate: func(in *ConfigRawInput) { in.Threshold = -1 }, expectError: true},
		{name: "invalid emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }, expectError: true},
		{name: "invalid log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: true},
		{name: "gogit history backend", mutate: func(in *ConfigRawInput) { in.HistoryBackend = "GoGit" }, setupMock: true},
		{name: "invalid history backend", mutate: func(in *ConfigRawInput) { in.HistoryBackend = "svn" }, expectError: true},
		{name: "invalid cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "invalid_backend" }, expectError: true},
		{name: "mysql backend without connection string", mutate: func(in *ConfigRawInput) { in.CacheBackend = "mysql" }, expectError: true},
		{name: "postgresql backend without connection string", mutate: func(in *ConfigRawInput) { in.CacheBackend = "postgresql" }, expectError: true},
		{
			name: "mysql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "mysql"
				in.CacheDBConnect = "user:pass@tcp(localhost:3306)/hotspot"
			},
			setupMock: true,
		},
		{
			name: "postgresql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "postgresql"
				in.CacheDBConnect = "host=localhost port=5432 user=postgres dbname=hotspot"
			},
			setupMock: true,
		},
		{name: "none backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "none" }, setupMock: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockGitClient)

			// Dynamically determine the expected working directory
			workDir, err := absResolved(".")
			require.NoError(t, err)

			if tt.setupMock {
				mockClient.On("GetRepoRoot", context.Background(), workDir).Return("/mock/repo/root", nil)
			}

			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err = ProcessAndValidate(context.Background(), cfg, mockClient, input)

			if tt.expectError {
				assert.Error(t, err, "contract.ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "contract.ProcessAndValidate should not return an error for %s", tt.name)
				assert.Equal(t, input.Limit, cfg.ResultLimit)
				assert.Equal(t, "/mock/repo/root", cfg.RepoPath)
				assert.NotNil(t, cfg.Clock)
			}

			if tt.setupMock {
				mockClient.AssertExpectations(t)
			}
		})
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	mockClient := new(MockGitClient)
	workDir, err := absResolved(".")
	require.NoError(t, err)
	mockClient.On("GetRepoRoot", context.Background(), workDir).Return(workDir, nil)

	input := &ConfigRawInput{Marker: "bug", Workers: 1, Precision: 2}
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))

	assert.Equal(t, DefaultRef, cfg.Ref)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.GitCLIBackend, cfg.HistoryBackend)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.Equal(t, DefaultThreshold, cfg.Threshold)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
	assert.Empty(t, cfg.Excludes)
	assert.Empty(t, cfg.PathFilter)
}

func TestProcessAndValidate_Excludes(t *testing.T) {
	mockClient := new(MockGitClient)
	workDir, err := absResolved(".")
	require.NoError(t, err)
	mockClient.On("GetRepoRoot", context.Background(), workDir).Return(workDir, nil)

	input := validInput()
	input.Exclude = "vendor/, .md,, *_test.go "
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))

	assert.Equal(t, []string{"vendor/", ".md", "*_test.go"}, cfg.Excludes)
}

func TestProcessAndValidate_RepoRootError(t *testing.T) {
	mockClient := new(MockGitClient)
	workDir, err := absResolved(".")
	require.NoError(t, err)
	mockClient.On("GetRepoRoot", context.Background(), workDir).Return("", errors.New("not a git repository"))

	err = ProcessAndValidate(context.Background(), &Config{}, mockClient, validInput())
	assert.Error(t, err)
}

func TestProcessAndValidate_ImplicitFilter(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	sub := filepath.Join(root, "pkg", "api")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	file := filepath.Join(sub, "handler.go")
	require.NoError(t, os.WriteFile(file, []byte("package api"), 0o644))

	t.Run("directory", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", context.Background(), sub).Return(root, nil)
		input := validInput()
		input.RepoPathStr = sub
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Equal(t, "pkg/api/", cfg.PathFilter)
	})

	t.Run("file", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", context.Background(), sub).Return(root, nil)
		input := validInput()
		input.RepoPathStr = file
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Equal(t, "pkg/api/handler.go", cfg.PathFilter)
	})

	t.Run("explicit filter wins", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", context.Background(), sub).Return(root, nil)
		input := validInput()
		input.RepoPathStr = sub
		input.Filter = "cmd/"
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Equal(t, "cmd/", cfg.PathFilter)
	})
}

func TestProcessAndValidate_SymlinkedPath(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	sub := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	links := t.TempDir()
	repoLink := filepath.Join(links, "repo")
	subLink := filepath.Join(links, "pkg")
	require.NoError(t, os.Symlink(root, repoLink))
	require.NoError(t, os.Symlink(sub, subLink))

	t.Run("link to the repository root", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", context.Background(), root).Return(root, nil)
		input := validInput()
		input.RepoPathStr = repoLink
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Equal(t, root, cfg.RepoPath)
		assert.Empty(t, cfg.PathFilter)
		mockClient.AssertExpectations(t)
	})

	t.Run("link into a subdirectory", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", context.Background(), sub).Return(root, nil)
		input := validInput()
		input.RepoPathStr = subLink
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Equal(t, "pkg/", cfg.PathFilter)
	})

	t.Run("root reported through a link", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", context.Background(), root).Return(repoLink, nil)
		input := validInput()
		input.RepoPathStr = root
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Equal(t, root, cfg.RepoPath)
		assert.Empty(t, cfg.PathFilter)
	})

	t.Run("root outside the search path", func(t *testing.T) {
		mockClient := new(MockGitClient)
		mockClient.On("GetRepoRoot", context.Background(), sub).Return("/mock/repo/root", nil)
		input := validInput()
		input.RepoPathStr = sub
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
		assert.Empty(t, cfg.PathFilter, "a filter leaving the root would hide every file")
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "root:pw@tcp(db:3306)/hotspot"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "root:pw@tcp(db:3306)/"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "postgres://u:p@db:5432/hotspot"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "not a dsn ==="))
}

func TestConfigCloneAndClock(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	cfg := &Config{Excludes: []string{"vendor/"}, Clock: func() time.Time { return fixed }}

	clone := cfg.Clone()
	clone.Excludes[0] = "dist/"

	assert.Equal(t, "vendor/", cfg.Excludes[0])
	assert.Equal(t, fixed, clone.Now())
	assert.False(t, (&Config{}).Now().IsZero())
}

func TestSetLogLevel(t *testing.T) {
	defer func() { _ = SetLogLevel(DefaultLogLevel) }()
	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, "debug", Logger().GetLevel().String())
	assert.Error(t, SetLogLevel("nope"))
}

func TestRevalidateAnalysis(t *testing.T) {
	base := func() *Config {
		return &Config{Ref: DefaultRef, Marker: "bug", ResultLimit: DefaultResultLimit}
	}

	t.Run("empty values keep base", func(t *testing.T) {
		cfg := base()
		require.NoError(t, RevalidateAnalysis(cfg, "", "", 0))
		assert.Equal(t, DefaultRef, cfg.Ref)
		assert.Equal(t, "bug", cfg.Marker)
		assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
	})

	t.Run("overrides applied", func(t *testing.T) {
		cfg := base()
		require.NoError(t, RevalidateAnalysis(cfg, " main ", "fix", 5))
		assert.Equal(t, "main", cfg.Ref)
		assert.Equal(t, "fix", cfg.Marker)
		assert.Equal(t, 5, cfg.ResultLimit)
	})

	t.Run("option-like ref", func(t *testing.T) {
		assert.Error(t, RevalidateAnalysis(base(), "--all", "", 0))
	})

	t.Run("blank marker", func(t *testing.T) {
		assert.ErrorIs(t, RevalidateAnalysis(base(), "", "   ", 0), ErrEmptyMarker)
	})

	t.Run("limit out of range", func(t *testing.T) {
		assert.Error(t, RevalidateAnalysis(base(), "", "", -1))
		assert.Error(t, RevalidateAnalysis(base(), "", "", MaxResultLimit+1))
	})
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, " run1 "))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run1", profile.Prefix)

	assert.Error(t, ProcessProfilingConfig(&ProfileConfig{}, "profiles/"))
}
