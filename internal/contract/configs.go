package contract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bekerk/hotspot/schema"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// Default values for configuration.
const (
	DefaultRef          = "HEAD"
	DefaultResultLimit  = 0 // zero keeps every file
	MaxResultLimit      = 100000
	DefaultPrecision    = 2
	MaxPrecision        = 4
	DefaultThreshold    = 1.0
	DefaultOutput       = schema.TextOut
	DefaultCacheBackend = schema.SQLiteBackend
)

// ErrEmptyMarker is returned when the fix marker is blank.
var ErrEmptyMarker = errors.New("fix marker must not be empty")

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath    string
	Ref         string
	Marker      string
	PathFilter  string
	ResultLimit int
	Workers     int
	Excludes    []string
	Detail      bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	Threshold   float64
	LogLevel    string

	HistoryBackend schema.HistoryBackend

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output

	// Clock supplies the analysis "now". It is read once per run.
	Clock func() time.Time
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Ref            string `mapstructure:"ref"`
	Marker         string `mapstructure:"marker"`
	Filter         string `mapstructure:"filter"`
	OutputFile     string `mapstructure:"output-file"`
	Limit          int    `mapstructure:"limit"`
	Workers        int    `mapstructure:"workers"`
	Exclude        string `mapstructure:"exclude"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	Detail         bool   `mapstructure:"detail"`
	Width          int    `mapstructure:"width"`
	HistoryBackend string `mapstructure:"history-backend"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
	LogLevel       string `mapstructure:"log-level"`

	// --- Fields from checkCmd.Flags() ---
	Threshold float64 `mapstructure:"threshold"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// Now returns the current time from the configured clock.
func (c *Config) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateAnalysisInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolveGitPathAndFilter(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ValidateHistoryBackend normalizes and checks a history backend name.
func ValidateHistoryBackend(name string) (schema.HistoryBackend, error) {
	backend := schema.HistoryBackend(strings.ToLower(strings.TrimSpace(name)))
	if backend == "" {
		return schema.GitCLIBackend, nil
	}
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be git, gogit", name)
	}
	return backend, nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		dsn, err := mysql.ParseDSN(connStr)
		if err != nil {
			return fmt.Errorf("invalid MySQL connection string: %w", err)
		}
		if dsn.DBName == "" {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		pgCfg, err := pgx.ParseConfig(connStr)
		if err != nil {
			return fmt.Errorf("invalid PostgreSQL connection string: %w", err)
		}
		if pgCfg.Database == "" {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the history and cache backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	history, err := ValidateHistoryBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = history

	cacheBackend := input.CacheBackend
	if cacheBackend == "" {
		cacheBackend = string(DefaultCacheBackend)
	}
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(cacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// validateSimpleInputs processes and validates output-related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.PathFilter = input.Filter
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(defaultString(input.Emoji, "no"))
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(defaultString(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Log level ---
	cfg.LogLevel = defaultString(input.LogLevel, DefaultLogLevel)
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}

	// --- 2. ResultLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 3. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(defaultString(input.Output, string(DefaultOutput))))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}

	// --- 5. Excludes Processing ---
	cfg.Excludes = nil
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// validateAnalysisInputs handles the ref, marker and threshold settings.
func validateAnalysisInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Ref = strings.TrimSpace(defaultString(input.Ref, DefaultRef))
	if err := validateRef(cfg.Ref); err != nil {
		return err
	}

	if strings.TrimSpace(input.Marker) == "" {
		return ErrEmptyMarker
	}
	cfg.Marker = input.Marker

	cfg.Threshold = input.Threshold
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Threshold < 0 {
		return fmt.Errorf("threshold must be greater than 0 (received %.2f)", input.Threshold)
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return nil
}

// resolveGitPathAndFilter resolves the Git repository path and set the implicit path filter.
func resolveGitPathAndFilter(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = resolveSymlinks(filepath.Clean(absSearchPath))

	info, statErr := os.Stat(absSearchPath)
	gitContextPath := absSearchPath
	if statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}

	gitRoot = resolveSymlinks(gitRoot)
	cfg.RepoPath = gitRoot

	if cfg.PathFilter != "" { // User-provided --filter flag takes precedence
		return nil
	}

	if absSearchPath != gitRoot {
		relativePath, err := filepath.Rel(gitRoot, absSearchPath)
		if err != nil {
			return err
		}

		// A path outside the root would filter out every file.
		if relativePath != "." && relativePath != ".." && !strings.HasPrefix(relativePath, ".."+string(os.PathSeparator)) {
			filter := relativePath
			if statErr == nil && info.IsDir() {
				filter += "/"
			}
			cfg.PathFilter = strings.ReplaceAll(filter, string(os.PathSeparator), "/")
		}
	}

	return nil
}

// resolveSymlinks returns path with symbolic links evaluated, or path itself when that fails.
func resolveSymlinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// validateRef rejects refs that git would parse as options.
func validateRef(ref string) error {
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("invalid ref '%s': refs must not start with '-'", ref)
	}
	return nil
}

// RevalidateAnalysis applies per-request overrides (from MCP tool calls) on top of
// an already validated Config. Empty values keep the base setting.
func RevalidateAnalysis(cfg *Config, ref, marker string, limit int) error {
	if ref = strings.TrimSpace(ref); ref != "" {
		if err := validateRef(ref); err != nil {
			return err
		}
		cfg.Ref = ref
	}
	if marker != "" {
		if strings.TrimSpace(marker) == "" {
			return ErrEmptyMarker
		}
		cfg.Marker = marker
	}
	if limit < 0 || limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, limit)
	}
	if limit > 0 {
		cfg.ResultLimit = limit
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a non-empty file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	profilePrefix = strings.TrimSpace(profilePrefix)
	if profilePrefix == "" {
		return nil
	}
	if strings.HasSuffix(profilePrefix, string(filepath.Separator)) {
		return fmt.Errorf("profile prefix %q must name a file, not a directory", profilePrefix)
	}
	profile.Enabled = true
	profile.Prefix = profilePrefix
	return nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
