package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/arjaygg/teampulse/schema"
)

// Default values for configuration.
const (
	DefaultLookbackDays     = 90
	DefaultResultLimit      = 25
	MaxResultLimit          = 1000
	DefaultPrecision        = 1
	DefaultVariancePct      = 20.0
	DefaultBacklogAgeDays   = 30
)

// CacheGranularity defines the time granularity for caching fetched
// datasets. Time windows are truncated to this before key generation so a
// re-run within the hour hits the cache.
const CacheGranularity = time.Hour

// DefaultWorkers is the default number of concurrent fetch workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for an analysis run.
// This struct is the "final, validated" config.
type Config struct {
	OrgURL  string
	Project string
	Team    string
	PAT     string

	ItemsFile   string
	UpdatesFile string

	RosterPath string
	Members    []schema.TeamMember

	StartTime time.Time
	EndTime   time.Time

	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Policy               schema.StatePolicy
	VarianceThresholdPct float64
	BacklogAgeDays       int

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext
}

// PolicyRawInput holds state policy overrides from the YAML config file.
// Nil fields keep the stock defaults.
type PolicyRawInput struct {
	ActiveStates    []string `mapstructure:"active_states"`
	WaitStates      []string `mapstructure:"wait_states"`
	CompletedStates []string `mapstructure:"completed_states"`
	MaxIntervalDays *int     `mapstructure:"max_interval_days"`
	SprintCutoff    *int     `mapstructure:"sprint_cutoff_days"`
	WIPModerate     *int     `mapstructure:"wip_moderate"`
	WIPHigh         *int     `mapstructure:"wip_high"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	OrgURL  string `mapstructure:"org-url"`
	Project string `mapstructure:"project"`
	Team    string `mapstructure:"team"`
	PAT     string `mapstructure:"pat"`

	ItemsFile   string `mapstructure:"items-file"`
	UpdatesFile string `mapstructure:"updates-file"`
	Roster      string `mapstructure:"roster"`

	Start      string `mapstructure:"start"`
	End        string `mapstructure:"end"`
	Limit      int    `mapstructure:"limit"`
	Workers    int    `mapstructure:"workers"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	VarianceThreshold *float64 `mapstructure:"variance-threshold"`
	BacklogAge        *int     `mapstructure:"backlog-age"`

	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`

	// --- State policy overrides from config file ---
	Policy PolicyRawInput `mapstructure:"policy"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Members != nil {
		clone.Members = make([]schema.TeamMember, len(c.Members))
		copy(clone.Members, c.Members)
	}
	clone.Policy = clonePolicy(c.Policy)
	return &clone
}

// CloneWithTimeWindow creates a copy of the Config and sets the new
// StartTime and EndTime.
func (c *Config) CloneWithTimeWindow(start, end time.Time) *Config {
	clone := c.Clone()
	clone.StartTime = start
	clone.EndTime = end
	return clone
}

// GetAnalysisStartTime returns the configured start time, truncated to the
// caching granularity.
func (c *Config) GetAnalysisStartTime() time.Time {
	return c.StartTime.Truncate(CacheGranularity)
}

// GetAnalysisEndTime returns the configured end time, truncated to the
// caching granularity.
func (c *Config) GetAnalysisEndTime() time.Time {
	return c.EndTime.Truncate(CacheGranularity)
}

// OfflineMode reports whether the dataset comes from local JSON files
// rather than the tracker API.
func (c *Config) OfflineMode() bool {
	return c.ItemsFile != ""
}

// MemberNames returns the display names of active roster members. An empty
// roster means "group by whoever appears in the data".
func (c *Config) MemberNames() []string {
	var names []string
	for _, m := range c.Members {
		if m.Active {
			names = append(names, m.DisplayName)
		}
	}
	return names
}

func clonePolicy(p schema.StatePolicy) schema.StatePolicy {
	clone := p
	clone.ActiveStates = append([]string(nil), p.ActiveStates...)
	clone.WaitStates = append([]string(nil), p.WaitStates...)
	clone.CompletedStates = append([]string(nil), p.CompletedStates...)
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := processSource(cfg, input); err != nil {
		return err
	}
	if err := processPolicy(cfg, input); err != nil {
		return err
	}
	if err := processRoster(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-source fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 4. Threshold Validation ---
	cfg.VarianceThresholdPct = DefaultVariancePct
	if input.VarianceThreshold != nil {
		if *input.VarianceThreshold <= 0 {
			return fmt.Errorf("variance-threshold must be positive (received %.1f)", *input.VarianceThreshold)
		}
		cfg.VarianceThresholdPct = *input.VarianceThreshold
	}
	cfg.BacklogAgeDays = DefaultBacklogAgeDays
	if input.BacklogAge != nil {
		if *input.BacklogAge <= 0 {
			return fmt.Errorf("backlog-age must be positive (received %d)", *input.BacklogAge)
		}
		cfg.BacklogAgeDays = *input.BacklogAge
	}

	// --- 5. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processTimeRange handles date parsing and time range validation.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()
	cfg.EndTime = now
	cfg.StartTime = cfg.EndTime.Add(-DefaultLookbackDays * 24 * time.Hour)

	parse := func(s string) (time.Time, error) {
		if t, err := time.Parse(DateTimeFormat, s); err == nil {
			return t, nil
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, nil
		}
		return ParseRelativeTime(s, now)
	}

	if input.Start != "" {
		t, err := parse(input.Start)
		if err != nil {
			return fmt.Errorf("invalid start date '%s'. Expected ISO8601, YYYY-MM-DD or 'N [units] ago': %w", input.Start, err)
		}
		cfg.StartTime = t
	}
	if input.End != "" {
		t, err := parse(input.End)
		if err != nil {
			return fmt.Errorf("invalid end date '%s'. Expected ISO8601, YYYY-MM-DD or 'N [units] ago': %w", input.End, err)
		}
		cfg.EndTime = t
	}

	if cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)",
			cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}
	return nil
}

// processSource validates the dataset source: local JSON files or the
// tracker API, never neither.
func processSource(cfg *Config, input *ConfigRawInput) error {
	cfg.ItemsFile = strings.TrimSpace(input.ItemsFile)
	cfg.UpdatesFile = strings.TrimSpace(input.UpdatesFile)
	cfg.OrgURL = strings.TrimRight(strings.TrimSpace(input.OrgURL), "/")
	cfg.Project = strings.TrimSpace(input.Project)
	cfg.Team = strings.TrimSpace(input.Team)
	cfg.PAT = input.PAT

	if cfg.ItemsFile != "" {
		return nil // Offline mode; updates file is optional
	}
	if cfg.UpdatesFile != "" {
		return fmt.Errorf("--updates-file requires --items-file")
	}
	if cfg.OrgURL == "" || cfg.Project == "" {
		return fmt.Errorf("either --items-file or both --org-url and --project are required")
	}
	if cfg.PAT == "" {
		return fmt.Errorf("a personal access token is required for API access (set TEAMPULSE_PAT)")
	}
	return nil
}

// processPolicy merges config-file policy overrides onto the defaults.
func processPolicy(cfg *Config, input *ConfigRawInput) error {
	policy := schema.DefaultStatePolicy()

	if len(input.Policy.ActiveStates) > 0 {
		policy.ActiveStates = input.Policy.ActiveStates
	}
	if len(input.Policy.WaitStates) > 0 {
		policy.WaitStates = input.Policy.WaitStates
	}
	if len(input.Policy.CompletedStates) > 0 {
		policy.CompletedStates = input.Policy.CompletedStates
	}
	if input.Policy.MaxIntervalDays != nil {
		policy.MaxPlausibleIntervalDays = *input.Policy.MaxIntervalDays
	}
	if input.Policy.SprintCutoff != nil {
		policy.SprintPlanningCutoffDays = *input.Policy.SprintCutoff
	}
	if input.Policy.WIPModerate != nil {
		policy.WIPModerateThreshold = *input.Policy.WIPModerate
	}
	if input.Policy.WIPHigh != nil {
		policy.WIPHighThreshold = *input.Policy.WIPHigh
	}

	if policy.MaxPlausibleIntervalDays <= 0 {
		return fmt.Errorf("policy.max_interval_days must be positive (received %d)", policy.MaxPlausibleIntervalDays)
	}
	if policy.SprintPlanningCutoffDays < 0 {
		return fmt.Errorf("policy.sprint_cutoff_days cannot be negative (received %d)", policy.SprintPlanningCutoffDays)
	}
	if policy.WIPModerateThreshold <= 0 || policy.WIPHighThreshold <= policy.WIPModerateThreshold {
		return fmt.Errorf("WIP thresholds must satisfy 0 < moderate < high (received %d, %d)",
			policy.WIPModerateThreshold, policy.WIPHighThreshold)
	}

	cfg.Policy = policy
	return nil
}

// processRoster loads the roster file when configured. A missing roster
// file is a structural failure; analyzing without a roster is allowed but
// must be explicit (no --roster flag).
func processRoster(cfg *Config, input *ConfigRawInput) error {
	cfg.RosterPath = strings.TrimSpace(input.Roster)
	if cfg.RosterPath == "" {
		return nil
	}
	members, err := LoadRoster(cfg.RosterPath)
	if err != nil {
		return fmt.Errorf("failed to load roster %q: %w", cfg.RosterPath, err)
	}
	cfg.Members = members
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if input.AnalysisBackend == "" {
		cfg.AnalysisBackend = schema.NoneBackend
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	// Cache and analysis must not share a SQLite file.
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		analysisPath := cfg.AnalysisDBConnect
		if analysisPath == "" {
			analysisPath = GetAnalysisDBFilePath()
		}
		if cachePath == analysisPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}
