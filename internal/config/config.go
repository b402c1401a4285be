// Package config provides configuration structures and loading for GoPlanner.
package config

// Config represents the complete application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Planner  PlannerConfig  `yaml:"planner" mapstructure:"planner"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents the MySQL connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// PlannerConfig represents query planning settings.
type PlannerConfig struct {
	MaxTables           int `yaml:"max_tables" mapstructure:"max_tables"`                       // Tables considered per question
	MaxResults          int `yaml:"max_results" mapstructure:"max_results"`                     // Upper bound handed to the planner
	QueryTimeoutSeconds int `yaml:"query_timeout_seconds" mapstructure:"query_timeout_seconds"` // Per-query execution timeout
}

// CacheConfig represents the query result cache settings.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds" mapstructure:"ttl_seconds"`
	MaxEntries int  `yaml:"max_entries" mapstructure:"max_entries"`
}

// LLMConfig represents the optional LLM fallback agent.
type LLMConfig struct {
	Enabled        bool   `yaml:"enabled" mapstructure:"enabled"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	APIKey         string `yaml:"api_key" mapstructure:"api_key"`
	Model          string `yaml:"model" mapstructure:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Planner: PlannerConfig{
			MaxTables:           10,
			MaxResults:          1000,
			QueryTimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 300,
			MaxEntries: 1000,
		},
		LLM: LLMConfig{
			Enabled:        false,
			Model:          "gpt-3.5-turbo",
			TimeoutSeconds: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}
