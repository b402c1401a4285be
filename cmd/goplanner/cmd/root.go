package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile    string
	logLevel   string
	logFormat  string
	maxTables  int
	maxResults int
	noCache    bool
)

var rootCmd = &cobra.Command{
	Use:   "goplanner",
	Short: "Natural Language SQL Planner for Quick-Commerce Data",
	Long: `A deterministic natural-language-to-SQL planning tool over a
quick-commerce MySQL schema (products, platforms, prices, discounts,
inventory and more).

Features:
  - Schema-aware table selection from a semantic lexicon
  - Minimum-cost join path discovery over foreign keys
  - Rule-based filter, sort, and limit extraction
  - Plan validation with cost ceilings before any SQL runs
  - Optional LLM fallback when a plan is rejected`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "planner.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Planner overrides
	rootCmd.PersistentFlags().IntVar(&maxTables, "max-tables", 0,
		"Override maximum tables considered per question")
	rootCmd.PersistentFlags().IntVar(&maxResults, "max-results", 0,
		"Override maximum result rows handed to the planner")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false,
		"Disable the query result cache")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel   string
	LogFormat  string
	MaxTables  int
	MaxResults int
	NoCache    bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		MaxTables:  maxTables,
		MaxResults: maxResults,
		NoCache:    noCache,
	}
}
