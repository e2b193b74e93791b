// Package config parses ARMOR's CLI surface: positional header paths, report
// format, front-end forwarding flags, and logging level. Flag parsing uses
// github.com/spf13/cobra on a single root command (mirroring the
// rootCmd/AddCommand shape the teacher uses for its demo CLI, minus
// subcommands since ARMOR's surface is flag-only), with github.com/joho/godotenv
// optionally loading ARMOR_* defaults from a .env file before flags are
// parsed. Flags win over .env values; .env wins over hardcoded defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// ReportFormat selects which report file(s) are emitted.
type ReportFormat string

const (
	ReportHTML ReportFormat = "html"
	ReportJSON ReportFormat = "json"
)

// Config is the fully-resolved set of options for one ARMOR invocation.
type Config struct {
	BaseHeaderPath string
	HeadHeaderPath string
	HeaderNames    []string

	HeaderDir    string
	Report       ReportFormat
	ResourcePath string
	Includes     []string
	MacroDefs    []string
	DumpASTDiff  bool
	LogLevel     string

	LedgerDSN string
	DryRun    bool
}

// Parse builds a Config from argv, applying .env-sourced ARMOR_* defaults
// before flag parsing. envFile may be empty, in which case only a plain
// ".env" in the working directory is consulted (godotenv.Load's default;
// a missing file is not an error).
func Parse(argv []string, envFile string) (*Config, error) {
	applyDotEnv(envFile)

	cfg := &Config{
		Report:    ReportFormat(envDefault("ARMOR_REPORT", "html")),
		LogLevel:  envDefault("ARMOR_LOG_LEVEL", "INFO"),
		LedgerDSN: envDefault("ARMOR_LEDGER_DSN", "armor-runs.db"),
	}

	var reportFlag, resourcePath, headerDir, logLevel, ledgerDSN string
	var includes, macros []string
	var dumpASTDiff, dryRun bool

	root := &cobra.Command{
		Use:   "armor <base-header-path> <head-header-path> [header-names...]",
		Short: "Compare two revisions of a C/C++ public header",
		Long:  "ARMOR diffs two revisions of a C/C++ public header and classifies each change as backward-compatible or backward-incompatible, emitting JSON and/or HTML reports.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.BaseHeaderPath = args[0]
			cfg.HeadHeaderPath = args[1]
			cfg.HeaderNames = args[2:]
			if reportFlag != "" {
				cfg.Report = ReportFormat(strings.ToLower(reportFlag))
			}
			if cfg.Report != ReportHTML && cfg.Report != ReportJSON {
				return fmt.Errorf("config: invalid --report %q (want html or json)", reportFlag)
			}
			cfg.ResourcePath = resourcePath
			cfg.HeaderDir = headerDir
			cfg.Includes = includes
			cfg.MacroDefs = macros
			cfg.DumpASTDiff = dumpASTDiff
			cfg.DryRun = dryRun
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if ledgerDSN != "" {
				cfg.LedgerDSN = ledgerDSN
			}
			return nil
		},
		SilenceUsage:  false,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&reportFlag, "report", "r", string(cfg.Report), "report format: html or json (json implies both)")
	root.Flags().StringVarP(&resourcePath, "resource-path", "p", envDefault("ARMOR_RESOURCE_PATH", ""), "path to the front-end's resource directory")
	root.Flags().StringVar(&headerDir, "header-dir", envDefault("ARMOR_HEADER_DIR", ""), "directory to resolve header basenames against in both base and head")
	root.Flags().StringArrayVarP(&includes, "include", "I", nil, "include directory forwarded to the front-end (repeatable)")
	root.Flags().StringArrayVarP(&macros, "macro", "m", nil, "macro definition forwarded to the front-end (repeatable)")
	root.Flags().BoolVar(&dumpASTDiff, "dump-ast-diff", false, "additionally write the raw diff tree to ast_diff_output_<header>.json")
	root.Flags().StringVar(&logLevel, "log-level", cfg.LogLevel, "ERROR|LOG|INFO|DEBUG")
	root.Flags().StringVar(&ledgerDSN, "ledger-dsn", cfg.LedgerDSN, "run-ledger database DSN (local sqlite path or libsql URL)")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be written without touching the filesystem")

	root.SetArgs(argv)
	if err := root.Execute(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDotEnv(envFile string) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
		return
	}
	_ = godotenv.Load()
}

func envDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
