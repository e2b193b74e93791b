package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePositionalArgs(t *testing.T) {
	cfg, err := Parse([]string{"base/api.h", "head/api.h"}, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.BaseHeaderPath != "base/api.h" || cfg.HeadHeaderPath != "head/api.h" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.Report != ReportHTML {
		t.Fatalf("expected default report html, got %s", cfg.Report)
	}
}

func TestParseJSONReportFlag(t *testing.T) {
	cfg, err := Parse([]string{"base.h", "head.h", "-r", "json"}, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Report != ReportJSON {
		t.Fatalf("expected json report, got %s", cfg.Report)
	}
}

func TestParseRejectsUnknownReportFormat(t *testing.T) {
	_, err := Parse([]string{"base.h", "head.h", "-r", "xml"}, "")
	if err == nil {
		t.Fatalf("expected error for invalid report format")
	}
}

func TestParseRepeatableIncludesAndMacros(t *testing.T) {
	cfg, err := Parse([]string{"base.h", "head.h", "-I", "/usr/include", "-I", "./vendor", "-m", "FOO=1"}, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Includes) != 2 || cfg.Includes[0] != "/usr/include" || cfg.Includes[1] != "./vendor" {
		t.Fatalf("unexpected includes: %v", cfg.Includes)
	}
	if len(cfg.MacroDefs) != 1 || cfg.MacroDefs[0] != "FOO=1" {
		t.Fatalf("unexpected macros: %v", cfg.MacroDefs)
	}
}

func TestParseMissingPositionalArgsFails(t *testing.T) {
	_, err := Parse([]string{"base.h"}, "")
	if err == nil {
		t.Fatalf("expected error for missing head header path")
	}
}

func TestParseEnvFileSuppliesDefaults(t *testing.T) {
	os.Unsetenv("ARMOR_REPORT")
	os.Unsetenv("ARMOR_LOG_LEVEL")
	t.Cleanup(func() {
		os.Unsetenv("ARMOR_REPORT")
		os.Unsetenv("ARMOR_LOG_LEVEL")
	})
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("ARMOR_REPORT=json\nARMOR_LOG_LEVEL=DEBUG\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Parse([]string{"base.h", "head.h"}, envPath)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Report != ReportJSON {
		t.Fatalf("expected .env to set report=json, got %s", cfg.Report)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Fatalf("expected .env to set log level, got %s", cfg.LogLevel)
	}
}

func TestParseFlagWinsOverEnvFile(t *testing.T) {
	os.Unsetenv("ARMOR_REPORT")
	t.Cleanup(func() { os.Unsetenv("ARMOR_REPORT") })
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("ARMOR_REPORT=json\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Parse([]string{"base.h", "head.h", "-r", "html"}, envPath)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Report != ReportHTML {
		t.Fatalf("expected flag to win over .env, got %s", cfg.Report)
	}
}
