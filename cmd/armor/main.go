// Command armor compares two revisions of a C/C++ public header and
// classifies every change as backward-compatible or backward-incompatible,
// writing JSON and/or HTML reports.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/oxhq/armor/internal/config"
	"github.com/oxhq/armor/internal/exclude"
	"github.com/oxhq/armor/internal/frontend"
	"github.com/oxhq/armor/internal/frontend/cpp"
	"github.com/oxhq/armor/internal/ledger"
	"github.com/oxhq/armor/internal/logging"
	"github.com/oxhq/armor/internal/orchestrator"
	"github.com/oxhq/armor/internal/reportio"
)

// exit codes per spec.md §7's error-handling categories.
const (
	exitOK       = 0
	exitInvoke   = 1
	exitIO       = 2
	exitInternal = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	defer func() {
		if r := recover(); r != nil {
			logging.L.Error("internal invariant violated", "panic", r)
			os.Exit(exitInternal)
		}
	}()

	cfg, err := config.Parse(argv, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvoke
	}

	logging.Init(logging.Options{Level: logging.ParseLevel(cfg.LogLevel)})

	reg := frontend.NewRegistry()
	if err := reg.Register(cpp.New()); err != nil {
		logging.L.Error("register front-end", "err", err)
		return exitInternal
	}

	exclusions := loadExclusions()
	excluder := exclude.New(exclusions)

	var writer reportio.Writer
	if cfg.DryRun {
		writer = reportio.NewDryRunWriter()
	} else {
		writer = reportio.NewDiskWriter()
	}

	var led *ledger.Ledger
	if !cfg.DryRun {
		led, err = ledger.Open(cfg.LedgerDSN, false)
		if err != nil {
			logging.L.Error("open run ledger", "err", err)
			return exitIO
		}
		defer led.Close()
	}

	orch := orchestrator.New(cfg, reg, excluder, exclusions, writer, led)
	pairs := orchestrator.Resolve(cfg)
	results := orch.Run(pairs)

	fmt.Println(writer.Summary())

	return summarize(results)
}

// loadExclusions reads the exclusion list from ARMOR_EXCLUSIONS (a
// comma-separated list of patterns), spec.md §6's "Exclusion list accepted
// per-context at construction time". A dedicated flag/file loader is left
// to a future iteration; the environment variable covers the common case
// without adding another flag to an already wide surface.
func loadExclusions() []string {
	raw := os.Getenv("ARMOR_EXCLUSIONS")
	if raw == "" {
		return nil
	}
	var patterns []string
	for _, p := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// summarize prints a one-line compatibility verdict colored the same way
// the HTML report colors compatibility cells, and returns the process exit
// code: non-zero if any per-header I/O failure occurred, 0 otherwise (a
// skipped parse failure does not fail the run per spec.md §7).
func summarize(results []orchestrator.PipelineResult) int {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	exitCode := exitOK
	incompatible := 0
	for _, r := range results {
		if r.Err != nil {
			logging.L.Error("header pair failed", "pair", r.Pair.Name, "err", r.Err)
			exitCode = exitIO
			continue
		}
		incompatible += r.Removed + r.Modified
	}

	if incompatible > 0 {
		fmt.Println(red(fmt.Sprintf("%d backward-incompatible change(s) found", incompatible)))
	} else {
		fmt.Println(green("No backward-incompatible changes found"))
	}

	return exitCode
}
