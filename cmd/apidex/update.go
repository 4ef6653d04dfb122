package main

import (
	"fmt"
	"strings"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/update"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	sources := deps.Sources
	if c.API != "" {
		var filtered []apidex.Source
		for _, s := range sources {
			if strings.Contains(strings.ToLower(s.Name), strings.ToLower(c.API)) {
				filtered = append(filtered, s)
			}
		}
		sources = filtered
	}
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching sources.")
		return nil
	}

	updater := &update.Updater{
		Fetcher:     deps.Fetcher,
		Store:       deps.Store,
		Limiter:     update.NewHostLimiter(1),
		Concurrency: c.Concurrency,
		DryRun:      c.DryRun,
	}

	results := updater.UpdateAll(deps.Ctx, sources)

	var failed int
	for _, r := range results {
		switch r.Status {
		case update.StatusUpdated:
			if c.DryRun {
				fmt.Fprintf(deps.Stdout, "would update  %s\n", r.Source.Name)
			} else {
				fmt.Fprintf(deps.Stdout, "updated    %s\n", r.Source.Name)
			}
		case update.StatusUnchanged:
			fmt.Fprintf(deps.Stdout, "unchanged  %s\n", r.Source.Name)
		case update.StatusFailed:
			failed++
			fmt.Fprintf(deps.Stderr, "failed     %s: %s\n", r.Source.Name, apidex.ErrorMessage(r.Err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(results))
	}
	return nil
}
