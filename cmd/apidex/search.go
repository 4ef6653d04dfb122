package main

import (
	"fmt"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/ingest"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	builder := &ingest.Builder{Store: deps.Store, Logger: deps.Logger}
	index := builder.Build(deps.Sources)

	results := index.Search(c.Query, apidex.SearchOptions{
		API:    c.API,
		Method: c.Method,
		Limit:  c.Limit,
	})
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching endpoints. Run 'apidex update' to fetch documentation first.")
		return nil
	}

	for _, e := range results {
		fmt.Fprintf(deps.Stdout, "%-20s %-6s %-40s %s\n", e.APIName, e.Method, e.Path, e.Summary)
	}

	return nil
}
