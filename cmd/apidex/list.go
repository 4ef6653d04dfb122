package main

import "fmt"

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if len(deps.Sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources configured.")
		return nil
	}

	for _, s := range deps.Sources {
		fmt.Fprintf(deps.Stdout, "%-24s %-8s %s\n", s.Name, s.Format, s.URL)
	}

	return nil
}
