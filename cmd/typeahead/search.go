package main

import (
	"fmt"

	"github.com/fwojciec/typeahead"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	engine, err := deps.engine(c.Kind)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", typeahead.ErrorMessage(err))
		return err
	}

	printRecords(deps, c.Query, engine.Resolve(deps.Ctx, c.Query))
	return nil
}

// Run executes the local command.
func (c *LocalCmd) Run(deps *Dependencies) error {
	engine, err := deps.engine(c.Kind)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", typeahead.ErrorMessage(err))
		return err
	}

	printRecords(deps, c.Query, engine.ResolveLocalOnly(c.Query))
	return nil
}

func printRecords(deps *Dependencies, query string, records []typeahead.Record) {
	if typeahead.IsBlank(query) {
		fmt.Fprintln(deps.Stdout, "Nothing to search for.")
		return
	}
	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No matches for %q.\n", query)
		return
	}
	fmt.Fprintln(deps.Stdout, renderRecords(records, nil))
}
