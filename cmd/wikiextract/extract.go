package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/fwojciec/wikiextract"
)

// Run executes the extract command and prints the written path. A failed
// run's error is returned unprinted; main reports it once.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	out, err := deps.Pipeline.Run(deps.Ctx, c.URL)
	if err != nil {
		if wikiextract.ErrorCode(err) == wikiextract.EENGINE && c.Engine == "rod" {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or pass --browser-bin")
		}
		return err
	}

	for _, field := range slices.Sorted(maps.Keys(out.FieldErrors)) {
		fmt.Fprintf(deps.Stderr, "warning: field %q could not be extracted\n", field)
	}
	fmt.Fprintln(deps.Stdout, out.Path)
	return nil
}
