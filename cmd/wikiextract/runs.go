package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wikiextract"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := wikiextract.RunFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	runs, err := deps.Journal.FindRuns(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		status := "ok"
		if !r.Succeeded() {
			status = r.ErrorCode
		}
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %s  %s\n",
			r.StartedAt.Local().Format(time.DateTime), status, r.URL, r.Path)
	}

	return nil
}
