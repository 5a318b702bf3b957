package main

import "fmt"

// Run executes the query and prints the matching records.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if c.Boolean {
		docs, err := deps.Index.Boolean(c.Query, c.Field)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Found %d documents\n", len(docs))
		for _, d := range docs {
			fmt.Fprintf(deps.Stdout, "ID: %d, Title: %s\n", d.ID, d.Title)
		}
		return nil
	}

	hits := deps.Index.Search(c.Query, c.Top, c.Field)
	if len(hits) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found.")
		return nil
	}
	for i, h := range hits {
		fmt.Fprintf(deps.Stdout, "Rank: %d, ID: %d, Title: %s, Score: %.4f\n", i+1, h.Doc.ID, h.Doc.Title, h.Score)
	}
	return nil
}
