package main

import (
	"encoding/json"

	"github.com/fwojciec/prospect"
)

// ResultsCmd is the "results" subcommand.
type ResultsCmd struct {
	URL   string `help:"Filter by website URL"`
	Limit int    `default:"20" help:"Maximum results to list"`
}

// Run lists saved results as JSON lines, most recent first.
func (c *ResultsCmd) Run(deps *Dependencies) error {
	if deps.Results == nil {
		return prospect.Errorf(prospect.EINVALID, "the results command requires --db")
	}

	filter := prospect.ResultFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	results, err := deps.Results.FindResults(deps.Ctx, filter)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	for _, result := range results {
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	return nil
}
