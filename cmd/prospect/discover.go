package main

import (
	"encoding/json"
)

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL string `arg:"" help:"Business website URL"`
}

// Run discovers contacts for a single website and prints the result as JSON.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	result, err := deps.Discoverer.DiscoverContacts(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	if deps.Results != nil {
		if err := deps.Results.CreateResult(deps.Ctx, result); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
