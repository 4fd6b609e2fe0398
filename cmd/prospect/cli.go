package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Discoverer prospect.ContactDiscoverer
	Results    prospect.ResultService
	Limiter    *scrape.DomainLimiter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool          `short:"v" help:"Enable verbose logging"`
	DB          string        `env:"PROSPECT_DB" help:"SQLite database path for saving results"`
	NoRender    bool          `help:"Disable the headless browser fallback"`
	HomeTimeout time.Duration `default:"10s" help:"Home page fetch budget"`
	PageTimeout time.Duration `default:"5s" help:"Secondary page fetch budget"`
	MaxPages    int           `default:"12" help:"Secondary page limit per site"`
	RPS         float64       `default:"1" help:"Max requests per second per domain"`

	Discover DiscoverCmd `cmd:"" help:"Discover contacts for one business website"`
	Batch    BatchCmd    `cmd:"" help:"Discover contacts for a file of websites"`
	Results  ResultsCmd  `cmd:"" help:"List saved results"`
}
