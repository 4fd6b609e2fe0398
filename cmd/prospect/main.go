// Command prospect discovers contact details on small-business websites.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/prospect"
	"github.com/fwojciec/prospect/goquery"
	prospecthttp "github.com/fwojciec/prospect/http"
	"github.com/fwojciec/prospect/rod"
	"github.com/fwojciec/prospect/scrape"
	prospectslog "github.com/fwojciec/prospect/slog"
	"github.com/fwojciec/prospect/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened when --db is set.
	DB *sqlite.DB

	// Results is set when a database is configured.
	Results prospect.ResultService

	// Discoverer overrides the real pipeline for end-to-end testing.
	Discoverer prospect.ContactDiscoverer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("prospect"),
		kong.Description("Contact discovery for small-business websites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'prospect --help' to see available commands")
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelError
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger
	deps.Limiter = scrape.NewDomainLimiter(cli.RPS)

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		m.Results = sqlite.NewResultService(m.DB)
	}
	deps.Results = m.Results

	if m.Discoverer != nil {
		deps.Discoverer = m.Discoverer
		return kongCtx.Run()
	}

	static := prospecthttp.NewFetcher()
	defer static.Close()
	var staticFetcher prospect.Fetcher = prospectslog.NewLoggingFetcher(static, logger)

	opts := []scrape.Option{
		scrape.WithHomeTimeout(cli.HomeTimeout),
		scrape.WithSecondaryTimeout(cli.PageTimeout),
		scrape.WithMaxSecondaryPages(cli.MaxPages),
		scrape.WithSitemaps(prospecthttp.NewSitemapService(nil)),
	}
	if !cli.NoRender {
		// The browser manager launches lazily, so constructing it here
		// costs nothing until a page actually needs rendering.
		renderer := rod.NewFetcher(rod.NewBrowserManager())
		defer renderer.Close()
		opts = append(opts, scrape.WithRenderer(renderer, goquery.NewClassifier()))
	}

	deps.Discoverer = prospectslog.NewLoggingDiscoverer(scrape.NewScraper(staticFetcher, opts...), logger)

	return kongCtx.Run()
}
