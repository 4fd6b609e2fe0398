package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/prospect/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File        string `arg:"" help:"File with one website URL per line"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent site limit"`
}

// Run discovers contacts for every website in the input file, writing one
// JSON result per line. A failed site is logged and skipped; it does not
// stop the batch.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := readURLs(c.File)
	if err != nil {
		return err
	}

	// Input lists exported from business directories repeat sites under
	// www/bare and http/https variants; key each site by bare host.
	filter := bloom.NewSiteFilter(uint(len(urls))+1000, 0.001)
	var unique []string
	for _, u := range urls {
		if filter.Seen(u) {
			continue
		}
		filter.Add(u)
		unique = append(unique, u)
	}

	runID := uuid.New().String()
	deps.Logger.Info("batch started",
		"run", runID,
		"sites", len(unique),
		"duplicates", len(urls)-len(unique),
	)

	enc := json.NewEncoder(deps.Stdout)
	var mu sync.Mutex
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for _, u := range unique {
		u := u
		g.Go(func() error {
			if err := deps.Limiter.Wait(gctx, u); err != nil {
				return err
			}

			result, err := deps.Discoverer.DiscoverContacts(gctx, u)
			if err != nil {
				failed.Add(1)
				deps.Logger.Warn("site failed", "run", runID, "url", u, "err", err)
				return nil
			}

			if deps.Results != nil {
				if err := deps.Results.CreateResult(gctx, result); err != nil {
					return err
				}
			}

			mu.Lock()
			defer mu.Unlock()
			return enc.Encode(result)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	deps.Logger.Info("batch finished",
		"run", runID,
		"sites", len(unique),
		"failed", failed.Load(),
	)
	return nil
}

// readURLs reads one URL per line, skipping blanks and # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return urls, nil
}
