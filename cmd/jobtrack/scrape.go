package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jobtrack-engine/internal/bridge"
)

const scrapeParallelism = 4

// scrapeAll fetches every URL concurrently and returns results in input
// order. Per-page failures are carried in each Result, never returned.
func scrapeAll(ctx context.Context, host *bridge.Host, f *bridge.Fetcher, urls []string) []bridge.Result {
	results := make([]bridge.Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scrapeParallelism)
	for i, u := range urls {
		g.Go(func() error {
			var form bridge.Form
			form.Prefill(u)
			res := host.Scrape(gctx, f.Open(u), u)
			form.Hydrate(res.Candidate)
			res.Candidate.URL = form.URL
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}
