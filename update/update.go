// Package update fetches configured documentation sources and stores
// the ones whose content changed. It coordinates retries, per-host
// rate limiting, and hash comparison against the stored copies.
package update

import (
	"context"
	"net/url"
	"time"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/fs"
	"golang.org/x/sync/errgroup"
)

// Status describes the outcome of updating one source.
type Status int

// Status values for Result.
const (
	StatusUnchanged Status = iota
	StatusUpdated
	StatusFailed
)

// Result holds the outcome of updating a single source.
type Result struct {
	Source apidex.Source
	Status Status
	Err    error
}

// Updater fetches all configured sources and writes changed documents
// to the store.
type Updater struct {
	Fetcher     apidex.Fetcher
	Store       apidex.DocumentStore
	Limiter     *HostLimiter
	Concurrency int
	RetryDelays []time.Duration

	// DryRun reports what would change without writing anything.
	DryRun bool
}

// UpdateAll fetches every source concurrently and returns one Result
// per source, in source order. A failing source never aborts the run;
// its failure is recorded in its Result.
func (u *Updater) UpdateAll(ctx context.Context, sources []apidex.Source) []Result {
	concurrency := u.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]Result, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			results[i] = u.updateOne(gctx, source)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// updateOne fetches a single source and stores it when its content
// hash differs from the stored copy's.
func (u *Updater) updateOne(ctx context.Context, source apidex.Source) Result {
	result := Result{Source: source}

	if u.Limiter != nil {
		parsed, err := url.Parse(source.URL)
		if err != nil {
			result.Status = StatusFailed
			result.Err = apidex.Errorf(apidex.EINVALID, "source %s: invalid URL: %v", source.Name, err)
			return result
		}
		if err := u.Limiter.Wait(ctx, parsed.Host); err != nil {
			result.Status = StatusFailed
			result.Err = err
			return result
		}
	}

	delays := u.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	data, err := FetchWithRetryDelays(ctx, u.Fetcher, source.URL, delays)
	if err != nil {
		result.Status = StatusFailed
		result.Err = apidex.Errorf(apidex.EUNAVAILABLE, "source %s: %v", source.Name, err)
		return result
	}

	oldHash, err := u.Store.DocumentHash(source.Output)
	if err == nil && oldHash == fs.Hash(data) {
		result.Status = StatusUnchanged
		return result
	}

	result.Status = StatusUpdated
	if u.DryRun {
		return result
	}

	if err := u.Store.WriteDocument(source.Output, data); err != nil {
		result.Status = StatusFailed
		result.Err = err
	}
	return result
}
