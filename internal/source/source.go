// Package source loads the two record collections (sites, links) and feeds
// them through a preprocessing pass. The two collections may load
// concurrently; preprocessing never starts before both have completed.
package source

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"linkmap/core-go/internal/metrics"
	"linkmap/core-go/internal/overlay"
	"linkmap/core-go/internal/record"
)

// Loader fetches both raw collections.
type Loader interface {
	Load(ctx context.Context) (sites, links []record.Raw, err error)
}

// FileLoader reads the two collections from JSON files.
type FileLoader struct {
	SitesPath string
	LinksPath string
}

func (l FileLoader) Load(ctx context.Context) ([]record.Raw, []record.Raw, error) {
	var (
		wg    sync.WaitGroup
		sites []record.Raw
		links []record.Raw
		errs  [2]error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sites, errs[0] = loadFile(ctx, l.SitesPath)
	}()
	go func() {
		defer wg.Done()
		links, errs[1] = loadFile(ctx, l.LinksPath)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	return sites, links, nil
}

func loadFile(ctx context.Context, path string) ([]record.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	out, err := record.DecodeCollection(b)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return out, nil
}

// Refresh runs one full load+preprocess pass and records its metrics.
func Refresh(ctx context.Context, loader Loader, m *metrics.Metrics) (*overlay.Snapshot, error) {
	start := time.Now()

	sites, links, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	snap := overlay.BuildSnapshot(sites, links)

	m.ObservePreprocessPass(time.Since(start))
	m.AddLinksDropped(metrics.DropUnresolved, snap.Stats.Unresolved)
	m.AddLinksDropped(metrics.DropRuleFiltered, snap.Stats.RuleFiltered)
	return snap, nil
}
