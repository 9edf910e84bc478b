package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	metrics "github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	loadTimer   = metrics.NewRegisteredTimer("catalog.load.ns", metrics.DefaultRegistry)
	degradedSrc = metrics.NewRegisteredCounter("catalog.degraded.count", metrics.DefaultRegistry)
)

// Paths locates the three static data sources.
type Paths struct {
	DifficultyTable string
	MatchingTable   string
	VersionOrder    string
}

// Sources bundles the loaded reference data. Fields are never nil after
// LoadSources.
type Sources struct {
	Catalog      *Catalog
	Aliases      *AliasTable
	VersionOrder VersionOrder
}

// Empty returns sources with no data.
func Empty() Sources {
	return Sources{
		Catalog:      New(),
		Aliases:      NewAliasTable(),
		VersionOrder: VersionOrder{},
	}
}

// LoadCatalog reads the difficulty table file.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open difficulty table: %w", err)
	}
	defer f.Close()

	c, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("decode difficulty table: %w", err)
	}
	return c, nil
}

// LoadAliases reads the matching table file.
func LoadAliases(path string) (*AliasTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matching table: %w", err)
	}
	defer f.Close()

	t, err := DecodeAliases(f)
	if err != nil {
		return nil, fmt.Errorf("decode matching table: %w", err)
	}
	return t, nil
}

// LoadVersionOrder reads the version order file.
func LoadVersionOrder(path string) (VersionOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open version order: %w", err)
	}
	defer f.Close()
	return DecodeVersionOrder(f)
}

// LoadSources loads all three sources concurrently. A source that fails to
// load is replaced by an empty value and logged; the others are unaffected.
func LoadSources(ctx context.Context, p Paths, log *zap.Logger) Sources {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()
	defer loadTimer.UpdateSince(start)

	out := Empty()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if ctx.Err() != nil {
			return nil
		}
		c, err := LoadCatalog(p.DifficultyTable)
		if err != nil {
			degraded(log, "difficulty table", p.DifficultyTable, err)
			return nil
		}
		out.Catalog = c
		return nil
	})
	g.Go(func() error {
		if ctx.Err() != nil {
			return nil
		}
		t, err := LoadAliases(p.MatchingTable)
		if err != nil {
			degraded(log, "matching table", p.MatchingTable, err)
			return nil
		}
		out.Aliases = t
		return nil
	})
	g.Go(func() error {
		if ctx.Err() != nil {
			return nil
		}
		o, err := LoadVersionOrder(p.VersionOrder)
		if err != nil {
			degraded(log, "version order", p.VersionOrder, err)
			return nil
		}
		out.VersionOrder = o
		return nil
	})

	_ = g.Wait()

	log.Debug("reference data loaded",
		zap.Int("titles", out.Catalog.Len()),
		zap.Int("aliases", out.Aliases.Len()),
		zap.Int("versions", len(out.VersionOrder)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out
}

func degraded(log *zap.Logger, source, path string, err error) {
	degradedSrc.Inc(1)
	log.Warn("reference data unavailable, using empty "+source,
		zap.String("source", source),
		zap.String("path", path),
		zap.Error(err),
	)
}
