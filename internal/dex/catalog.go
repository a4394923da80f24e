package dex

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

var ErrNotReady = errors.New("pokedex data is still loading")

// Catalog loads the pool and egg group table once, in the background, and
// hands them out read-only afterwards.
type Catalog struct {
	dir    string
	logger *slog.Logger

	once   sync.Once
	ready  chan struct{}
	pool   *Pool
	groups GroupTable
	err    error
}

func NewCatalog(dir string, logger *slog.Logger) *Catalog {
	return &Catalog{
		dir:    dir,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// NewStaticCatalog returns a catalog that is already loaded.
func NewStaticCatalog(pool *Pool, groups GroupTable) *Catalog {
	c := &Catalog{ready: make(chan struct{}), pool: pool, groups: groups}
	c.once.Do(func() { close(c.ready) })
	return c
}

// Load reads both cache files concurrently. Only the first call does any
// work; later calls return the first call's error. A ctx that is already
// done fails the load without touching the files.
func (c *Catalog) Load(ctx context.Context) error {
	c.once.Do(func() {
		defer close(c.ready)

		var (
			pool   *Pool
			groups GroupTable
		)
		if err := ctx.Err(); err != nil {
			c.err = err
			return
		}

		var g errgroup.Group
		g.Go(func() error {
			p, err := LoadPool(filepath.Join(c.dir, DataFile))
			pool = p
			return err
		})
		g.Go(func() error {
			t, err := LoadGroups(filepath.Join(c.dir, GroupFile))
			groups = t
			return err
		})
		if err := g.Wait(); err != nil {
			c.err = err
			c.logger.Error("loading pokedex cache", "dir", c.dir, "error", err)
			return
		}
		c.pool, c.groups = pool, groups
		c.logger.Info("pokedex cache loaded", "pokemon", pool.Len(), "egg_groups", len(groups))
	})
	<-c.ready
	return c.err
}

// Get returns the loaded data without blocking.
func (c *Catalog) Get() (*Pool, GroupTable, error) {
	select {
	case <-c.ready:
		return c.pool, c.groups, c.err
	default:
		return nil, nil, ErrNotReady
	}
}

// Wait blocks until loading finishes or ctx is done.
func (c *Catalog) Wait(ctx context.Context) (*Pool, GroupTable, error) {
	select {
	case <-c.ready:
		return c.pool, c.groups, c.err
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

// Check reports whether the catalog loaded successfully.
func (c *Catalog) Check(_ context.Context) error {
	_, _, err := c.Get()
	return err
}
