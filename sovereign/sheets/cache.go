package sheets

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// CachedClient wraps a Client with a TTL'd LRU cache on table reads. Every
// write through the wrapper drops the cached copy of the written table, so
// the next read after a mutation sees fresh data.
type CachedClient struct {
	inner Client
	cache *lru.Cache
	ttl   time.Duration
}

type cacheEntry struct {
	table   *Table
	fetched time.Time
}

func NewCachedClient(inner Client, size int, ttl time.Duration) (*CachedClient, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedClient{inner: inner, cache: cache, ttl: ttl}, nil
}

func (c *CachedClient) FetchTable(ctx context.Context, name string) (*Table, error) {
	if v, ok := c.cache.Get(name); ok {
		entry := v.(cacheEntry)
		if time.Since(entry.fetched) < c.ttl {
			return entry.table, nil
		}
		c.cache.Remove(name)
	}

	table, err := c.inner.FetchTable(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.Add(name, cacheEntry{table: table, fetched: time.Now()})
	return table, nil
}

func (c *CachedClient) BatchFetch(ctx context.Context, names ...string) (map[string]*Table, error) {
	result := make(map[string]*Table, len(names))
	for _, name := range names {
		table, err := c.FetchTable(ctx, name)
		if err != nil {
			return nil, err
		}
		result[name] = table
	}
	return result, nil
}

func (c *CachedClient) AppendRows(ctx context.Context, name string, rows [][]interface{}) error {
	c.cache.Remove(name)
	return c.inner.AppendRows(ctx, name, rows)
}

func (c *CachedClient) UpdateCells(ctx context.Context, name string, updates []CellUpdate) error {
	c.cache.Remove(name)
	return c.inner.UpdateCells(ctx, name, updates)
}

func (c *CachedClient) EnsureSheet(ctx context.Context, name string, want []string) error {
	c.cache.Remove(name)
	return c.inner.EnsureSheet(ctx, name, want)
}
