package sheets

import (
	"context"
	"sync"
	"testing"
	"time"
)

// countingClient wraps MemClient and counts reads that reach the backend.
type countingClient struct {
	*MemClient
	mu      sync.Mutex
	fetches int
}

func (c *countingClient) FetchTable(ctx context.Context, name string) (*Table, error) {
	c.mu.Lock()
	c.fetches++
	c.mu.Unlock()
	return c.MemClient.FetchTable(ctx, name)
}

func (c *countingClient) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

func newCountingClient() *countingClient {
	inner := NewMemClient()
	inner.Seed("Sectors", []string{"Sector", "Boss", "Minion"}, [][]string{
		{"Math", "Algebra", "Fractions"},
	})
	return &countingClient{MemClient: inner}
}

func TestCachedClientServesRepeatReadsFromCache(t *testing.T) {
	inner := newCountingClient()
	client, err := NewCachedClient(inner, 4, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := client.FetchTable(context.Background(), "Sectors"); err != nil {
			t.Fatal(err)
		}
	}
	if got := inner.Fetches(); got != 1 {
		t.Errorf("backend fetches = %d, want 1", got)
	}
}

func TestCachedClientInvalidatesOnWrite(t *testing.T) {
	inner := newCountingClient()
	client, err := NewCachedClient(inner, 4, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.FetchTable(context.Background(), "Sectors"); err != nil {
		t.Fatal(err)
	}
	err = client.AppendRows(context.Background(), "Sectors", [][]interface{}{
		{"Math", "Algebra", "Decimals"},
	})
	if err != nil {
		t.Fatal(err)
	}

	table, err := client.FetchTable(context.Background(), "Sectors")
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Errorf("rows after write = %d, want 2 (stale cache served)", table.Len())
	}
	if got := inner.Fetches(); got != 2 {
		t.Errorf("backend fetches = %d, want 2", got)
	}
}

func TestCachedClientExpiresEntries(t *testing.T) {
	inner := newCountingClient()
	client, err := NewCachedClient(inner, 4, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.FetchTable(context.Background(), "Sectors"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := client.FetchTable(context.Background(), "Sectors"); err != nil {
		t.Fatal(err)
	}
	if got := inner.Fetches(); got != 2 {
		t.Errorf("backend fetches = %d, want 2 after TTL expiry", got)
	}
}
