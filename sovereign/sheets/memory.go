package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemClient is an in-memory Client with the same semantics as the Google
// one. Tests run the real repositories and services on top of it; the
// write counter lets them assert that an idempotent pass produced zero
// additional writes.
type MemClient struct {
	mu     sync.Mutex
	tables map[string]*memTable
	writes int
}

type memTable struct {
	headers []string
	rows    [][]string
}

func NewMemClient() *MemClient {
	return &MemClient{tables: make(map[string]*memTable)}
}

// Seed replaces a table's content wholesale. Test setup only.
func (c *MemClient) Seed(name string, headers []string, rows [][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([][]string, len(rows))
	for i, r := range rows {
		copied[i] = append([]string(nil), r...)
	}
	c.tables[name] = &memTable{headers: append([]string(nil), headers...), rows: copied}
}

// Writes returns how many mutating calls (appends and cell updates) have
// been applied since construction.
func (c *MemClient) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

func (c *MemClient) FetchTable(_ context.Context, name string) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("no such table: %s", name)
	}
	table := &Table{Name: name, Headers: append([]string(nil), t.headers...)}
	for _, r := range t.rows {
		table.Rows = append(table.Rows, append([]string(nil), r...))
	}
	return table, nil
}

func (c *MemClient) BatchFetch(ctx context.Context, names ...string) (map[string]*Table, error) {
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

func (c *MemClient) AppendRows(_ context.Context, name string, rows [][]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tables[name]
	if !ok {
		return fmt.Errorf("no such table: %s", name)
	}
	for _, raw := range rows {
		row := make([]string, len(raw))
		for j, v := range raw {
			row[j] = toString(v)
		}
		t.rows = append(t.rows, row)
	}
	c.writes++
	return nil
}

func (c *MemClient) UpdateCells(_ context.Context, name string, updates []CellUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tables[name]
	if !ok {
		return fmt.Errorf("no such table: %s", name)
	}
	for _, u := range updates {
		sheet, col, row, err := ParseA1(u.Range)
		if err != nil {
			return err
		}
		if sheet != name {
			return fmt.Errorf("range %q targets table %s, not %s", u.Range, sheet, name)
		}
		for dr, values := range u.Values {
			for dc, v := range values {
				t.set(row+dr, col+dc, toString(v))
			}
		}
	}
	c.writes++
	return nil
}

func (c *MemClient) EnsureSheet(_ context.Context, name string, want []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tables[name]
	if !ok {
		t = &memTable{}
		c.tables[name] = t
	}
	have := make(map[string]bool, len(t.headers))
	for _, h := range t.headers {
		have[h] = true
	}
	for _, h := range want {
		if !have[h] {
			t.headers = append(t.headers, h)
		}
	}
	return nil
}

// set writes a cell addressed by 1-based sheet coordinates, growing the
// table as needed. Row 1 is the header row.
func (t *memTable) set(row, col int, value string) {
	if row == 1 {
		for len(t.headers) < col {
			t.headers = append(t.headers, "")
		}
		t.headers[col-1] = value
		return
	}
	i := row - 2
	for len(t.rows) <= i {
		t.rows = append(t.rows, nil)
	}
	for len(t.rows[i]) < col {
		t.rows[i] = append(t.rows[i], "")
	}
	t.rows[i][col-1] = value
}
