// Package sheets is the spreadsheet access layer. The Google Sheet is the
// system of record; everything above this package talks to it through the
// Client interface so the domain logic can run against an in-memory fake.
package sheets

import "context"

// CellUpdate is one A1-addressed write, e.g. {"Quests!B3", [["Approved"]]}.
type CellUpdate struct {
	Range  string
	Values [][]interface{}
}

// Client is the backing-store contract. Implementations make no atomicity
// promise across the updates of a single UpdateCells call; a partial
// failure is surfaced verbatim and never rolled back.
type Client interface {
	// FetchTable returns a table as headers plus data rows (sheet row 1 is
	// the header row, data starts at sheet row 2).
	FetchTable(ctx context.Context, name string) (*Table, error)

	// BatchFetch fetches several tables, one request per table, in
	// parallel. The result map is keyed by table name.
	BatchFetch(ctx context.Context, names ...string) (map[string]*Table, error)

	// AppendRows appends raw rows after the last data row of the table.
	AppendRows(ctx context.Context, name string, rows [][]interface{}) error

	// UpdateCells applies the given cell writes as a single logical
	// operation.
	UpdateCells(ctx context.Context, name string, updates []CellUpdate) error

	// EnsureSheet creates the tab when absent and appends any headers from
	// want that are missing from the live header row. Existing headers are
	// never reordered or removed, so header positions stay stable for
	// formulas living in the sheet. Idempotent.
	EnsureSheet(ctx context.Context, name string, want []string) error
}
