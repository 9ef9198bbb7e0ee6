package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/sovereignhud/sovereign-hud/sovereign/logger"
)

// GoogleClient talks to one spreadsheet through the Sheets v4 API using a
// service account. No retries: a transient API failure surfaces to the
// caller as a hard failure.
type GoogleClient struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

func NewGoogleClient(ctx context.Context, spreadsheetID, credentialsFile string) (*GoogleClient, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (c *GoogleClient) FetchTable(ctx context.Context, name string) (*Table, error) {
	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, name).Context(ctx).Do()
	logger.LogSheetOp("fetch", name, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch table %s: %w", name, err)
	}

	table := &Table{Name: name}
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, v := range raw {
			row[j] = toString(v)
		}
		if i == 0 {
			table.Headers = row
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func (c *GoogleClient) BatchFetch(ctx context.Context, names ...string) (map[string]*Table, error) {
	var mu sync.Mutex
	result := make(map[string]*Table, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		g.Go(func() error {
			table, err := c.FetchTable(ctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			result[name] = table
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *GoogleClient) AppendRows(ctx context.Context, name string, rows [][]interface{}) error {
	start := time.Now()
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, name, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	logger.LogSheetOp("append", name, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to append %d row(s) to %s: %w", len(rows), name, err)
	}
	return nil
}

func (c *GoogleClient) UpdateCells(ctx context.Context, name string, updates []CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	data := make([]*sheetsapi.ValueRange, len(updates))
	for i, u := range updates {
		data[i] = &sheetsapi.ValueRange{Range: u.Range, Values: u.Values}
	}
	start := time.Now()
	_, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}).Context(ctx).Do()
	logger.LogSheetOp("update", name, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to update %d cell(s) in %s: %w", len(updates), name, err)
	}
	return nil
}

func (c *GoogleClient) EnsureSheet(ctx context.Context, name string, want []string) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	exists := false
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			exists = true
			break
		}
	}

	if !exists {
		_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
			Requests: []*sheetsapi.Request{{
				AddSheet: &sheetsapi.AddSheetRequest{
					Properties: &sheetsapi.SheetProperties{Title: name},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		slog.Info("Created missing sheet",
			slog.String("type", "sheet"),
			slog.String("table", name))
	}

	header, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, name+"!1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header row of %s: %w", name, err)
	}

	var live []string
	if len(header.Values) > 0 {
		for _, v := range header.Values[0] {
			live = append(live, toString(v))
		}
	}

	missing := missingHeaders(live, want)
	if len(missing) == 0 {
		return nil
	}

	row := make([]interface{}, 0, len(live)+len(missing))
	for _, h := range live {
		row = append(row, h)
	}
	for _, h := range missing {
		row = append(row, h)
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, name+"!A1", &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to extend header row of %s: %w", name, err)
	}

	slog.Info("Appended missing headers",
		slog.String("type", "sheet"),
		slog.String("table", name),
		slog.Any("headers", missing))
	return nil
}

func missingHeaders(live, want []string) []string {
	have := make(map[string]bool, len(live))
	for _, h := range live {
		have[h] = true
	}
	var missing []string
	for _, h := range want {
		if !have[h] {
			missing = append(missing, h)
		}
	}
	return missing
}
