// Package google implements the WorksheetStore against the Google
// Sheets v4 API using service account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	ports "github.com/BistonN/Bills-bot/internal/sheets"
)

// Config carries everything the client needs at construction. No
// environment variables are read here; the caller resolves them.
type Config struct {
	SpreadsheetID string

	// One of the two credential sources must be set.
	ServiceAccountJSON string
	ServiceAccountFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ ports.WorksheetStore = (*Client)(nil)

// NewClient builds a Sheets-backed worksheet store. The returned
// client is safe for use by a single logical writer per ledger.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	credentials, err := resolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

func resolveCredentials(cfg Config) ([]byte, error) {
	if json := strings.TrimSpace(cfg.ServiceAccountJSON); json != "" {
		return []byte(json), nil
	}
	if file := strings.TrimSpace(cfg.ServiceAccountFile); file != "" {
		credentials, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return credentials, nil
	}
	return nil, errors.New("missing service account credentials")
}

func (c *Client) FindByTitle(ctx context.Context, title string) (ports.Worksheet, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return ports.Worksheet{}, readError("get spreadsheet", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return worksheetFromProps(sh.Properties), nil
		}
	}
	return ports.Worksheet{}, fmt.Errorf("worksheet %q: %w", title, ports.ErrWorksheetNotFound)
}

func (c *Client) Create(ctx context.Context, title string, rows, cols int) (ports.Worksheet, error) {
	resp, err := c.batchUpdate(ctx, &gsheet.Request{
		AddSheet: &gsheet.AddSheetRequest{
			Properties: &gsheet.SheetProperties{
				Title: title,
				GridProperties: &gsheet.GridProperties{
					RowCount:    int64(rows),
					ColumnCount: int64(cols),
				},
			},
		},
	})
	if err != nil {
		return ports.Worksheet{}, writeError(fmt.Sprintf("add sheet %q", title), err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return ports.Worksheet{}, fmt.Errorf("add sheet %q: empty reply: %w", title, ports.ErrStoreUnavailable)
	}
	return worksheetFromProps(resp.Replies[0].AddSheet.Properties), nil
}

func (c *Client) Duplicate(ctx context.Context, src ports.Worksheet, newTitle string) (ports.Worksheet, error) {
	resp, err := c.batchUpdate(ctx, &gsheet.Request{
		DuplicateSheet: &gsheet.DuplicateSheetRequest{
			SourceSheetId: src.ID,
			NewSheetName:  newTitle,
		},
	})
	if err != nil {
		return ports.Worksheet{}, writeError(fmt.Sprintf("duplicate sheet %q", src.Title), err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].DuplicateSheet == nil || resp.Replies[0].DuplicateSheet.Properties == nil {
		return ports.Worksheet{}, fmt.Errorf("duplicate sheet %q: empty reply: %w", src.Title, ports.ErrStoreUnavailable)
	}
	return worksheetFromProps(resp.Replies[0].DuplicateSheet.Properties), nil
}

func (c *Client) ResizeRows(ctx context.Context, ws ports.Worksheet, rows int) (ports.Worksheet, error) {
	if ws.Rows == rows {
		return ws, nil
	}
	_, err := c.batchUpdate(ctx, &gsheet.Request{
		UpdateSheetProperties: &gsheet.UpdateSheetPropertiesRequest{
			Properties: &gsheet.SheetProperties{
				SheetId: ws.ID,
				GridProperties: &gsheet.GridProperties{
					RowCount:    int64(rows),
					ColumnCount: int64(ws.Cols),
				},
			},
			Fields: "gridProperties.rowCount",
		},
	})
	if err != nil {
		return ports.Worksheet{}, writeError(fmt.Sprintf("resize sheet %q", ws.Title), err)
	}
	ws.Rows = rows
	return ws, nil
}

func (c *Client) AppendRow(ctx context.Context, ws ports.Worksheet, values []any) (ports.Worksheet, error) {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = cellValue(v)
	}
	rng := fmt.Sprintf("'%s'!A1", ws.Title)
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng,
		&gsheet.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return ports.Worksheet{}, writeError(fmt.Sprintf("append to %q", ws.Title), err)
	}
	ws.Rows++
	return ws, nil
}

func (c *Client) batchUpdate(ctx context.Context, reqs ...*gsheet.Request) (*gsheet.BatchUpdateSpreadsheetResponse, error) {
	return c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID,
		&gsheet.BatchUpdateSpreadsheetRequest{Requests: reqs}).
		Context(ctx).Do()
}

func worksheetFromProps(p *gsheet.SheetProperties) ports.Worksheet {
	ws := ports.Worksheet{ID: p.SheetId, Title: p.Title}
	if p.GridProperties != nil {
		ws.Rows = int(p.GridProperties.RowCount)
		ws.Cols = int(p.GridProperties.ColumnCount)
	}
	return ws
}

// cellValue maps domain values onto what the Sheets API serializes as
// a plain cell value. Decimals become numbers, not quoted strings.
func cellValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return v
}

// readError classifies a lookup failure. Lookups never reject; any
// failure other than cancellation is a transient store problem.
func readError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ports.ErrStoreUnavailable, err)
}

// writeError classifies a mutation failure: client-side rejections map
// to ErrWriteRejected, rate limits and server errors to
// ErrStoreUnavailable, cancellation passes through.
func writeError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != http.StatusTooManyRequests {
			return fmt.Errorf("%s: %w: %w", op, ports.ErrWriteRejected, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, ports.ErrStoreUnavailable, err)
}
