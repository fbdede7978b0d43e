package sheets

import (
	"context"
	"errors"
)

// Error taxonomy shared by all store implementations. Absence is a
// distinct signal from a transient backend failure: callers branch on
// ErrWorksheetNotFound and propagate everything else.
var (
	// ErrWorksheetNotFound reports that no worksheet carries the
	// requested title. Not a failure of the store itself.
	ErrWorksheetNotFound = errors.New("worksheet not found")

	// ErrStoreUnavailable reports a transient backend or network
	// failure. Retrying the same call later may succeed.
	ErrStoreUnavailable = errors.New("worksheet store unavailable")

	// ErrWriteRejected reports that the backend refused a mutation:
	// duplicate title, quota exceeded, missing permission.
	ErrWriteRejected = errors.New("worksheet store rejected write")
)

// Worksheet is a point-in-time snapshot of one ledger tab as reported
// by the store. The store owns all worksheet state; snapshots are never
// cached across engine calls.
type Worksheet struct {
	ID    int64
	Title string
	Rows  int
	Cols  int
}

// WorksheetStore is the outbound port to the tabular backend.
// Implementations must honor context cancellation on every call and
// wrap failures with the sentinels above so callers can classify them.
type WorksheetStore interface {
	// FindByTitle returns the worksheet titled title, or an error
	// wrapping ErrWorksheetNotFound when no such tab exists.
	FindByTitle(ctx context.Context, title string) (Worksheet, error)

	// Create adds an empty worksheet with at least the requested
	// row and column capacity.
	Create(ctx context.Context, title string, rows, cols int) (Worksheet, error)

	// Duplicate clones src, structure and content included, under newTitle.
	Duplicate(ctx context.Context, src Worksheet, newTitle string) (Worksheet, error)

	// ResizeRows truncates or pads the worksheet to exactly rows rows.
	// A no-op when the worksheet is already at the target size.
	ResizeRows(ctx context.Context, ws Worksheet, rows int) (Worksheet, error)

	// AppendRow appends one row after the worksheet's last row,
	// growing the row count by one and leaving prior rows unchanged.
	AppendRow(ctx context.Context, ws Worksheet, values []any) (Worksheet, error)
}
