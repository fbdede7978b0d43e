package ledger

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/BistonN/Bills-bot/internal/sheets"
	"github.com/BistonN/Bills-bot/internal/sheets/memory"
)

func header() [][]any {
	return [][]any{
		{"Local", "Valor", "Categoria"},
		{"Total", "=SUM(B4:B)"},
		nil,
	}
}

func TestEnsureReturnsExistingTab(t *testing.T) {
	store := memory.NewStore()
	store.Seed("ago/25", header(), 20)
	p := NewProvisioner(store)

	ws, err := p.Ensure(context.Background(), "ago/25", "ago/25")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if ws.Title != "ago/25" || ws.Rows != 3 {
		t.Fatalf("unexpected worksheet: %+v", ws)
	}
}

func TestEnsureIdempotent(t *testing.T) {
	store := memory.NewStore()
	p := NewProvisioner(store)
	ctx := context.Background()

	first, err := p.Ensure(ctx, "ago/25", "ago/25")
	if err != nil {
		t.Fatalf("first Ensure: %v", err)
	}
	second, err := p.Ensure(ctx, "ago/25", "ago/25")
	if err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if first.Title != second.Title || first.ID != second.ID {
		t.Fatalf("Ensure not idempotent: first=%+v second=%+v", first, second)
	}
}

func TestEnsureCreatesBareTabWithoutRotation(t *testing.T) {
	store := memory.NewStore()
	p := NewProvisioner(store)

	ws, err := p.Ensure(context.Background(), "ago/25", "ago/25")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if ws.Rows != HeaderRows || ws.Cols != DefaultCols {
		t.Fatalf("bare tab dimensions = %dx%d, want %dx%d", ws.Rows, ws.Cols, HeaderRows, DefaultCols)
	}
}

func TestEnsureClonesTemplateOnRotation(t *testing.T) {
	store := memory.NewStore()
	cells := header()
	cells = append(cells, []any{"Padaria", 15.5, "COMIDA"}, []any{"Uber", 22.0, "TRANSPORTE"})
	store.Seed("ago/25", cells, 20)
	p := NewProvisioner(store)

	ws, err := p.Ensure(context.Background(), "set/25", "ago/25")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if ws.Title != "set/25" {
		t.Fatalf("unexpected title %q", ws.Title)
	}
	if ws.Rows != HeaderRows {
		t.Fatalf("cloned tab has %d rows, want %d", ws.Rows, HeaderRows)
	}

	got, ok := store.Rows("set/25")
	if !ok {
		t.Fatal("cloned tab missing from store")
	}
	if !reflect.DeepEqual(got, header()) {
		t.Fatalf("cloned header = %v, want %v", got, header())
	}

	// Source tab keeps its data rows.
	src, _ := store.Rows("ago/25")
	if len(src) != 5 {
		t.Fatalf("source tab mutated: %d rows, want 5", len(src))
	}
}

func TestEnsureFallsBackToBareTabWithoutTemplate(t *testing.T) {
	store := memory.NewStore()
	p := NewProvisioner(store)

	ws, err := p.Ensure(context.Background(), "set/25", "ago/25")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if ws.Title != "set/25" || ws.Rows != HeaderRows {
		t.Fatalf("unexpected fallback worksheet: %+v", ws)
	}
}

type failingStore struct {
	sheets.WorksheetStore
	findErr error
}

func (f *failingStore) FindByTitle(ctx context.Context, title string) (sheets.Worksheet, error) {
	if f.findErr != nil {
		return sheets.Worksheet{}, f.findErr
	}
	return f.WorksheetStore.FindByTitle(ctx, title)
}

func TestEnsurePropagatesStoreFailure(t *testing.T) {
	store := &failingStore{
		WorksheetStore: memory.NewStore(),
		findErr:        sheets.ErrStoreUnavailable,
	}
	p := NewProvisioner(store)

	_, err := p.Ensure(context.Background(), "set/25", "ago/25")
	if !errors.Is(err, sheets.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
