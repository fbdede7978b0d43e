// Package memory provides an in-memory WorksheetStore used by the
// memory backend and as the test double for the ledger engine.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/BistonN/Bills-bot/internal/sheets"
)

type worksheet struct {
	id    int64
	cells [][]any
	cols  int
}

// Store keeps every worksheet in memory. Titles are unique, matching
// the backend constraint the provisioner relies on for its race guard.
type Store struct {
	mu     sync.Mutex
	tabs   map[string]*worksheet
	nextID int64
}

var _ sheets.WorksheetStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{tabs: make(map[string]*worksheet), nextID: 1}
}

// Seed installs a worksheet with the given cell content, replacing any
// existing tab of the same title. Intended for tests and dev seeding.
func (s *Store) Seed(title string, cells [][]any, cols int) sheets.Worksheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws := &worksheet{id: s.nextID, cells: copyCells(cells), cols: cols}
	s.nextID++
	s.tabs[title] = ws
	return snapshot(title, ws)
}

// Rows returns a copy of the worksheet's cell content, or false when
// the title does not exist.
func (s *Store) Rows(title string) ([][]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.tabs[title]
	if !ok {
		return nil, false
	}
	return copyCells(ws.cells), true
}

func (s *Store) FindByTitle(_ context.Context, title string) (sheets.Worksheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.tabs[title]
	if !ok {
		return sheets.Worksheet{}, fmt.Errorf("worksheet %q: %w", title, sheets.ErrWorksheetNotFound)
	}
	return snapshot(title, ws), nil
}

func (s *Store) Create(_ context.Context, title string, rows, cols int) (sheets.Worksheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tabs[title]; ok {
		return sheets.Worksheet{}, fmt.Errorf("create %q: title exists: %w", title, sheets.ErrWriteRejected)
	}
	ws := &worksheet{id: s.nextID, cells: make([][]any, rows), cols: cols}
	s.nextID++
	s.tabs[title] = ws
	return snapshot(title, ws), nil
}

func (s *Store) Duplicate(_ context.Context, src sheets.Worksheet, newTitle string) (sheets.Worksheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	source, ok := s.tabs[src.Title]
	if !ok {
		return sheets.Worksheet{}, fmt.Errorf("duplicate %q: source gone: %w", src.Title, sheets.ErrWriteRejected)
	}
	if _, ok := s.tabs[newTitle]; ok {
		return sheets.Worksheet{}, fmt.Errorf("duplicate into %q: title exists: %w", newTitle, sheets.ErrWriteRejected)
	}
	ws := &worksheet{id: s.nextID, cells: copyCells(source.cells), cols: source.cols}
	s.nextID++
	s.tabs[newTitle] = ws
	return snapshot(newTitle, ws), nil
}

func (s *Store) ResizeRows(_ context.Context, target sheets.Worksheet, rows int) (sheets.Worksheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.tabs[target.Title]
	if !ok {
		return sheets.Worksheet{}, fmt.Errorf("resize %q: %w", target.Title, sheets.ErrWriteRejected)
	}
	switch {
	case rows < len(ws.cells):
		ws.cells = ws.cells[:rows]
	case rows > len(ws.cells):
		grown := make([][]any, rows)
		copy(grown, ws.cells)
		ws.cells = grown
	}
	return snapshot(target.Title, ws), nil
}

func (s *Store) AppendRow(_ context.Context, target sheets.Worksheet, values []any) (sheets.Worksheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.tabs[target.Title]
	if !ok {
		return sheets.Worksheet{}, fmt.Errorf("append to %q: %w", target.Title, sheets.ErrWriteRejected)
	}
	row := make([]any, len(values))
	copy(row, values)
	ws.cells = append(ws.cells, row)
	return snapshot(target.Title, ws), nil
}

func snapshot(title string, ws *worksheet) sheets.Worksheet {
	return sheets.Worksheet{ID: ws.id, Title: title, Rows: len(ws.cells), Cols: ws.cols}
}

func copyCells(cells [][]any) [][]any {
	out := make([][]any, len(cells))
	for i, row := range cells {
		if row == nil {
			continue
		}
		out[i] = append([]any(nil), row...)
	}
	return out
}
