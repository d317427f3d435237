package ui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javipelopi/gridcast/pkg/model"
)

type stubSearcher struct {
	calls   atomic.Int32
	queries []string
	results []model.SearchResult
	err     error
}

func (s *stubSearcher) Search(_ context.Context, query string) ([]model.SearchResult, error) {
	s.calls.Add(1)
	s.queries = append(s.queries, query)
	return s.results, s.err
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestSearch(s Searcher) SearchModel {
	m := NewSearchModel(s, DefaultTheme(nil))
	m.Focus()
	return m
}

func TestSearchDebounceLastWriteWins(t *testing.T) {
	stub := &stubSearcher{results: []model.SearchResult{{ProgramID: "p1", Title: "Drama"}}}
	m := newTestSearch(stub)

	m.HandleInput(runeKey('d'))
	firstSeq := m.seq
	m.HandleInput(runeKey('r'))

	// The first timer elapsed after a newer keystroke: stale, no query.
	if cmd := m.HandleDebounce(SearchDebounceMsg{Seq: firstSeq, Query: "d"}); cmd != nil {
		t.Fatalf("stale debounce should not submit a query")
	}
	if got := stub.calls.Load(); got != 0 {
		t.Fatalf("searcher called %d times for stale debounce", got)
	}

	// The newest timer submits exactly one query.
	cmd := m.HandleDebounce(SearchDebounceMsg{Seq: m.seq, Query: "dr"})
	if cmd == nil {
		t.Fatalf("newest debounce should submit a query")
	}
	msg, ok := cmd().(SearchResultsMsg)
	if !ok {
		t.Fatalf("expected SearchResultsMsg, got %T", msg)
	}
	if got := stub.calls.Load(); got != 1 {
		t.Fatalf("searcher called %d times, want 1", got)
	}
	if stub.queries[0] != "dr" {
		t.Fatalf("submitted query %q, want %q", stub.queries[0], "dr")
	}
}

func TestSearchStaleResultsDropped(t *testing.T) {
	m := newTestSearch(&stubSearcher{})
	m.HandleInput(runeKey('a'))

	m.HandleResults(SearchResultsMsg{
		Seq:     m.seq - 1,
		Results: []model.SearchResult{{ProgramID: "old"}},
	})
	if m.open || len(m.results) != 0 {
		t.Fatalf("stale results should be dropped")
	}

	m.HandleResults(SearchResultsMsg{
		Seq:     m.seq,
		Results: []model.SearchResult{{ProgramID: "new"}},
	})
	if !m.open || len(m.results) != 1 || m.results[0].ProgramID != "new" {
		t.Fatalf("current results should commit, got open=%v results=%v", m.open, m.results)
	}
}

func TestSearchSelectCentersWindow(t *testing.T) {
	m := newTestSearch(&stubSearcher{})
	start := time.Date(2026, 1, 22, 20, 0, 0, 0, time.UTC)
	m.results = []model.SearchResult{{
		ProgramID: "p9",
		ChannelID: "c3",
		Title:     "Evening News",
		Start:     start,
	}}
	m.open = true
	m.cursor = 0

	sel, ok := m.Select()
	if !ok {
		t.Fatalf("Select() failed with an open dropdown")
	}
	wantStart := time.Date(2026, 1, 22, 18, 30, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 1, 22, 21, 30, 0, 0, time.UTC)
	if !sel.Window.Start.Equal(wantStart) || !sel.Window.End.Equal(wantEnd) {
		t.Fatalf("window = [%v, %v), want [%v, %v)", sel.Window.Start, sel.Window.End, wantStart, wantEnd)
	}
	if sel.ChannelID != "c3" || sel.ProgramID != "p9" {
		t.Fatalf("selection identity = %s/%s", sel.ChannelID, sel.ProgramID)
	}

	// Select clears the controller.
	if m.open || m.Query() != "" || len(m.results) != 0 {
		t.Fatalf("controller state should be cleared after Select")
	}
}

func TestSearchClearInvalidatesInFlight(t *testing.T) {
	m := newTestSearch(&stubSearcher{})
	m.HandleInput(runeKey('x'))
	inFlight := m.seq

	m.Clear()

	m.HandleResults(SearchResultsMsg{
		Seq:     inFlight,
		Results: []model.SearchResult{{ProgramID: "late"}},
	})
	if m.open || len(m.results) != 0 {
		t.Fatalf("results from before Clear should be dropped")
	}
}

func TestSearchEmptyQueryClosesDropdown(t *testing.T) {
	m := newTestSearch(&stubSearcher{})
	m.HandleInput(runeKey('a'))
	m.HandleResults(SearchResultsMsg{Seq: m.seq, Results: []model.SearchResult{{ProgramID: "p"}}})
	if !m.open {
		t.Fatalf("dropdown should open on results")
	}

	m.HandleInput(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.open {
		t.Fatalf("dropdown should close when the query empties")
	}
}

func TestSearchErrorShownNotFatal(t *testing.T) {
	stub := &stubSearcher{err: errors.New("backend down")}
	m := newTestSearch(stub)
	m.HandleInput(runeKey('a'))

	cmd := m.HandleDebounce(SearchDebounceMsg{Seq: m.seq, Query: "a"})
	msg := cmd().(SearchResultsMsg)
	m.HandleResults(msg)

	if m.err == nil {
		t.Fatalf("search error should be surfaced")
	}
	if !m.open {
		t.Fatalf("dropdown should stay open to show the error")
	}
	if got := m.ViewDropdown(60); !strings.Contains(got, "backend down") {
		t.Fatalf("dropdown should render the error, got %q", got)
	}

	m.Clear()
	if m.open || m.err != nil {
		t.Fatalf("clearing should dismiss the error state")
	}
}
