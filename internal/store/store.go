// Package store implements the dashboard's content state machine: one
// explicit phase per (tab, time frame) selection instead of loose cells for
// loading, error and lists that can drift apart.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/trendlens/trendlens/internal/types"
)

// Tab is one dashboard tab.
type Tab string

const (
	TabPapers   Tab = "papers"
	TabModels   Tab = "models"
	TabDatasets Tab = "datasets"
	TabSpaces   Tab = "spaces"
)

// Valid reports whether t names a known tab.
func (t Tab) Valid() bool {
	switch t {
	case TabPapers, TabModels, TabDatasets, TabSpaces:
		return true
	}
	return false
}

// Phase is the lifecycle phase of the content region.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseErrored Phase = "errored"
)

// Fetcher abstracts the aggregation endpoints the store pulls from.
type Fetcher interface {
	Models(ctx context.Context, limit int) ([]types.ModelRecord, error)
	Datasets(ctx context.Context, limit int) ([]types.DatasetRecord, error)
	Spaces(ctx context.Context, limit int) ([]types.SpaceRecord, error)
	Papers(ctx context.Context, tf types.TimeFrame) ([]types.PaperRecord, error)
}

// Notifier surfaces transient user-facing messages when a fetch fails.
type Notifier interface {
	Error(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

// Error implements Notifier.
func (f NotifierFunc) Error(msg string) { f(msg) }

// Prefs persists the last-selected time range across sessions.
type Prefs interface {
	TimeFrame() (types.TimeFrame, bool)
	SetTimeFrame(types.TimeFrame) error
}

// Snapshot is an immutable view of the store for renderers.
type Snapshot struct {
	Tab       Tab
	TimeFrame types.TimeFrame
	Phase     Phase
	Err       string
	Title     string

	Papers   []types.PaperRecord
	Models   []types.ModelRecord
	Datasets []types.DatasetRecord
	Spaces   []types.SpaceRecord
}

// ActiveCount returns the number of items on the active tab.
func (s Snapshot) ActiveCount() int {
	switch s.Tab {
	case TabModels:
		return len(s.Models)
	case TabDatasets:
		return len(s.Datasets)
	case TabSpaces:
		return len(s.Spaces)
	default:
		return len(s.Papers)
	}
}

// selection keys the request sequence counters.
type selection struct {
	tab Tab
	tf  types.TimeFrame
}

// payload carries one settled fetch result.
type payload struct {
	papers   []types.PaperRecord
	models   []types.ModelRecord
	datasets []types.DatasetRecord
	spaces   []types.SpaceRecord
}

// Store coordinates tab/time-range selection and refetching. Every request
// is tagged with a per-selection sequence number; completions that are no
// longer the latest issued for their selection are discarded, so rapid tab
// switching cannot let a superseded response overwrite newer state.
type Store struct {
	fetcher  Fetcher
	prefs    Prefs
	notifier Notifier
	limit    int

	mu        sync.Mutex
	tab       Tab
	timeFrame types.TimeFrame
	phase     Phase
	lastErr   string
	title     string

	papers   []types.PaperRecord
	models   []types.ModelRecord
	datasets []types.DatasetRecord
	spaces   []types.SpaceRecord

	seq map[selection]uint64

	wg sync.WaitGroup
}

// New creates a store on the papers tab, restoring the persisted time range
// if one exists.
func New(fetcher Fetcher, prefs Prefs, notifier Notifier) *Store {
	tf := types.TimeFrameToday
	if v, ok := prefs.TimeFrame(); ok && v.Valid() {
		tf = v
	}

	return &Store{
		fetcher:   fetcher,
		prefs:     prefs,
		notifier:  notifier,
		limit:     10,
		tab:       TabPapers,
		timeFrame: tf,
		phase:     PhaseIdle,
		seq:       make(map[selection]uint64),
	}
}

// Activate performs the initial load of the current selection.
func (s *Store) Activate(ctx context.Context) {
	s.refetch(ctx)
}

// SelectTab switches the active tab and refetches it. Tab switches always
// refetch; previously fetched lists stay in memory but are never trusted as
// fresh.
func (s *Store) SelectTab(ctx context.Context, tab Tab) {
	if !tab.Valid() {
		return
	}

	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()

	s.refetch(ctx)
}

// SetTimeFrame changes the ranking window, persists it and refetches the
// active tab.
func (s *Store) SetTimeFrame(ctx context.Context, tf types.TimeFrame) {
	if !tf.Valid() {
		return
	}

	s.mu.Lock()
	s.timeFrame = tf
	s.mu.Unlock()

	if err := s.prefs.SetTimeFrame(tf); err != nil {
		// Persistence is best effort; the in-memory selection already moved.
		s.notifier.Error("failed to save time range preference")
	}

	s.refetch(ctx)
}

// Retry re-issues the request for the current selection.
func (s *Store) Retry(ctx context.Context) {
	s.refetch(ctx)
}

// Snapshot returns the current view of the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Tab:       s.tab,
		TimeFrame: s.timeFrame,
		Phase:     s.phase,
		Err:       s.lastErr,
		Title:     s.title,
		Papers:    s.papers,
		Models:    s.models,
		Datasets:  s.datasets,
		Spaces:    s.spaces,
	}
}

// Wait blocks until all outstanding fetches have settled.
func (s *Store) Wait() {
	s.wg.Wait()
}

// refetch enters loading and issues exactly one request for the current
// selection, tagged with the next sequence number for that selection.
func (s *Store) refetch(ctx context.Context) {
	s.mu.Lock()
	sel := selection{tab: s.tab, tf: s.timeFrame}
	s.seq[sel]++
	seq := s.seq[sel]
	s.phase = PhaseLoading
	s.lastErr = ""
	limit := s.limit
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result, err := s.fetch(ctx, sel, limit)
		s.complete(sel, seq, result, err)
	}()
}

// fetch pulls the list for one selection from the matching endpoint.
func (s *Store) fetch(ctx context.Context, sel selection, limit int) (payload, error) {
	var result payload
	var err error

	switch sel.tab {
	case TabModels:
		result.models, err = s.fetcher.Models(ctx, limit)
	case TabDatasets:
		result.datasets, err = s.fetcher.Datasets(ctx, limit)
	case TabSpaces:
		result.spaces, err = s.fetcher.Spaces(ctx, limit)
	default:
		result.papers, err = s.fetcher.Papers(ctx, sel.tf)
	}

	return result, err
}

// complete settles one fetch. Stale completions (a newer request was issued
// for the same selection) are discarded entirely; settles for a selection
// that is no longer active update only that tab's retained list.
func (s *Store) complete(sel selection, seq uint64, result payload, err error) {
	var notifyMsg string

	s.mu.Lock()
	if s.seq[sel] != seq {
		s.mu.Unlock()
		return
	}

	current := sel.tab == s.tab && sel.tf == s.timeFrame

	if err == nil {
		switch sel.tab {
		case TabModels:
			s.models = result.models
		case TabDatasets:
			s.datasets = result.datasets
		case TabSpaces:
			s.spaces = result.spaces
		default:
			s.papers = result.papers
		}

		if current {
			s.phase = PhaseLoaded
			s.lastErr = ""
			s.title = documentTitle(sel.tab, sel.tf)
		}
	} else if current {
		s.phase = PhaseErrored
		s.lastErr = err.Error()

		notifyMsg = err.Error()
		if notifyMsg == "" {
			notifyMsg = "Failed to fetch data"
		}
	}
	s.mu.Unlock()

	if notifyMsg != "" {
		s.notifier.Error(notifyMsg)
	}
}

// documentTitle renders the descriptive label for a settled selection.
func documentTitle(tab Tab, tf types.TimeFrame) string {
	name := string(tab)
	name = strings.ToUpper(name[:1]) + name[1:]

	return fmt.Sprintf("HuggingFace %s - Top %s", name, types.TimeFrameTitles[tf])
}
