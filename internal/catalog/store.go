package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aisumo/internal/rowmap"
	"aisumo/pkg/domain"
)

// Store is the process-wide authority for catalog state. It starts from the
// built-in defaults, replaces each collection wholesale when a fetch returns
// rows for its table and writes every mutation through to the backend.
//
// No lock is held across backend calls, so concurrent mutations race and the
// last FetchAll to finish wins.
type Store struct {
	backend domain.TableStore
	logger  *zap.Logger
	metrics MetricsRecorder
	nowFn   func() time.Time

	mu       sync.RWMutex
	data     Data
	loading  bool
	inflight int
	seeded   bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides time.Now, used for icon keys and fetch timing.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// New returns a store holding the default catalog. Nothing is read from the
// backend until FetchAll.
func New(backend domain.TableStore, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  zap.NewNop(),
		metrics: noopMetrics{},
		nowFn:   time.Now,
		data:    Defaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the table store the catalog writes through to.
func (s *Store) Backend() domain.TableStore { return s.backend }

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Data: s.data.Clone(), IsLoading: s.loading, IsSeeded: s.seeded}
}

// IsLoading reports whether a FetchAll is in progress.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsSeeded reports whether the last FetchAll saw any tool or category row.
func (s *Store) IsSeeded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seeded
}

// TableResult is the outcome of one table read within FetchAll.
type TableResult struct {
	Table string
	Rows  int
	Err   error
}

// Replaced reports whether the table's collection was swapped in.
func (r TableResult) Replaced() bool { return r.Err == nil && r.Rows > 0 }

// FetchReport lists one TableResult per table in domain.Tables order.
type FetchReport struct {
	Tables []TableResult
}

// Failed returns the tables whose read or decode failed.
func (r FetchReport) Failed() []string {
	var out []string
	for _, t := range r.Tables {
		if t.Err != nil {
			out = append(out, t.Table)
		}
	}
	return out
}

// tableFetch reads one table and turns its rows into a setter applied under
// the store lock.
type tableFetch struct {
	table  string
	query  domain.Query
	decode func(rows []domain.Row) (func(*Data), error)
}

func setter[T any](decode func([]domain.Row) (T, error), set func(*Data, T)) func([]domain.Row) (func(*Data), error) {
	return func(rows []domain.Row) (func(*Data), error) {
		v, err := decode(rows)
		if err != nil {
			return nil, err
		}
		return func(d *Data) { set(d, v) }, nil
	}
}

var fetchPlan = []tableFetch{
	{domain.TableTools, domain.Query{OrderBy: "created_at"}, setter(rowmap.DecodeTools, func(d *Data, v []domain.Tool) { d.Tools = v })},
	{domain.TableCategories, domain.Query{OrderBy: "sort_order"}, setter(rowmap.DecodeCategories, func(d *Data, v []domain.Category) { d.Categories = v })},
	{domain.TableRankings, domain.Query{}, setter(rowmap.DecodeRankings, func(d *Data, v []domain.RankingList) { d.Rankings = v })},
	{domain.TableContentItems, domain.Query{OrderBy: "sort_order"}, setter(rowmap.DecodeContentItems, func(d *Data, v []domain.ContentItem) { d.ContentItems = v })},
	{domain.TableFilterTabs, domain.Query{OrderBy: "sort_order"}, setter(rowmap.DecodeFilterTabs, func(d *Data, v []domain.FilterTab) { d.FilterTabs = v })},
	{domain.TableIssueOptions, domain.Query{}, setter(rowmap.DecodeIssueOptions, func(d *Data, v []domain.IssueOption) { d.IssueOptions = v })},
	{domain.TableSiteConfig, domain.Query{Limit: 1}, setter(decodeFirstSiteConfig, func(d *Data, v domain.SiteConfig) { d.SiteConfig = v })},
	{domain.TableSectionConfigs, domain.Query{}, setter(rowmap.DecodeSectionConfigs, func(d *Data, v domain.SectionConfigs) { d.SectionConfigs = v })},
}

func decodeFirstSiteConfig(rows []domain.Row) (domain.SiteConfig, error) {
	return rowmap.DecodeSiteConfig(rows[0])
}

// FetchAll reads every table concurrently. A table whose read returns rows
// replaces its collection; an empty or failed read keeps the previous value.
// Failures are logged and reported, never returned.
func (s *Store) FetchAll(ctx context.Context) FetchReport {
	s.mu.Lock()
	s.inflight++
	s.loading = true
	s.mu.Unlock()

	results := make([]TableResult, len(fetchPlan))
	setters := make([]func(*Data), len(fetchPlan))
	var g errgroup.Group
	for i, f := range fetchPlan {
		g.Go(func() error {
			results[i], setters[i] = s.fetchTable(ctx, f)
			return nil
		})
	}
	_ = g.Wait()

	seeded := false
	for _, r := range results {
		if (r.Table == domain.TableTools || r.Table == domain.TableCategories) && r.Replaced() {
			seeded = true
		}
	}

	s.mu.Lock()
	for _, set := range setters {
		if set != nil {
			set(&s.data)
		}
	}
	s.seeded = seeded
	s.inflight--
	s.loading = s.inflight > 0
	s.mu.Unlock()
	return FetchReport{Tables: results}
}

func (s *Store) fetchTable(ctx context.Context, f tableFetch) (TableResult, func(*Data)) {
	start := s.nowFn()
	res := TableResult{Table: f.table}
	rows, err := s.backend.Select(ctx, f.table, f.query)
	elapsed := s.nowFn().Sub(start)
	if err != nil {
		res.Err = err
		s.logger.Warn("catalog fetch failed", zap.String("table", f.table), zap.Error(err))
		s.metrics.ObserveFetch(f.table, OutcomeError, elapsed)
		return res, nil
	}
	res.Rows = len(rows)
	if len(rows) == 0 {
		s.metrics.ObserveFetch(f.table, OutcomeEmpty, elapsed)
		return res, nil
	}
	set, err := f.decode(rows)
	if err != nil {
		res.Err = err
		s.logger.Warn("catalog rows rejected", zap.String("table", f.table), zap.Int("rows", len(rows)), zap.Error(err))
		s.metrics.ObserveFetch(f.table, OutcomeError, elapsed)
		return res, nil
	}
	s.metrics.ObserveFetch(f.table, OutcomeRows, elapsed)
	return res, set
}

// Poll runs FetchAll every interval until ctx is done. The public site uses it
// to pick up writes committed through the admin store.
func (s *Store) Poll(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.FetchAll(ctx)
		}
	}
}

// ResetToDefaults replaces every collection with the built-in catalog
// without touching the backend.
func (s *Store) ResetToDefaults() {
	d := Defaults()
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
}

// Local-only setters. They replace a collection in memory and are not
// written through.

// SetTools replaces the in-memory tools.
func (s *Store) SetTools(v []domain.Tool) {
	s.update(func(d *Data) { d.Tools = Data{Tools: v}.Clone().Tools })
}

// SetCategories replaces the in-memory categories.
func (s *Store) SetCategories(v []domain.Category) {
	s.update(func(d *Data) { d.Categories = Data{Categories: v}.Clone().Categories })
}

// SetRankings replaces the in-memory rankings.
func (s *Store) SetRankings(v []domain.RankingList) {
	s.update(func(d *Data) { d.Rankings = Data{Rankings: v}.Clone().Rankings })
}

// SetContentItems replaces the in-memory content items.
func (s *Store) SetContentItems(v []domain.ContentItem) {
	s.update(func(d *Data) { d.ContentItems = Data{ContentItems: v}.Clone().ContentItems })
}

// SetFilterTabs replaces the in-memory filter tabs.
func (s *Store) SetFilterTabs(v []domain.FilterTab) {
	s.update(func(d *Data) { d.FilterTabs = Data{FilterTabs: v}.Clone().FilterTabs })
}

// SetIssueOptions replaces the in-memory issue options.
func (s *Store) SetIssueOptions(v []domain.IssueOption) {
	s.update(func(d *Data) { d.IssueOptions = Data{IssueOptions: v}.Clone().IssueOptions })
}

// SetSiteConfig replaces the in-memory site config.
func (s *Store) SetSiteConfig(v domain.SiteConfig) {
	s.update(func(d *Data) { d.SiteConfig = cloneSiteConfig(v) })
}

// SetSectionConfigs replaces the in-memory section configs.
func (s *Store) SetSectionConfigs(v domain.SectionConfigs) {
	s.update(func(d *Data) { d.SectionConfigs = Data{SectionConfigs: v}.Clone().SectionConfigs })
}

func (s *Store) update(fn func(*Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// read runs fn against the live state under the read lock. fn must not
// retain or mutate what it sees.
func (s *Store) read(fn func(*Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}
