package catalog

import (
	"context"
	"errors"
	"sync"

	"aisumo/internal/infra/persistence/memory"
	"aisumo/internal/rowmap"
	"aisumo/pkg/domain"
)

var errInjected = errors.New("injected failure")

// faultStore wraps the memory backend, counts calls and fails the
// operations named in failOps ("select:tools", "insert:tools", ...).
type faultStore struct {
	*memory.Store

	mu      sync.Mutex
	calls   []string
	failOps map[string]bool
}

func newFaultStore() *faultStore {
	return &faultStore{Store: memory.NewStore(), failOps: map[string]bool{}}
}

func (f *faultStore) fail(op string) { f.mu.Lock(); f.failOps[op] = true; f.mu.Unlock() }

func (f *faultStore) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if f.failOps[op] {
		return errInjected
	}
	return nil
}

func (f *faultStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *faultStore) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *faultStore) Select(ctx context.Context, table string, q domain.Query) ([]domain.Row, error) {
	if err := f.record("select:" + table); err != nil {
		return nil, err
	}
	return f.Store.Select(ctx, table, q)
}

func (f *faultStore) Insert(ctx context.Context, table string, rows ...domain.Row) error {
	if err := f.record("insert:" + table); err != nil {
		return err
	}
	return f.Store.Insert(ctx, table, rows...)
}

func (f *faultStore) Upsert(ctx context.Context, table, key string, rows ...domain.Row) error {
	if err := f.record("upsert:" + table); err != nil {
		return err
	}
	return f.Store.Upsert(ctx, table, key, rows...)
}

func (f *faultStore) Update(ctx context.Context, table, id string, patch domain.Row) error {
	if err := f.record("update:" + table); err != nil {
		return err
	}
	return f.Store.Update(ctx, table, id, patch)
}

func (f *faultStore) Delete(ctx context.Context, table, id string) error {
	if err := f.record("delete:" + table); err != nil {
		return err
	}
	return f.Store.Delete(ctx, table, id)
}

// preload writes the default tools, categories and rankings with their
// default ids straight into the memory backend, bypassing the counters.
func preload(f *faultStore) {
	ctx := context.Background()
	d := Defaults()
	for _, t := range d.Tools {
		row := rowmap.ToolToRow(t)
		row["id"] = t.ID
		mustInsert(f.Store.Insert(ctx, domain.TableTools, row))
	}
	for _, c := range d.Categories {
		row := rowmap.CategoryToRow(c)
		row["id"] = c.ID
		mustInsert(f.Store.Insert(ctx, domain.TableCategories, row))
	}
	for _, r := range d.Rankings {
		row := rowmap.RankingToRow(r)
		row["id"] = r.ID
		mustInsert(f.Store.Insert(ctx, domain.TableRankings, row))
	}
}

func mustInsert(err error) {
	if err != nil {
		panic(err)
	}
}
