// Package memory provides an in-memory implementation of the table store used
// for tests and ephemeral environments.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"aisumo/internal/schema"
	"aisumo/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.TableStore = (*Store)(nil)

// Store keeps every table as an insertion-ordered slice of rows.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]domain.Row
	nowFn  func() time.Time
	newID  func() string
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	tables := make(map[string][]domain.Row, len(domain.Tables))
	for _, name := range domain.Tables {
		tables[name] = nil
	}
	return &Store{
		tables: tables,
		nowFn:  func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// SetNowFunc overrides the clock used for created_at and updated_at.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = fn
}

// Len reports the number of rows held in table.
func (s *Store) Len(table string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[table])
}

// Select returns copies of the rows of table, ordered by q.OrderBy or the
// table's default order.
func (s *Store) Select(_ context.Context, table string, q domain.Query) ([]domain.Row, error) {
	desc, err := schema.Lookup(table)
	if err != nil {
		return nil, err
	}
	for _, c := range q.Columns {
		if _, ok := desc.Column(c); !ok {
			return nil, schema.ErrUnknownColumn{Table: table, Name: c}
		}
	}
	order := q.OrderBy
	if order == "" {
		order = desc.DefaultOrder
	}
	s.mu.RLock()
	rows := make([]domain.Row, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		rows = append(rows, project(row, q.Columns))
	}
	s.mu.RUnlock()
	if order != "" {
		slices.SortStableFunc(rows, func(a, b domain.Row) int { return compareValues(a[order], b[order]) })
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

// Insert appends rows, assigning ids to rows without one.
func (s *Store) Insert(_ context.Context, table string, rows ...domain.Row) error {
	desc, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	if err := checkRows(desc, rows); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFn()
	existing := s.tables[table]
	for _, row := range rows {
		rec := cloneRow(row)
		if id, _ := rec["id"].(string); id == "" {
			rec["id"] = s.newID()
		} else if indexOf(existing, "id", id) >= 0 {
			return fmt.Errorf("insert %s: duplicate id %q", table, id)
		}
		for _, key := range desc.NaturalKeys {
			if v, ok := rec[key]; ok && indexOf(existing, key, v) >= 0 {
				return fmt.Errorf("insert %s: duplicate %s %v", table, key, v)
			}
		}
		rec["created_at"] = now
		rec["updated_at"] = now
		existing = append(existing, rec)
	}
	s.tables[table] = existing
	return nil
}

// Upsert inserts each row or, when a row with the same conflictKey value
// exists, overwrites the supplied columns of that row.
func (s *Store) Upsert(_ context.Context, table, conflictKey string, rows ...domain.Row) error {
	desc, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	if !desc.IsConflictKey(conflictKey) {
		return fmt.Errorf("upsert %s: %q is not a unique column", table, conflictKey)
	}
	if err := checkRows(desc, rows); err != nil {
		return err
	}
	for i, row := range rows {
		if v, ok := row[conflictKey]; !ok || v == nil || v == "" {
			return fmt.Errorf("upsert %s: row %d has no %s", table, i, conflictKey)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFn()
	existing := s.tables[table]
	for _, row := range rows {
		if idx := indexOf(existing, conflictKey, row[conflictKey]); idx >= 0 {
			rec := existing[idx]
			for k, v := range cloneRow(row) {
				if k == "id" || k == "created_at" {
					continue
				}
				rec[k] = v
			}
			rec["updated_at"] = now
			continue
		}
		rec := cloneRow(row)
		if id, _ := rec["id"].(string); id == "" {
			rec["id"] = s.newID()
		}
		rec["created_at"] = now
		rec["updated_at"] = now
		existing = append(existing, rec)
	}
	s.tables[table] = existing
	return nil
}

// Update overwrites the patched columns of the row with id. A missing id is
// not an error.
func (s *Store) Update(_ context.Context, table, id string, patch domain.Row) error {
	desc, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	if err := desc.CheckColumns(patch); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.tables[table], "id", id)
	if idx < 0 {
		return nil
	}
	rec := s.tables[table][idx]
	for k, v := range cloneRow(patch) {
		if k == "id" || k == "created_at" {
			continue
		}
		rec[k] = v
	}
	rec["updated_at"] = s.nowFn()
	return nil
}

// Delete removes the row with id. A missing id is not an error.
func (s *Store) Delete(_ context.Context, table, id string) error {
	if _, err := schema.Lookup(table); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	if idx := indexOf(rows, "id", id); idx >= 0 {
		s.tables[table] = slices.Delete(rows, idx, idx+1)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func checkRows(desc schema.Table, rows []domain.Row) error {
	for _, row := range rows {
		if err := desc.CheckColumns(row); err != nil {
			return err
		}
	}
	return nil
}

func indexOf(rows []domain.Row, key string, value any) int {
	for i, row := range rows {
		if v, ok := row[key]; ok && reflect.DeepEqual(v, value) {
			return i
		}
	}
	return -1
}

func project(row domain.Row, columns []string) domain.Row {
	if len(columns) == 0 {
		return cloneRow(row)
	}
	out := make(domain.Row, len(columns))
	for _, c := range columns {
		if v, ok := row[c]; ok {
			out[c] = cloneValue(v)
		}
	}
	return out
}

func cloneRow(row domain.Row) domain.Row {
	out := make(domain.Row, len(row))
	for k, v := range row {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies slices and maps so callers never alias stored rows.
func cloneValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && !rv.IsNil() {
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(cp, rv)
		return cp.Interface()
	}
	return v
}

// compareValues orders nil first, then numbers, strings, booleans and
// timestamps by their natural order.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if af, ok := number(a); ok {
		if bf, ok := number(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
