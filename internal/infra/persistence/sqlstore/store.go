package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"aisumo/internal/schema"
	"aisumo/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.TableStore = (*Store)(nil)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store maps table operations onto SQL statements.
type Store struct {
	db      *sql.DB
	dialect Dialect
	nowFn   func() time.Time
	newID   func() string
}

// New wraps an open database. The schema must already exist; see ApplyDDL.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		nowFn:   func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// SetNowFunc overrides the clock used for created_at and updated_at.
func (s *Store) SetNowFunc(fn func() time.Time) { s.nowFn = fn }

// ApplyDDL executes every statement of a semicolon-separated script.
func ApplyDDL(ctx context.Context, exec execer, ddl string) error {
	for _, stmt := range schema.SplitStatements(ddl) {
		if _, err := exec.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

// Select reads the rows of table.
func (s *Store) Select(ctx context.Context, table string, q domain.Query) ([]domain.Row, error) {
	desc, err := schema.Lookup(table)
	if err != nil {
		return nil, err
	}
	columns := desc.Columns
	if len(q.Columns) > 0 {
		columns = make([]schema.Column, 0, len(q.Columns))
		for _, name := range q.Columns {
			col, ok := desc.Column(name)
			if !ok {
				return nil, schema.ErrUnknownColumn{Table: table, Name: name}
			}
			columns = append(columns, col)
		}
	}
	order := q.OrderBy
	if order == "" {
		order = desc.DefaultOrder
	}
	if order != "" {
		if _, ok := desc.Column(order); !ok {
			return nil, schema.ErrUnknownColumn{Table: table, Name: order}
		}
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = quote(c.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(names, ", "), quote(table))
	if order != "" {
		fmt.Fprintf(&b, " ORDER BY %s", quote(order))
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT " + strconv.Itoa(q.Limit))
	}

	rows, err := s.db.QueryContext(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			v, err := decode(col, values[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", table, err)
			}
			row[col.Name] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

// Insert writes every row in one transaction.
func (s *Store) Insert(ctx context.Context, table string, rows ...domain.Row) error {
	return s.write(ctx, table, "", rows)
}

// Upsert inserts rows, updating the supplied columns when conflictKey matches
// an existing row.
func (s *Store) Upsert(ctx context.Context, table, conflictKey string, rows ...domain.Row) error {
	desc, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	if !desc.IsConflictKey(conflictKey) {
		return fmt.Errorf("upsert %s: %q is not a unique column", table, conflictKey)
	}
	for i, row := range rows {
		if v, ok := row[conflictKey]; !ok || v == nil || v == "" {
			return fmt.Errorf("upsert %s: row %d has no %s", table, i, conflictKey)
		}
	}
	return s.write(ctx, table, conflictKey, rows)
}

func (s *Store) write(ctx context.Context, table, conflictKey string, rows []domain.Row) error {
	desc, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := desc.CheckColumns(row); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", table, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	now := s.nowFn()
	for _, row := range rows {
		query, args, err := s.insertStatement(desc, conflictKey, row, now)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("write %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	committed = true
	return nil
}

func (s *Store) insertStatement(desc schema.Table, conflictKey string, row domain.Row, now time.Time) (string, []any, error) {
	rec := make(domain.Row, len(row)+3)
	for k, v := range row {
		rec[k] = v
	}
	if id, _ := rec["id"].(string); id == "" {
		rec["id"] = s.newID()
	}
	rec["created_at"] = now
	rec["updated_at"] = now

	names := make([]string, 0, len(rec))
	for k := range rec {
		names = append(names, k)
	}
	slices.Sort(names)

	cols := make([]string, len(names))
	marks := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		col, _ := desc.Column(name)
		v, err := s.dialect.encode(col, rec[name])
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", desc.Name, err)
		}
		cols[i] = quote(name)
		marks[i] = s.dialect.placeholder(i+1, col.Kind)
		args[i] = v
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(desc.Name), strings.Join(cols, ", "), strings.Join(marks, ", "))
	if conflictKey == "" {
		return query, args, nil
	}
	var sets []string
	for _, name := range names {
		if name == "id" || name == "created_at" || name == conflictKey {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", quote(name), quote(name)))
	}
	query += fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", quote(conflictKey), strings.Join(sets, ", "))
	return query, args, nil
}

// Update overwrites the patched columns of the row with id.
func (s *Store) Update(ctx context.Context, table, id string, patch domain.Row) error {
	desc, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	if err := desc.CheckColumns(patch); err != nil {
		return err
	}
	rec := make(domain.Row, len(patch)+1)
	for k, v := range patch {
		if k == "id" || k == "created_at" {
			continue
		}
		rec[k] = v
	}
	rec["updated_at"] = s.nowFn()
	names := make([]string, 0, len(rec))
	for k := range rec {
		names = append(names, k)
	}
	slices.Sort(names)

	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		col, _ := desc.Column(name)
		v, err := s.dialect.encode(col, rec[name])
		if err != nil {
			return fmt.Errorf("%s: %w", table, err)
		}
		sets[i] = fmt.Sprintf("%s = %s", quote(name), s.dialect.placeholder(i+1, col.Kind))
		args = append(args, v)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		quote(table), strings.Join(sets, ", "), quote("id"), s.dialect.placeholder(len(args), schema.KindText))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// Delete removes the row with id.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	if _, err := schema.Lookup(table); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s", quote(table), quote("id"), s.dialect.placeholder(1, schema.KindText))
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
