// Package schema describes the catalog tables: column names and value kinds
// used by the SQL backends to encode and decode rows, plus the embedded DDL.
package schema

import (
	"bufio"
	"fmt"
	"strings"

	sqldocs "aisumo/docs/schema/sql"
	"aisumo/pkg/domain"
)

// Kind is the logical value type of a column.
type Kind int

const (
	// KindText is a string column.
	KindText Kind = iota
	// KindBool is a boolean column (0/1 in SQLite).
	KindBool
	// KindInt is an integer column.
	KindInt
	// KindJSON is a JSON array column.
	KindJSON
	// KindTime is a timestamp column.
	KindTime
)

// Column is one named column.
type Column struct {
	Name string
	Kind Kind
}

// Table describes one catalog table.
type Table struct {
	Name string
	// NaturalKeys are the unique columns usable as upsert conflict keys.
	NaturalKeys []string
	// DefaultOrder is the column the catalog fetch orders by ("" for none).
	DefaultOrder string
	Columns      []Column
}

// Column returns the named column.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns every column name in declaration order.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// IsConflictKey reports whether key is "id" or one of the natural keys.
func (t Table) IsConflictKey(key string) bool {
	if key == "id" {
		return true
	}
	for _, k := range t.NaturalKeys {
		if k == key {
			return true
		}
	}
	return false
}

func text(names ...string) []Column {
	out := make([]Column, len(names))
	for i, n := range names {
		out[i] = Column{Name: n, Kind: KindText}
	}
	return out
}

func flags(names ...string) []Column {
	out := make([]Column, len(names))
	for i, n := range names {
		out[i] = Column{Name: n, Kind: KindBool}
	}
	return out
}

func cols(groups ...[]Column) []Column {
	var out []Column
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var timestamps = []Column{{Name: "created_at", Kind: KindTime}, {Name: "updated_at", Kind: KindTime}}

var tables = map[string]Table{
	domain.TableTools: {
		Name:         domain.TableTools,
		NaturalKeys:  []string{"slug"},
		DefaultOrder: "created_at",
		Columns: cols(
			text("id", "slug", "name", "description", "logo", "domain", "external_url", "icon", "icon_bg", "video_url"),
			flags("is_paid", "is_hot_deal", "is_featured", "has_recurring_free_credits", "has_student_benefit",
				"has_welcome_credits", "has_instant_welcome_credits", "has_pro_trial_no_card", "has_pro_trial_with_card"),
			[]Column{{Name: "category_ids", Kind: KindJSON}},
			timestamps,
		),
	},
	domain.TableCategories: {
		Name:         domain.TableCategories,
		NaturalKeys:  []string{"slug"},
		DefaultOrder: "sort_order",
		Columns: cols(
			text("id", "slug", "label", "icon"),
			[]Column{{Name: "tool_count", Kind: KindInt}, {Name: "is_active", Kind: KindBool}, {Name: "sort_order", Kind: KindInt}},
			timestamps,
		),
	},
	domain.TableRankings: {
		Name:        domain.TableRankings,
		NaturalKeys: []string{"type"},
		Columns: cols(
			text("id", "type", "title"),
			[]Column{{Name: "tool_ids", Kind: KindJSON}},
			timestamps,
		),
	},
	domain.TableContentItems: {
		Name:         domain.TableContentItems,
		DefaultOrder: "sort_order",
		Columns: cols(
			text("id", "title", "image", "video_url"),
			[]Column{{Name: "category_tags", Kind: KindJSON}, {Name: "sort_order", Kind: KindInt}},
			timestamps,
		),
	},
	domain.TableFilterTabs: {
		Name:         domain.TableFilterTabs,
		DefaultOrder: "sort_order",
		Columns: cols(
			text("id", "label"),
			[]Column{{Name: "is_default", Kind: KindBool}, {Name: "sort_order", Kind: KindInt}},
			timestamps,
		),
	},
	domain.TableIssueOptions: {
		Name: domain.TableIssueOptions,
		Columns: cols(
			text("id", "label"),
			flags("is_active"),
			timestamps,
		),
	},
	domain.TableSiteConfig: {
		Name: domain.TableSiteConfig,
		Columns: cols(
			text("id", "site_name", "site_tagline", "logo_text_primary", "logo_text_secondary", "description", "copyright_year"),
			[]Column{{Name: "languages", Kind: KindJSON}, {Name: "social_links", Kind: KindJSON}},
			timestamps,
		),
	},
	domain.TableSectionConfigs: {
		Name: domain.TableSectionConfigs,
		Columns: cols(
			text("id", "title", "subtitle", "view_all_link", "view_all_text"),
			timestamps,
		),
	},
}

// ErrUnknownTable is returned for table names outside the catalog schema.
type ErrUnknownTable struct{ Name string }

func (e ErrUnknownTable) Error() string { return fmt.Sprintf("unknown table %q", e.Name) }

// Lookup returns the descriptor for a table name.
func Lookup(name string) (Table, error) {
	t, ok := tables[name]
	if !ok {
		return Table{}, ErrUnknownTable{Name: name}
	}
	return t, nil
}

// All returns every table descriptor in domain.Tables order.
func All() []Table {
	out := make([]Table, 0, len(domain.Tables))
	for _, name := range domain.Tables {
		out = append(out, tables[name])
	}
	return out
}

// SQLite returns the catalog DDL for SQLite.
func SQLite() string {
	return sqldocs.SQLite
}

// Postgres returns the catalog DDL for Postgres.
func Postgres() string {
	return sqldocs.Postgres
}

// SplitStatements splits a semicolon-terminated DDL script into executable statements.
// It drops blank lines and single-line comments that start with "--".
func SplitStatements(ddl string) []string {
	scanner := bufio.NewScanner(strings.NewReader(ddl))
	var stmts []string
	var current strings.Builder

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		stmts = append(stmts, tail)
	}

	return stmts
}

// ErrUnknownColumn is returned when a row names a column the table lacks.
type ErrUnknownColumn struct{ Table, Name string }

func (e ErrUnknownColumn) Error() string {
	return fmt.Sprintf("table %s has no column %q", e.Table, e.Name)
}

// CheckColumns rejects any key of row that is not a column of t.
func (t Table) CheckColumns(row domain.Row) error {
	for name := range row {
		if _, ok := t.Column(name); !ok {
			return ErrUnknownColumn{Table: t.Name, Name: name}
		}
	}
	return nil
}
