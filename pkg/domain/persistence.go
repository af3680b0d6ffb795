package domain

import "context"

// Table names of the remote persistence service.
const (
	TableTools          = "tools"
	TableCategories     = "categories"
	TableRankings       = "rankings"
	TableContentItems   = "content_items"
	TableFilterTabs     = "filter_tabs"
	TableIssueOptions   = "issue_options"
	TableSiteConfig     = "site_config"
	TableSectionConfigs = "section_configs"
)

// Tables lists every table consumed by the catalog.
var Tables = []string{
	TableTools,
	TableCategories,
	TableRankings,
	TableContentItems,
	TableFilterTabs,
	TableIssueOptions,
	TableSiteConfig,
	TableSectionConfigs,
}

// Row is a flat persistence record keyed by snake_case column name.
type Row map[string]any

// Query narrows a Select. Zero values select every column of every row in
// backend order.
type Query struct {
	Columns []string
	OrderBy string
	Limit   int
}

// TableStore is the table-oriented remote persistence service. Backends
// generate ids for rows inserted without one and maintain created_at and
// updated_at. Update and Delete with an id that matches nothing succeed.
type TableStore interface {
	Select(ctx context.Context, table string, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, rows ...Row) error
	Upsert(ctx context.Context, table, conflictKey string, rows ...Row) error
	Update(ctx context.Context, table, id string, patch Row) error
	Delete(ctx context.Context, table, id string) error
	Close() error
}
