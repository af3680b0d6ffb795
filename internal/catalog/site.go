package catalog

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"aisumo/pkg/domain"
)

// Site is the read-only view used by public pages. Every accessor returns
// copies.
type Site struct {
	store *Store
}

// NewSite returns the read-only facade over s.
func NewSite(s *Store) *Site { return &Site{store: s} }

// IsLoading reports whether a fetch is in progress.
func (f *Site) IsLoading() bool { return f.store.IsLoading() }

// IsDatabaseSeeded reports whether the last fetch saw any tool or category.
func (f *Site) IsDatabaseSeeded() bool { return f.store.IsSeeded() }

// FetchAll refreshes the store behind the facade from the backend.
func (f *Site) FetchAll(ctx context.Context) FetchReport { return f.store.FetchAll(ctx) }

// Snapshot returns every collection plus the store flags.
func (f *Site) Snapshot() Snapshot { return f.store.Snapshot() }

// Tools returns all tools.
func (f *Site) Tools() []domain.Tool {
	var out []domain.Tool
	f.store.read(func(d *Data) { out = Data{Tools: d.Tools}.Clone().Tools })
	return out
}

// Categories returns all categories in stored order.
func (f *Site) Categories() []domain.Category {
	var out []domain.Category
	f.store.read(func(d *Data) { out = slices.Clone(d.Categories) })
	return out
}

// Rankings returns all ranking lists.
func (f *Site) Rankings() []domain.RankingList {
	var out []domain.RankingList
	f.store.read(func(d *Data) { out = Data{Rankings: d.Rankings}.Clone().Rankings })
	return out
}

// ContentItems returns all content items.
func (f *Site) ContentItems() []domain.ContentItem {
	var out []domain.ContentItem
	f.store.read(func(d *Data) { out = Data{ContentItems: d.ContentItems}.Clone().ContentItems })
	return out
}

// FilterTabs returns all filter tabs.
func (f *Site) FilterTabs() []domain.FilterTab {
	var out []domain.FilterTab
	f.store.read(func(d *Data) { out = slices.Clone(d.FilterTabs) })
	return out
}

// IssueOptions returns every issue option, active or not.
func (f *Site) IssueOptions() []domain.IssueOption {
	var out []domain.IssueOption
	f.store.read(func(d *Data) { out = slices.Clone(d.IssueOptions) })
	return out
}

// SiteConfig returns the site-wide configuration.
func (f *Site) SiteConfig() domain.SiteConfig {
	var out domain.SiteConfig
	f.store.read(func(d *Data) { out = cloneSiteConfig(d.SiteConfig) })
	return out
}

// SectionConfigs returns the section copy keyed by section id.
func (f *Site) SectionConfigs() domain.SectionConfigs {
	var out domain.SectionConfigs
	f.store.read(func(d *Data) { out = Data{SectionConfigs: d.SectionConfigs}.Clone().SectionConfigs })
	return out
}

// ToolByID looks a tool up by id.
func (f *Site) ToolByID(id string) (domain.Tool, bool) {
	return f.findTool(func(t domain.Tool) bool { return t.ID == id })
}

// ToolBySlug looks a tool up by slug.
func (f *Site) ToolBySlug(slug string) (domain.Tool, bool) {
	return f.findTool(func(t domain.Tool) bool { return t.Slug == slug })
}

func (f *Site) findTool(match func(domain.Tool) bool) (domain.Tool, bool) {
	var (
		out domain.Tool
		ok  bool
	)
	f.store.read(func(d *Data) {
		if i := slices.IndexFunc(d.Tools, match); i >= 0 {
			out, ok = cloneTool(d.Tools[i]), true
		}
	})
	return out, ok
}

// ToolsForRanking resolves r's tool ids in order. Ids that no longer match a
// tool are dropped and ranks are renumbered densely from 1.
func (f *Site) ToolsForRanking(r domain.RankingList) []domain.RankedTool {
	out := make([]domain.RankedTool, 0, len(r.ToolIDs))
	f.store.read(func(d *Data) {
		byID := make(map[string]int, len(d.Tools))
		for i, t := range d.Tools {
			byID[t.ID] = i
		}
		for _, id := range r.ToolIDs {
			i, ok := byID[id]
			if !ok {
				continue
			}
			out = append(out, domain.RankedTool{Tool: cloneTool(d.Tools[i]), Rank: len(out) + 1})
		}
	})
	return out
}

// RankingByID looks a ranking up by id.
func (f *Site) RankingByID(id string) (domain.RankingList, bool) {
	return f.findRanking(func(r domain.RankingList) bool { return r.ID == id })
}

// RankingByType returns the first ranking of type t.
func (f *Site) RankingByType(t domain.RankingType) (domain.RankingList, bool) {
	return f.findRanking(func(r domain.RankingList) bool { return r.Type == t })
}

func (f *Site) findRanking(match func(domain.RankingList) bool) (domain.RankingList, bool) {
	var (
		out domain.RankingList
		ok  bool
	)
	f.store.read(func(d *Data) {
		if i := slices.IndexFunc(d.Rankings, match); i >= 0 {
			out, ok = d.Rankings[i], true
			out.ToolIDs = slices.Clone(out.ToolIDs)
		}
	})
	return out, ok
}

// CategoryByID looks a category up by id.
func (f *Site) CategoryByID(id string) (domain.Category, bool) {
	var (
		out domain.Category
		ok  bool
	)
	f.store.read(func(d *Data) {
		if i := slices.IndexFunc(d.Categories, func(c domain.Category) bool { return c.ID == id }); i >= 0 {
			out, ok = d.Categories[i], true
		}
	})
	return out, ok
}

// SortedCategories returns categories by ascending sort order.
func (f *Site) SortedCategories() []domain.Category {
	out := f.Categories()
	slices.SortStableFunc(out, func(a, b domain.Category) int { return cmp.Compare(a.SortOrder, b.SortOrder) })
	return out
}

// ToolsByCategory returns the tools listing categoryID.
func (f *Site) ToolsByCategory(categoryID string) []domain.Tool {
	return f.filterTools(func(t domain.Tool) bool { return slices.Contains(t.CategoryIDs, categoryID) })
}

// FeaturedTools returns the tools flagged as featured.
func (f *Site) FeaturedTools() []domain.Tool {
	return f.filterTools(func(t domain.Tool) bool { return t.IsFeatured })
}

// HotDealTools returns the tools flagged as hot deals.
func (f *Site) HotDealTools() []domain.Tool {
	return f.filterTools(func(t domain.Tool) bool { return t.IsHotDeal })
}

// Search matches q case-insensitively against tool names and descriptions.
// An empty query returns every tool.
func (f *Site) Search(q string) []domain.Tool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return f.Tools()
	}
	return f.filterTools(func(t domain.Tool) bool {
		return strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Description), q)
	})
}

func (f *Site) filterTools(keep func(domain.Tool) bool) []domain.Tool {
	out := []domain.Tool{}
	f.store.read(func(d *Data) {
		for _, t := range d.Tools {
			if keep(t) {
				out = append(out, cloneTool(t))
			}
		}
	})
	return out
}

// ActiveIssueOptions returns the options shown in the report form.
func (f *Site) ActiveIssueOptions() []domain.IssueOption {
	out := []domain.IssueOption{}
	for _, o := range f.IssueOptions() {
		if o.IsActive {
			out = append(out, o)
		}
	}
	return out
}

// DefaultFilterTab returns the first tab flagged default, else the first tab.
func (f *Site) DefaultFilterTab() (domain.FilterTab, bool) {
	tabs := f.FilterTabs()
	if len(tabs) == 0 {
		return domain.FilterTab{}, false
	}
	if i := slices.IndexFunc(tabs, func(t domain.FilterTab) bool { return t.IsDefault }); i >= 0 {
		return tabs[i], true
	}
	return tabs[0], true
}

// Section returns the copy for section id, falling back to the built-in copy
// when the store has none.
func (f *Site) Section(id string) (domain.SectionConfig, bool) {
	var (
		out domain.SectionConfig
		ok  bool
	)
	f.store.read(func(d *Data) { out, ok = d.SectionConfigs[id] })
	if ok {
		return out, true
	}
	out, ok = defaultSectionConfigs()[id]
	return out, ok
}
