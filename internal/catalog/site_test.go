package catalog

import (
	"math"
	"testing"

	"aisumo/pkg/domain"
)

func TestToolsForRankingSkipsMissingTools(t *testing.T) {
	s := New(newFaultStore())
	site := NewSite(s)
	s.SetTools([]domain.Tool{
		{ID: "a", Slug: "a", Name: "A"},
		{ID: "c", Slug: "c", Name: "C"},
	})
	ranked := site.ToolsForRanking(domain.RankingList{ID: "r", ToolIDs: []string{"a", "b", "c", "a"}})
	if len(ranked) != 3 {
		t.Fatalf("expected 3 resolved entries, got %+v", ranked)
	}
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Fatalf("ranks must be dense, got %d at %d", r.Rank, i)
		}
	}
	if ranked[1].ID != "c" {
		t.Fatalf("order must follow the ranking, got %s", ranked[1].ID)
	}
	if got := site.ToolsForRanking(domain.RankingList{}); len(got) != 0 {
		t.Fatalf("empty ranking resolves to nothing")
	}
}

func TestDefaultRankingsResolve(t *testing.T) {
	site := NewSite(New(newFaultStore()))
	for _, r := range site.Rankings() {
		if got := site.ToolsForRanking(r); len(got) != len(r.ToolIDs) {
			t.Fatalf("ranking %s: %d of %d ids resolve", r.ID, len(got), len(r.ToolIDs))
		}
	}
	overall, ok := site.RankingByType(domain.RankingOverall)
	if !ok || overall.ID != "rank-overall" {
		t.Fatalf("unexpected overall ranking %+v", overall)
	}
	if _, ok := site.RankingByID("nope"); ok {
		t.Fatalf("unknown ranking must not resolve")
	}
}

func TestSearch(t *testing.T) {
	s := New(newFaultStore())
	s.SetTools([]domain.Tool{
		{ID: "1", Name: "Midjourney", Description: "Image generation"},
		{ID: "2", Name: "Runway", Description: "Video editing with AI"},
		{ID: "3", Name: "Cursor", Description: "Code editor"},
	})
	site := NewSite(s)
	if got := site.Search("  "); len(got) != 3 {
		t.Fatalf("blank query returns everything, got %d", len(got))
	}
	if got := site.Search("EDIT"); len(got) != 2 {
		t.Fatalf("expected case-insensitive description match, got %+v", got)
	}
	if got := site.Search("midj"); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected name match, got %+v", got)
	}
	if got := site.Search("zzz"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result")
	}
}

func TestToolLookupsAndFilters(t *testing.T) {
	s := New(newFaultStore())
	s.SetTools([]domain.Tool{
		{ID: "1", Slug: "one", CategoryIDs: []string{"cat-1"}, IsFeatured: true},
		{ID: "2", Slug: "two", CategoryIDs: []string{"cat-1", "cat-2"}, IsHotDeal: true},
		{ID: "3", Slug: "three"},
	})
	site := NewSite(s)
	if got := site.ToolsByCategory("cat-1"); len(got) != 2 {
		t.Fatalf("expected 2 tools in cat-1, got %d", len(got))
	}
	if got := site.FeaturedTools(); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("unexpected featured %+v", got)
	}
	if got := site.HotDealTools(); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected hot deals %+v", got)
	}
	tool, ok := site.ToolBySlug("two")
	if !ok || tool.ID != "2" {
		t.Fatalf("slug lookup failed")
	}
	tool.CategoryIDs[0] = "mutated"
	if again, _ := site.ToolByID("2"); again.CategoryIDs[0] != "cat-1" {
		t.Fatalf("lookups must return copies")
	}
}

func TestSortedCategoriesAndActiveIssues(t *testing.T) {
	s := New(newFaultStore())
	s.SetCategories([]domain.Category{
		{ID: "b", SortOrder: 2},
		{ID: "a", SortOrder: 1},
		{ID: "c", SortOrder: 2},
	})
	s.SetIssueOptions([]domain.IssueOption{
		{ID: "x", IsActive: true},
		{ID: "y"},
	})
	site := NewSite(s)
	cats := site.SortedCategories()
	if cats[0].ID != "a" || cats[1].ID != "b" || cats[2].ID != "c" {
		t.Fatalf("unexpected order %+v", cats)
	}
	if got := site.Categories(); got[0].ID != "b" {
		t.Fatalf("Categories keeps stored order")
	}
	if got := site.ActiveIssueOptions(); len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("unexpected active options %+v", got)
	}
}

func TestSortedCategoriesExtremeSortOrders(t *testing.T) {
	s := New(newFaultStore())
	s.SetCategories([]domain.Category{
		{ID: "max", SortOrder: math.MaxInt},
		{ID: "min", SortOrder: math.MinInt},
		{ID: "zero", SortOrder: 0},
	})
	cats := NewSite(s).SortedCategories()
	if cats[0].ID != "min" || cats[1].ID != "zero" || cats[2].ID != "max" {
		t.Fatalf("unexpected order %+v", cats)
	}
}

func TestDefaultFilterTab(t *testing.T) {
	s := New(newFaultStore())
	site := NewSite(s)
	tab, ok := site.DefaultFilterTab()
	if !ok || tab.ID != "trending" {
		t.Fatalf("expected trending default, got %+v", tab)
	}
	s.SetFilterTabs([]domain.FilterTab{{ID: "first"}, {ID: "second"}})
	if tab, _ := site.DefaultFilterTab(); tab.ID != "first" {
		t.Fatalf("expected first tab fallback, got %s", tab.ID)
	}
	s.SetFilterTabs(nil)
	if _, ok := site.DefaultFilterTab(); ok {
		t.Fatalf("no tabs, no default")
	}
}

func TestSectionFallsBackToBuiltIn(t *testing.T) {
	s := New(newFaultStore())
	s.SetSectionConfigs(domain.SectionConfigs{SectionRankings: {ID: SectionRankings, Title: "Custom"}})
	site := NewSite(s)
	if sec, ok := site.Section(SectionRankings); !ok || sec.Title != "Custom" {
		t.Fatalf("unexpected stored section %+v", sec)
	}
	sec, ok := site.Section(SectionDevEssentials)
	if !ok || sec.Title != defaultSectionConfigs()[SectionDevEssentials].Title {
		t.Fatalf("expected built-in fallback, got %+v", sec)
	}
	if _, ok := site.Section("unknown"); ok {
		t.Fatalf("unknown section must not resolve")
	}
}
