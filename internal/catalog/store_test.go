package catalog

import (
	"context"
	"reflect"
	"testing"

	"aisumo/internal/rowmap"
	"aisumo/pkg/domain"
)

func TestNewStartsFromDefaults(t *testing.T) {
	s := New(newFaultStore())
	snap := s.Snapshot()
	if snap.IsLoading || snap.IsSeeded {
		t.Fatalf("expected idle, unseeded store: %+v", snap)
	}
	if !reflect.DeepEqual(snap.Data, Defaults()) {
		t.Fatalf("expected default catalog")
	}
}

func TestFetchAllEmptyBackendKeepsDefaults(t *testing.T) {
	backend := newFaultStore()
	s := New(backend)
	report := s.FetchAll(context.Background())
	if len(report.Tables) != len(domain.Tables) || len(report.Failed()) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if got := backend.count("select:"); got != len(domain.Tables) {
		t.Fatalf("expected one select per table, got %d", got)
	}
	snap := s.Snapshot()
	if snap.IsSeeded || snap.IsLoading {
		t.Fatalf("expected unseeded idle store")
	}
	if !reflect.DeepEqual(snap.Data, Defaults()) {
		t.Fatalf("empty tables must keep the defaults")
	}
}

func TestFetchAllReplacesNonEmptyTablesOnly(t *testing.T) {
	backend := newFaultStore()
	ctx := context.Background()
	if err := backend.Store.Insert(ctx, domain.TableTools,
		domain.Row{"id": "t1", "slug": "one", "name": "One", "category_ids": []string{}},
		domain.Row{"id": "t2", "slug": "two", "name": "Two", "category_ids": []string{}},
	); err != nil {
		t.Fatalf("insert: %v", err)
	}
	s := New(backend)
	s.FetchAll(ctx)
	snap := s.Snapshot()
	if len(snap.Tools) != 2 || snap.Tools[0].ID != "t1" || snap.Tools[1].ID != "t2" {
		t.Fatalf("expected exactly the two fetched tools, got %+v", snap.Tools)
	}
	if !snap.IsSeeded {
		t.Fatalf("tool rows must mark the store seeded")
	}
	if !reflect.DeepEqual(snap.Categories, Defaults().Categories) {
		t.Fatalf("categories must stay default")
	}
}

func TestFetchAllFailedTableKeepsPreviousValue(t *testing.T) {
	backend := newFaultStore()
	preload(backend)
	ctx := context.Background()
	s := New(backend)
	s.FetchAll(ctx)
	before := s.Snapshot()

	// Change the backend, then make the rankings read fail.
	if err := backend.Store.Update(ctx, domain.TableRankings, "rank-coding", domain.Row{"title": "Changed"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := backend.Store.Update(ctx, domain.TableTools, "cursor", domain.Row{"name": "Cursor 2"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	backend.fail("select:" + domain.TableRankings)
	report := s.FetchAll(ctx)
	if failed := report.Failed(); len(failed) != 1 || failed[0] != domain.TableRankings {
		t.Fatalf("expected rankings failure only, got %v", failed)
	}
	after := s.Snapshot()
	if !reflect.DeepEqual(after.Rankings, before.Rankings) {
		t.Fatalf("failed read must keep the previous rankings")
	}
	site := NewSite(s)
	if tool, _ := site.ToolByID("cursor"); tool.Name != "Cursor 2" {
		t.Fatalf("other tables must still refresh, got %q", tool.Name)
	}
}

func TestFetchAllMalformedRowsKeepPreviousValue(t *testing.T) {
	backend := newFaultStore()
	ctx := context.Background()
	if err := backend.Store.Insert(ctx, domain.TableCategories, domain.Row{"slug": "x", "label": "X", "sort_order": "first"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	s := New(backend)
	report := s.FetchAll(ctx)
	if len(report.Failed()) != 1 {
		t.Fatalf("expected decode failure to be reported, got %+v", report)
	}
	if !reflect.DeepEqual(s.Snapshot().Categories, Defaults().Categories) {
		t.Fatalf("malformed rows must not replace categories")
	}
	if s.IsSeeded() {
		t.Fatalf("rejected rows do not count as seeded")
	}
}

func TestFetchAllSiteConfigAndSections(t *testing.T) {
	backend := newFaultStore()
	ctx := context.Background()
	cfg := Defaults().SiteConfig
	cfg.SiteName = "Remote"
	if err := backend.Store.Insert(ctx, domain.TableSiteConfig, rowmap.SiteConfigToRow(cfg)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := backend.Store.Insert(ctx, domain.TableSectionConfigs, rowmap.SectionConfigToRow(domain.SectionConfig{ID: "rankings", Title: "Top"})); err != nil {
		t.Fatalf("insert: %v", err)
	}
	s := New(backend)
	s.FetchAll(ctx)
	snap := s.Snapshot()
	if snap.SiteConfig.SiteName != "Remote" || len(snap.SiteConfig.Languages) != len(cfg.Languages) {
		t.Fatalf("unexpected site config %+v", snap.SiteConfig)
	}
	if len(snap.SectionConfigs) != 1 || snap.SectionConfigs["rankings"].Title != "Top" {
		t.Fatalf("section configs must be replaced wholesale, got %+v", snap.SectionConfigs)
	}
	if snap.IsSeeded {
		t.Fatalf("only tools or categories mark the store seeded")
	}
}

func TestResetToDefaultsIsLocalAndIdempotent(t *testing.T) {
	backend := newFaultStore()
	s := New(backend)
	s.SetTools(nil)
	s.SetFilterTabs([]domain.FilterTab{{ID: "x", Label: "X"}})
	s.ResetToDefaults()
	once := s.Snapshot()
	s.ResetToDefaults()
	twice := s.Snapshot()
	if !reflect.DeepEqual(once, twice) || !reflect.DeepEqual(once.Data, Defaults()) {
		t.Fatalf("reset must restore the same default snapshot")
	}
	if backend.callCount() != 0 {
		t.Fatalf("reset must not call the backend, saw %v", backend.calls)
	}
}

func TestSettersAreLocalOnly(t *testing.T) {
	backend := newFaultStore()
	s := New(backend)
	tabs := []domain.FilterTab{{ID: "a", Label: "A", IsDefault: true}}
	s.SetFilterTabs(tabs)
	tabs[0].Label = "mutated"
	s.SetIssueOptions([]domain.IssueOption{{ID: "i", Label: "I"}})
	s.SetSiteConfig(domain.SiteConfig{SiteName: "Local"})
	s.SetSectionConfigs(domain.SectionConfigs{"x": {ID: "x", Title: "X"}})
	s.SetCategories([]domain.Category{{ID: "c", Slug: "c", Label: "C"}})
	s.SetRankings([]domain.RankingList{{ID: "r", Type: domain.RankingOverall}})
	s.SetContentItems([]domain.ContentItem{{ID: "ci", Title: "T"}})
	snap := s.Snapshot()
	if snap.FilterTabs[0].Label != "A" {
		t.Fatalf("setter must copy its input")
	}
	if snap.SiteConfig.SiteName != "Local" || len(snap.IssueOptions) != 1 || len(snap.SectionConfigs) != 1 ||
		len(snap.Categories) != 1 || len(snap.Rankings) != 1 || len(snap.ContentItems) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if backend.callCount() != 0 {
		t.Fatalf("setters must not call the backend")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := New(newFaultStore())
	snap := s.Snapshot()
	snap.Tools[0].CategoryIDs[0] = "mutated"
	snap.Rankings[0].ToolIDs[0] = "mutated"
	snap.SectionConfigs["rankings"] = domain.SectionConfig{}
	fresh := s.Snapshot()
	if fresh.Tools[0].CategoryIDs[0] == "mutated" || fresh.Rankings[0].ToolIDs[0] == "mutated" || fresh.SectionConfigs["rankings"].Title == "" {
		t.Fatalf("snapshot shares memory with the store")
	}
}
