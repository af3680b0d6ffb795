package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"aisumo/pkg/domain"
)

func seededStore(t *testing.T) (*Store, *faultStore) {
	t.Helper()
	backend := newFaultStore()
	preload(backend)
	s := New(backend)
	s.FetchAll(context.Background())
	backend.calls = nil
	return s, backend
}

func TestUpdateToolThenRead(t *testing.T) {
	s, backend := seededStore(t)
	later := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	backend.SetNowFunc(func() time.Time { return later })
	if err := s.UpdateTool(context.Background(), "cursor", domain.ToolPatch{Name: domain.Ptr("X")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	tool, ok := NewSite(s).ToolByID("cursor")
	if !ok || tool.Name != "X" {
		t.Fatalf("expected refetched name X, got %+v", tool)
	}
	if !tool.UpdatedAt.Equal(later) {
		t.Fatalf("expected backend timestamp after refetch, got %v", tool.UpdatedAt)
	}
	if tool.Slug != "cursor" || !tool.IsPaid {
		t.Fatalf("partial update clobbered other fields: %+v", tool)
	}
	if backend.calls[0] != "update:tools" || backend.count("select:") != len(domain.Tables) {
		t.Fatalf("expected write then full refetch, got %v", backend.calls)
	}
}

func TestDeleteToolRenumbersRanking(t *testing.T) {
	s, _ := seededStore(t)
	site := NewSite(s)
	if err := s.DeleteTool(context.Background(), "cursor"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	coding, ok := site.RankingByID("rank-coding")
	if !ok {
		t.Fatalf("missing rank-coding")
	}
	ranked := site.ToolsForRanking(coding)
	want := []string{"github-copilot", "replit-ai", "codeium", "tabnine"}
	if len(ranked) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), ranked)
	}
	for i, r := range ranked {
		if r.ID != want[i] || r.Rank != i+1 {
			t.Fatalf("entry %d: got %s rank %d", i, r.ID, r.Rank)
		}
	}
	if len(coding.ToolIDs) != 5 {
		t.Fatalf("ranking itself keeps the dangling id")
	}
}

func TestValidationFailsBeforeAnyRemoteCall(t *testing.T) {
	s, backend := seededStore(t)
	ctx := context.Background()
	cases := map[string]error{
		"tool without name":      s.AddTool(ctx, domain.Tool{Slug: "x"}),
		"tool with bad slug":     s.AddTool(ctx, domain.Tool{Name: "X", Slug: "Not A Slug"}),
		"category without label": s.AddCategory(ctx, domain.Category{Slug: "c"}),
		"content without title":  s.AddContentItem(ctx, domain.ContentItem{Title: "<b></b>"}),
		"blank tool name patch":  s.UpdateTool(ctx, "cursor", domain.ToolPatch{Name: domain.Ptr(" ")}),
		"blank ranking title":    s.UpdateRanking(ctx, "rank-coding", domain.RankingPatch{Title: domain.Ptr("")}),
		"update without id":      s.UpdateCategory(ctx, "", domain.CategoryPatch{}),
		"delete without id":      s.DeleteContentItem(ctx, ""),
		"bad category slug":      s.UpdateCategory(ctx, "cat-1", domain.CategoryPatch{Slug: domain.Ptr("A B")}),
		"blank content patch":    s.UpdateContentItem(ctx, "content-1", domain.ContentItemPatch{Title: domain.Ptr("")}),
	}
	for name, err := range cases {
		if !domain.IsValidationError(err) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
	if backend.callCount() != 0 {
		t.Fatalf("validation failures must not reach the backend, saw %v", backend.calls)
	}
}

func TestWriteFailurePropagatesWithoutRefetch(t *testing.T) {
	s, backend := seededStore(t)
	before := s.Snapshot()
	backend.fail("insert:" + domain.TableTools)
	backend.fail("update:" + domain.TableRankings)
	backend.fail("delete:" + domain.TableCategories)
	ctx := context.Background()

	err := s.AddTool(ctx, domain.Tool{Name: "New", Slug: "new"})
	if !errors.Is(err, errInjected) || err.Error() != "add tool: injected failure" {
		t.Fatalf("unexpected add error %v", err)
	}
	if err := s.UpdateRanking(ctx, "rank-coding", domain.RankingPatch{Title: domain.Ptr("T")}); !errors.Is(err, errInjected) {
		t.Fatalf("unexpected update error %v", err)
	}
	if err := s.DeleteCategory(ctx, "cat-1"); !errors.Is(err, errInjected) {
		t.Fatalf("unexpected delete error %v", err)
	}
	if backend.count("select:") != 0 {
		t.Fatalf("failed writes must not refetch, saw %v", backend.calls)
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Fatalf("failed writes must leave state unchanged")
	}
}

func TestCategoryAndContentLifecycle(t *testing.T) {
	s, _ := seededStore(t)
	ctx := context.Background()
	site := NewSite(s)

	if err := s.AddCategory(ctx, domain.Category{Slug: "science", Label: "Science", SortOrder: 11, IsActive: true}); err != nil {
		t.Fatalf("add category: %v", err)
	}
	cats := site.SortedCategories()
	last := cats[len(cats)-1]
	if last.Slug != "science" || last.ID == "" {
		t.Fatalf("expected generated id for new category, got %+v", last)
	}
	if err := s.UpdateCategory(ctx, last.ID, domain.CategoryPatch{ToolCount: domain.Ptr(3)}); err != nil {
		t.Fatalf("update category: %v", err)
	}
	if c, _ := site.CategoryByID(last.ID); c.ToolCount != 3 || c.Label != "Science" {
		t.Fatalf("unexpected category %+v", c)
	}
	if err := s.DeleteCategory(ctx, last.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if _, ok := site.CategoryByID(last.ID); ok {
		t.Fatalf("category should be gone")
	}

	if err := s.AddContentItem(ctx, domain.ContentItem{Title: "<script>x</script>Clip", CategoryTags: []string{"Fun"}, SortOrder: 1}); err != nil {
		t.Fatalf("add content: %v", err)
	}
	items := site.ContentItems()
	if len(items) != 1 || items[0].Title != "Clip" {
		t.Fatalf("content items replace the defaults and are sanitized, got %+v", items)
	}
	if err := s.UpdateContentItem(ctx, items[0].ID, domain.ContentItemPatch{SortOrder: domain.Ptr(4)}); err != nil {
		t.Fatalf("update content: %v", err)
	}
	if got := site.ContentItems()[0]; got.SortOrder != 4 || got.CategoryTags[0] != "Fun" {
		t.Fatalf("unexpected content item %+v", got)
	}
	if err := s.DeleteContentItem(ctx, items[0].ID); err != nil {
		t.Fatalf("delete content: %v", err)
	}
	// Empty table: the last fetched items are kept.
	if len(site.ContentItems()) != 1 {
		t.Fatalf("emptied table keeps previous collection")
	}
}

func TestUpdateMissingIDSucceeds(t *testing.T) {
	s, _ := seededStore(t)
	if err := s.UpdateTool(context.Background(), "no-such-tool", domain.ToolPatch{Name: domain.Ptr("Y")}); err != nil {
		t.Fatalf("update of a missing id is not an error: %v", err)
	}
	if err := s.DeleteTool(context.Background(), "no-such-tool"); err != nil {
		t.Fatalf("delete of a missing id is not an error: %v", err)
	}
}

func TestSanitizeText(t *testing.T) {
	cases := map[string]string{
		`<a href="x">Fast</a> editor `: "Fast editor",
		`Tom & Jerry's "pro"`:          `Tom & Jerry's "pro"`,
		"a < b > c":                    "a < b > c",
		"already &amp; escaped":        "already & escaped",
	}
	for in, want := range cases {
		if got := sanitizeText(in); got != want {
			t.Fatalf("sanitizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFreeTextReadsBackAsWritten(t *testing.T) {
	s, _ := seededStore(t)
	ctx := context.Background()
	site := NewSite(s)

	title := `Tom & Jerry's "pro" picks`
	if err := s.AddContentItem(ctx, domain.ContentItem{Title: title, SortOrder: 1}); err != nil {
		t.Fatalf("add content: %v", err)
	}
	items := site.ContentItems()
	if len(items) != 1 || items[0].Title != title {
		t.Fatalf("expected title unchanged, got %+v", items)
	}

	desc := `Fast & cheap "pro" tier`
	if err := s.UpdateTool(ctx, "cursor", domain.ToolPatch{Description: domain.Ptr(desc)}); err != nil {
		t.Fatalf("update tool: %v", err)
	}
	tool, _ := site.ToolByID("cursor")
	if tool.Description != desc {
		t.Fatalf("expected description unchanged, got %q", tool.Description)
	}
	// Saving the read value again must not escape it a second time.
	if err := s.UpdateTool(ctx, "cursor", domain.ToolPatch{Description: domain.Ptr(tool.Description)}); err != nil {
		t.Fatalf("resave tool: %v", err)
	}
	if again, _ := site.ToolByID("cursor"); again.Description != desc {
		t.Fatalf("resave changed description to %q", again.Description)
	}
}
