package catalog

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"aisumo/internal/blob"
	"aisumo/pkg/domain"
)

func TestAdminStats(t *testing.T) {
	a := NewAdmin(New(newFaultStore()), nil)
	d := Defaults()
	st := a.Stats()
	if st.Tools != len(d.Tools) || st.Categories != len(d.Categories) || st.Rankings != len(d.Rankings) || st.ContentItems != len(d.ContentItems) {
		t.Fatalf("unexpected stats %+v", st)
	}
	a.SetTools(nil)
	if a.Stats().Tools != 0 {
		t.Fatalf("stats must follow local state")
	}
}

func TestAdminRankingEdits(t *testing.T) {
	s, backend := seededStore(t)
	a := NewAdmin(s, nil)
	ctx := context.Background()

	if err := a.AddToolToRanking(ctx, "rank-coding", "chatgpt"); err != nil {
		t.Fatalf("add: %v", err)
	}
	r, _ := a.RankingByID("rank-coding")
	if r.ToolIDs[len(r.ToolIDs)-1] != "chatgpt" {
		t.Fatalf("expected chatgpt appended, got %v", r.ToolIDs)
	}
	if err := a.AddToolToRanking(ctx, "rank-coding", "chatgpt"); !domain.IsValidationError(err) {
		t.Fatalf("duplicate must be rejected, got %v", err)
	}
	if err := a.AddToolToRanking(ctx, "rank-coding", ""); !domain.IsValidationError(err) {
		t.Fatalf("empty tool id must be rejected, got %v", err)
	}
	if err := a.AddToolToRanking(ctx, "rank-none", "chatgpt"); !domain.IsNotFound(err) {
		t.Fatalf("unknown ranking must be not found, got %v", err)
	}

	if err := a.MoveRankingTool(ctx, "rank-coding", 1, -1); err != nil {
		t.Fatalf("move: %v", err)
	}
	r, _ = a.RankingByID("rank-coding")
	if r.ToolIDs[0] != "cursor" || r.ToolIDs[1] != "github-copilot" {
		t.Fatalf("unexpected order after move %v", r.ToolIDs)
	}

	writes := backend.count("update:")
	if err := a.MoveRankingTool(ctx, "rank-coding", 0, -1); err != nil {
		t.Fatalf("move past start: %v", err)
	}
	if err := a.MoveRankingTool(ctx, "rank-coding", len(r.ToolIDs)-1, 1); err != nil {
		t.Fatalf("move past end: %v", err)
	}
	if err := a.RemoveToolFromRanking(ctx, "rank-coding", "not-ranked"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if backend.count("update:") != writes {
		t.Fatalf("no-op edits must not write")
	}

	if err := a.RemoveToolFromRanking(ctx, "rank-coding", "cursor"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	r, _ = a.RankingByID("rank-coding")
	if slices.Contains(r.ToolIDs, "cursor") || len(r.ToolIDs) != 5 {
		t.Fatalf("unexpected ids after remove %v", r.ToolIDs)
	}
}

func TestAdminSeedAndReset(t *testing.T) {
	backend := newFaultStore()
	a := NewAdmin(New(backend), nil)
	ctx := context.Background()
	if a.IsDatabaseSeeded() {
		t.Fatalf("fresh store is not seeded")
	}
	if err := a.SeedDatabase(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !a.IsDatabaseSeeded() {
		t.Fatalf("expected seeded")
	}
	if err := a.AddTool(ctx, domain.Tool{Name: "Extra", Slug: "extra"}); err != nil {
		t.Fatalf("add tool: %v", err)
	}
	if _, ok := a.ToolBySlug("extra"); !ok {
		t.Fatalf("added tool missing after refetch")
	}
	calls := backend.callCount()
	a.ResetToDefaults()
	if _, ok := a.ToolBySlug("extra"); ok {
		t.Fatalf("reset must drop fetched tools")
	}
	if backend.callCount() != calls {
		t.Fatalf("reset must stay local")
	}
	a.FetchAll(ctx)
	if _, ok := a.ToolBySlug("extra"); !ok {
		t.Fatalf("refetch must restore backend tools")
	}
}

func TestUploadToolIcon(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	blobs := blob.NewMemory("https://cdn.example.com/blobs")
	a := NewAdmin(New(newFaultStore(), WithClock(func() time.Time { return now })), blobs)
	ctx := context.Background()

	url, err := a.UploadToolIcon(ctx, "Logo.PNG", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	prefix := "https://cdn.example.com/blobs/tool-icons/1700000000123-"
	if !strings.HasPrefix(url, prefix) || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %s", url)
	}
	if suffix := strings.TrimSuffix(strings.TrimPrefix(url, prefix), ".png"); len(suffix) != 16 {
		t.Fatalf("expected 8 random bytes hex encoded, got %q", suffix)
	}
	key := strings.TrimPrefix(url, "https://cdn.example.com/blobs/")
	info, rc, err := blobs.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "png-bytes" || info.ContentType != "image/png" || info.Metadata["filename"] != "Logo.PNG" {
		t.Fatalf("unexpected stored icon %+v %q", info, body)
	}

	second, err := a.UploadToolIcon(ctx, "noext", "image/svg+xml", strings.NewReader("<svg/>"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second == url || !strings.HasSuffix(second, ".bin") {
		t.Fatalf("expected distinct key with fallback extension, got %s", second)
	}
}

func TestUploadToolIconRejects(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory("")
	a := NewAdmin(New(newFaultStore()), blobs)
	if _, err := a.UploadToolIcon(ctx, "doc.pdf", "application/pdf", strings.NewReader("x")); !domain.IsValidationError(err) {
		t.Fatalf("non-image must be rejected, got %v", err)
	}
	list, err := blobs.List(ctx, IconPrefix)
	if err != nil || len(list) != 0 {
		t.Fatalf("rejected upload must not store anything: %v %v", list, err)
	}
	noBlobs := NewAdmin(New(newFaultStore()), nil)
	if _, err := noBlobs.UploadToolIcon(ctx, "a.png", "image/png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error without blob store")
	}
}
