package catalog

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"go.uber.org/zap"

	"aisumo/internal/blob"
	"aisumo/pkg/domain"
)

// IconPrefix is the blob key prefix for uploaded tool icons.
const IconPrefix = "tool-icons/"

// Admin is the back-office facade: every read of Site plus the write-through
// mutations, seeding and the local-only setters of Store.
type Admin struct {
	*Site
	store *Store
	blobs blob.Store
}

// NewAdmin returns the admin facade. blobs may be nil, which disables icon
// uploads.
func NewAdmin(s *Store, blobs blob.Store) *Admin {
	return &Admin{Site: NewSite(s), store: s, blobs: blobs}
}

// SeedDatabase writes the built-in catalog to the backend.
func (a *Admin) SeedDatabase(ctx context.Context) error { return a.store.Seed(ctx) }

// ResetToDefaults restores the built-in catalog locally.
func (a *Admin) ResetToDefaults() { a.store.ResetToDefaults() }

// AddTool creates a tool.
func (a *Admin) AddTool(ctx context.Context, t domain.Tool) error { return a.store.AddTool(ctx, t) }

// UpdateTool patches a tool.
func (a *Admin) UpdateTool(ctx context.Context, id string, p domain.ToolPatch) error {
	return a.store.UpdateTool(ctx, id, p)
}

// DeleteTool deletes a tool.
func (a *Admin) DeleteTool(ctx context.Context, id string) error { return a.store.DeleteTool(ctx, id) }

// AddCategory creates a category.
func (a *Admin) AddCategory(ctx context.Context, c domain.Category) error {
	return a.store.AddCategory(ctx, c)
}

// UpdateCategory patches a category.
func (a *Admin) UpdateCategory(ctx context.Context, id string, p domain.CategoryPatch) error {
	return a.store.UpdateCategory(ctx, id, p)
}

// DeleteCategory deletes a category.
func (a *Admin) DeleteCategory(ctx context.Context, id string) error {
	return a.store.DeleteCategory(ctx, id)
}

// UpdateRanking patches a ranking.
func (a *Admin) UpdateRanking(ctx context.Context, id string, p domain.RankingPatch) error {
	return a.store.UpdateRanking(ctx, id, p)
}

// AddContentItem creates a content item.
func (a *Admin) AddContentItem(ctx context.Context, c domain.ContentItem) error {
	return a.store.AddContentItem(ctx, c)
}

// UpdateContentItem patches a content item.
func (a *Admin) UpdateContentItem(ctx context.Context, id string, p domain.ContentItemPatch) error {
	return a.store.UpdateContentItem(ctx, id, p)
}

// DeleteContentItem deletes a content item.
func (a *Admin) DeleteContentItem(ctx context.Context, id string) error {
	return a.store.DeleteContentItem(ctx, id)
}

// SetTools replaces tools locally.
func (a *Admin) SetTools(v []domain.Tool) { a.store.SetTools(v) }

// SetCategories replaces categories locally.
func (a *Admin) SetCategories(v []domain.Category) { a.store.SetCategories(v) }

// SetRankings replaces rankings locally.
func (a *Admin) SetRankings(v []domain.RankingList) { a.store.SetRankings(v) }

// SetContentItems replaces content items locally.
func (a *Admin) SetContentItems(v []domain.ContentItem) { a.store.SetContentItems(v) }

// SetFilterTabs replaces filter tabs locally.
func (a *Admin) SetFilterTabs(v []domain.FilterTab) { a.store.SetFilterTabs(v) }

// SetIssueOptions replaces issue options locally.
func (a *Admin) SetIssueOptions(v []domain.IssueOption) { a.store.SetIssueOptions(v) }

// SetSiteConfig replaces the site config locally.
func (a *Admin) SetSiteConfig(v domain.SiteConfig) { a.store.SetSiteConfig(v) }

// SetSectionConfigs replaces the section configs locally.
func (a *Admin) SetSectionConfigs(v domain.SectionConfigs) { a.store.SetSectionConfigs(v) }

// Stats are the dashboard counters.
type Stats struct {
	Tools        int `json:"tools"`
	Categories   int `json:"categories"`
	Rankings     int `json:"rankings"`
	ContentItems int `json:"contentItems"`
}

// Stats counts the current collections.
func (a *Admin) Stats() Stats {
	var st Stats
	a.store.read(func(d *Data) {
		st = Stats{Tools: len(d.Tools), Categories: len(d.Categories), Rankings: len(d.Rankings), ContentItems: len(d.ContentItems)}
	})
	return st
}

func (a *Admin) ranking(id string) (domain.RankingList, error) {
	r, ok := a.RankingByID(id)
	if !ok {
		return domain.RankingList{}, domain.ErrNotFound{Entity: domain.EntityRanking, ID: id}
	}
	return r, nil
}

// AddToolToRanking appends toolID to ranking id.
func (a *Admin) AddToolToRanking(ctx context.Context, id, toolID string) error {
	r, err := a.ranking(id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(toolID) == "" {
		return &domain.ValidationError{Entity: domain.EntityRanking, Field: "toolIds", Message: "tool id is required"}
	}
	if slices.Contains(r.ToolIDs, toolID) {
		return &domain.ValidationError{Entity: domain.EntityRanking, Field: "toolIds", Message: fmt.Sprintf("tool %s is already ranked", toolID)}
	}
	ids := append(r.ToolIDs, toolID)
	return a.store.UpdateRanking(ctx, id, domain.RankingPatch{ToolIDs: &ids})
}

// RemoveToolFromRanking drops toolID from ranking id. Removing an absent
// tool writes nothing.
func (a *Admin) RemoveToolFromRanking(ctx context.Context, id, toolID string) error {
	r, err := a.ranking(id)
	if err != nil {
		return err
	}
	if !slices.Contains(r.ToolIDs, toolID) {
		return nil
	}
	ids := slices.DeleteFunc(r.ToolIDs, func(v string) bool { return v == toolID })
	return a.store.UpdateRanking(ctx, id, domain.RankingPatch{ToolIDs: &ids})
}

// MoveRankingTool swaps the entry at index with its neighbour at index+delta.
// Moves past either end write nothing.
func (a *Admin) MoveRankingTool(ctx context.Context, id string, index, delta int) error {
	r, err := a.ranking(id)
	if err != nil {
		return err
	}
	target := index + delta
	if delta == 0 || index < 0 || index >= len(r.ToolIDs) || target < 0 || target >= len(r.ToolIDs) {
		return nil
	}
	ids := r.ToolIDs
	ids[index], ids[target] = ids[target], ids[index]
	return a.store.UpdateRanking(ctx, id, domain.RankingPatch{ToolIDs: &ids})
}

// UploadToolIcon stores an image under IconPrefix and returns its public URL
// for use as a tool icon. Non-image content types are rejected before any
// upload.
func (a *Admin) UploadToolIcon(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", &domain.ValidationError{Entity: domain.EntityTool, Field: "icon", Message: "please select an image file"}
	}
	if a.blobs == nil {
		return "", fmt.Errorf("upload icon: no blob store configured")
	}
	key, err := a.iconKey(filename)
	if err != nil {
		return "", fmt.Errorf("upload icon: %w", err)
	}
	info, err := a.blobs.Put(ctx, key, r, blob.PutOptions{ContentType: contentType, Metadata: map[string]string{"filename": path.Base(filename)}})
	if err != nil {
		a.store.logger.Error("icon upload failed", zap.String("key", key), zap.Error(err))
		a.store.metrics.ObserveMutation("upload icon", OutcomeError)
		return "", fmt.Errorf("upload icon: %w", err)
	}
	a.store.metrics.ObserveMutation("upload icon", OutcomeOK)
	if info.URL != "" {
		return info.URL, nil
	}
	return a.blobs.PublicURL(key), nil
}

// iconKey builds tool-icons/<unix-millis>-<random>.<ext>.
func (a *Admin) iconKey(filename string) (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s%d-%s.%s", IconPrefix, a.store.nowFn().UnixMilli(), hex.EncodeToString(buf[:]), strings.ToLower(ext)), nil
}
