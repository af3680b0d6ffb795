package catalog

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"aisumo/internal/rowmap"
	"aisumo/pkg/domain"
)

// Every mutation validates first (no backend call on failure), issues exactly
// one write and refetches only when the write succeeded. Write errors are
// returned wrapped with the operation name.

var textPolicy = bluemonday.StrictPolicy()

// sanitizeText strips markup from free text shown on public pages. The policy
// escapes entities as well, so the result is unescaped again to store plain
// text that reads back exactly as written.
func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func requireID(entity domain.EntityType, id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.ValidationError{Entity: entity, Field: "id", Message: "is required"}
	}
	return nil
}

// write runs one backend write for operation, then refetches on success.
func (s *Store) write(ctx context.Context, operation string, fn func() error) error {
	if err := fn(); err != nil {
		s.logger.Error("catalog write failed", zap.String("operation", operation), zap.Error(err))
		s.metrics.ObserveMutation(operation, OutcomeError)
		return fmt.Errorf("%s: %w", operation, err)
	}
	s.metrics.ObserveMutation(operation, OutcomeOK)
	s.FetchAll(ctx)
	return nil
}

// AddTool inserts a new tool.
func (s *Store) AddTool(ctx context.Context, t domain.Tool) error {
	t.Description = sanitizeText(t.Description)
	if err := t.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "add tool", func() error {
		return s.backend.Insert(ctx, domain.TableTools, rowmap.ToolToRow(t))
	})
}

// UpdateTool writes the fields present in p to tool id.
func (s *Store) UpdateTool(ctx context.Context, id string, p domain.ToolPatch) error {
	if p.Description != nil {
		p.Description = domain.Ptr(sanitizeText(*p.Description))
	}
	if err := requireID(domain.EntityTool, id); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "update tool", func() error {
		return s.backend.Update(ctx, domain.TableTools, id, rowmap.ToolPatchToRow(p))
	})
}

// DeleteTool removes tool id. Rankings keep the id; readers skip it.
func (s *Store) DeleteTool(ctx context.Context, id string) error {
	if err := requireID(domain.EntityTool, id); err != nil {
		return err
	}
	return s.write(ctx, "delete tool", func() error {
		return s.backend.Delete(ctx, domain.TableTools, id)
	})
}

// AddCategory inserts a new category.
func (s *Store) AddCategory(ctx context.Context, c domain.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "add category", func() error {
		return s.backend.Insert(ctx, domain.TableCategories, rowmap.CategoryToRow(c))
	})
}

// UpdateCategory writes the fields present in p to category id.
func (s *Store) UpdateCategory(ctx context.Context, id string, p domain.CategoryPatch) error {
	if err := requireID(domain.EntityCategory, id); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "update category", func() error {
		return s.backend.Update(ctx, domain.TableCategories, id, rowmap.CategoryPatchToRow(p))
	})
}

// DeleteCategory removes category id. Tools keep dangling category ids.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := requireID(domain.EntityCategory, id); err != nil {
		return err
	}
	return s.write(ctx, "delete category", func() error {
		return s.backend.Delete(ctx, domain.TableCategories, id)
	})
}

// UpdateRanking writes the fields present in p to ranking id.
func (s *Store) UpdateRanking(ctx context.Context, id string, p domain.RankingPatch) error {
	if err := requireID(domain.EntityRanking, id); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "update ranking", func() error {
		return s.backend.Update(ctx, domain.TableRankings, id, rowmap.RankingPatchToRow(p))
	})
}

// AddContentItem inserts a new content item.
func (s *Store) AddContentItem(ctx context.Context, c domain.ContentItem) error {
	c.Title = sanitizeText(c.Title)
	if err := c.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "add content item", func() error {
		return s.backend.Insert(ctx, domain.TableContentItems, rowmap.ContentItemToRow(c))
	})
}

// UpdateContentItem writes the fields present in p to content item id.
func (s *Store) UpdateContentItem(ctx context.Context, id string, p domain.ContentItemPatch) error {
	if p.Title != nil {
		p.Title = domain.Ptr(sanitizeText(*p.Title))
	}
	if err := requireID(domain.EntityContentItem, id); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "update content item", func() error {
		return s.backend.Update(ctx, domain.TableContentItems, id, rowmap.ContentItemPatchToRow(p))
	})
}

// DeleteContentItem removes content item id.
func (s *Store) DeleteContentItem(ctx context.Context, id string) error {
	if err := requireID(domain.EntityContentItem, id); err != nil {
		return err
	}
	return s.write(ctx, "delete content item", func() error {
		return s.backend.Delete(ctx, domain.TableContentItems, id)
	})
}
