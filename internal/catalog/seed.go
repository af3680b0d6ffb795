package catalog

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"aisumo/internal/rowmap"
	"aisumo/pkg/domain"
)

// Seed writes the built-in catalog to the backend in dependency order and
// then refetches. Categories, section configs, tools and rankings upsert on
// their natural key and can be re-run; filter tabs, issue options, the site
// config and content items are plain inserts and duplicate on a second run.
// The first failing step aborts the seed and is returned.
func (s *Store) Seed(ctx context.Context) error {
	if err := s.seed(ctx); err != nil {
		s.logger.Error("catalog seed failed", zap.Error(err))
		s.metrics.ObserveMutation("seed", OutcomeError)
		return err
	}
	s.metrics.ObserveMutation("seed", OutcomeOK)
	s.FetchAll(ctx)
	return nil
}

func (s *Store) seed(ctx context.Context) error {
	defaults := Defaults()

	if err := s.backend.Upsert(ctx, domain.TableCategories, "slug", mapRows(defaults.Categories, rowmap.CategoryToRow)...); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := s.backend.Insert(ctx, domain.TableFilterTabs, mapRows(defaults.FilterTabs, rowmap.FilterTabToRow)...); err != nil {
		return fmt.Errorf("seed filter tabs: %w", err)
	}
	if err := s.backend.Insert(ctx, domain.TableIssueOptions, mapRows(defaults.IssueOptions, rowmap.IssueOptionToRow)...); err != nil {
		return fmt.Errorf("seed issue options: %w", err)
	}
	if err := s.backend.Insert(ctx, domain.TableSiteConfig, rowmap.SiteConfigToRow(defaults.SiteConfig)); err != nil {
		return fmt.Errorf("seed site config: %w", err)
	}
	sections := make([]domain.Row, 0, len(defaults.SectionConfigs))
	for _, key := range sectionOrder(defaults.SectionConfigs) {
		sections = append(sections, rowmap.SectionConfigToRow(defaults.SectionConfigs[key]))
	}
	if err := s.backend.Upsert(ctx, domain.TableSectionConfigs, "id", sections...); err != nil {
		return fmt.Errorf("seed section configs: %w", err)
	}

	// Default tools reference categories by their default ids; the backend
	// assigned new ids keyed by slug.
	categoryIDs, err := s.slugIndex(ctx, domain.TableCategories)
	if err != nil {
		return fmt.Errorf("seed tools: %w", err)
	}
	defaultCategorySlugs := make(map[string]string, len(defaults.Categories))
	for _, c := range defaults.Categories {
		defaultCategorySlugs[c.ID] = c.Slug
	}
	toolRows := make([]domain.Row, 0, len(defaults.Tools))
	for _, t := range defaults.Tools {
		t.CategoryIDs = remap(t.CategoryIDs, func(id string) (string, bool) {
			return lookup(categoryIDs, defaultCategorySlugs[id])
		})
		toolRows = append(toolRows, rowmap.ToolToRow(t))
	}
	if err := s.backend.Upsert(ctx, domain.TableTools, "slug", toolRows...); err != nil {
		return fmt.Errorf("seed tools: %w", err)
	}

	// Default rankings list tool slugs.
	toolIDs, err := s.slugIndex(ctx, domain.TableTools)
	if err != nil {
		return fmt.Errorf("seed rankings: %w", err)
	}
	rankingRows := make([]domain.Row, 0, len(defaults.Rankings))
	for _, r := range defaults.Rankings {
		r.ToolIDs = remap(r.ToolIDs, func(slug string) (string, bool) { return lookup(toolIDs, slug) })
		rankingRows = append(rankingRows, rowmap.RankingToRow(r))
	}
	if err := s.backend.Upsert(ctx, domain.TableRankings, "type", rankingRows...); err != nil {
		return fmt.Errorf("seed rankings: %w", err)
	}

	if err := s.backend.Insert(ctx, domain.TableContentItems, mapRows(defaults.ContentItems, rowmap.ContentItemToRow)...); err != nil {
		return fmt.Errorf("seed content items: %w", err)
	}
	return nil
}

// slugIndex maps slug to id for every row of table.
func (s *Store) slugIndex(ctx context.Context, table string) (map[string]string, error) {
	rows, err := s.backend.Select(ctx, table, domain.Query{Columns: []string{"id", "slug"}})
	if err != nil {
		return nil, fmt.Errorf("read %s ids: %w", table, err)
	}
	index := make(map[string]string, len(rows))
	for _, row := range rows {
		id, _ := row["id"].(string)
		slug, _ := row["slug"].(string)
		if id != "" && slug != "" {
			index[slug] = id
		}
	}
	return index, nil
}

func lookup(m map[string]string, key string) (string, bool) {
	v, ok := m[key]
	return v, ok && v != ""
}

// remap translates ids through fn, dropping the ones it cannot resolve.
func remap(ids []string, fn func(string) (string, bool)) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if mapped, ok := fn(id); ok {
			out = append(out, mapped)
		}
	}
	return out
}

func mapRows[T any](items []T, conv func(T) domain.Row) []domain.Row {
	rows := make([]domain.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, conv(it))
	}
	return rows
}

// sectionOrder lists the known section keys first, then any others sorted.
func sectionOrder(configs domain.SectionConfigs) []string {
	known := []string{SectionRankings, SectionCategories, SectionMoneyMaking, SectionAIForEveryone, SectionDevEssentials}
	out := make([]string, 0, len(configs))
	seen := make(map[string]bool, len(known))
	for _, k := range known {
		if _, ok := configs[k]; ok {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range configs {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}
