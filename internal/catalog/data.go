// Package catalog holds the in-memory catalog state, keeps it in sync with
// the remote table store and exposes the public and admin facades over it.
package catalog

import (
	"slices"

	"aisumo/pkg/domain"
)

// Data is one complete copy of every catalog collection.
type Data struct {
	Tools          []domain.Tool         `json:"tools"`
	Categories     []domain.Category     `json:"categories"`
	Rankings       []domain.RankingList  `json:"rankings"`
	ContentItems   []domain.ContentItem  `json:"contentItems"`
	FilterTabs     []domain.FilterTab    `json:"filterTabs"`
	IssueOptions   []domain.IssueOption  `json:"issueOptions"`
	SiteConfig     domain.SiteConfig     `json:"siteConfig"`
	SectionConfigs domain.SectionConfigs `json:"sectionConfigs"`
}

// Snapshot is Data plus the store flags at the moment it was taken.
type Snapshot struct {
	Data
	IsLoading bool `json:"isLoading"`
	IsSeeded  bool `json:"isDatabaseSeeded"`
}

// Clone returns a deep copy; callers may mutate it freely.
func (d Data) Clone() Data {
	out := Data{
		Tools:        make([]domain.Tool, len(d.Tools)),
		Categories:   slices.Clone(d.Categories),
		Rankings:     make([]domain.RankingList, len(d.Rankings)),
		ContentItems: make([]domain.ContentItem, len(d.ContentItems)),
		FilterTabs:   slices.Clone(d.FilterTabs),
		IssueOptions: slices.Clone(d.IssueOptions),
		SiteConfig:   cloneSiteConfig(d.SiteConfig),
	}
	for i, t := range d.Tools {
		out.Tools[i] = cloneTool(t)
	}
	for i, r := range d.Rankings {
		r.ToolIDs = slices.Clone(r.ToolIDs)
		out.Rankings[i] = r
	}
	for i, c := range d.ContentItems {
		c.CategoryTags = slices.Clone(c.CategoryTags)
		out.ContentItems[i] = c
	}
	if d.SectionConfigs != nil {
		out.SectionConfigs = make(domain.SectionConfigs, len(d.SectionConfigs))
		for k, v := range d.SectionConfigs {
			out.SectionConfigs[k] = v
		}
	}
	return out
}

func cloneTool(t domain.Tool) domain.Tool {
	t.CategoryIDs = slices.Clone(t.CategoryIDs)
	return t
}

func cloneSiteConfig(c domain.SiteConfig) domain.SiteConfig {
	c.Languages = slices.Clone(c.Languages)
	c.SocialLinks = slices.Clone(c.SocialLinks)
	return c
}
