package catalog

import (
	"reflect"
	"testing"

	"aisumo/pkg/domain"
)

func TestDefaultsAreConsistent(t *testing.T) {
	d := Defaults()
	categories := map[string]bool{}
	for _, c := range d.Categories {
		if err := c.Validate(); err != nil {
			t.Fatalf("category %s: %v", c.ID, err)
		}
		categories[c.ID] = true
	}
	tools := map[string]bool{}
	for _, tool := range d.Tools {
		if err := tool.Validate(); err != nil {
			t.Fatalf("tool %s: %v", tool.ID, err)
		}
		if tool.ID != tool.Slug {
			t.Fatalf("default tool id must equal its slug: %s", tool.ID)
		}
		if tools[tool.ID] {
			t.Fatalf("duplicate tool %s", tool.ID)
		}
		tools[tool.ID] = true
		for _, id := range tool.CategoryIDs {
			if !categories[id] {
				t.Fatalf("tool %s references unknown category %s", tool.ID, id)
			}
		}
	}
	types := map[domain.RankingType]bool{}
	for _, r := range d.Rankings {
		types[r.Type] = true
		for _, id := range r.ToolIDs {
			if !tools[id] {
				t.Fatalf("ranking %s references unknown tool %s", r.ID, id)
			}
		}
	}
	if len(types) != len(d.Rankings) {
		t.Fatalf("ranking types must be unique")
	}
	defaultTabs := 0
	for _, tab := range d.FilterTabs {
		if tab.IsDefault {
			defaultTabs++
		}
	}
	if defaultTabs != 1 {
		t.Fatalf("expected exactly one default filter tab, got %d", defaultTabs)
	}
	for id, sec := range d.SectionConfigs {
		if sec.ID != id || sec.Title == "" {
			t.Fatalf("section %s is malformed: %+v", id, sec)
		}
	}
}

func TestDefaultsReturnsFreshCopies(t *testing.T) {
	a := Defaults()
	a.Tools[0].Name = "changed"
	a.SectionConfigs[SectionRankings] = domain.SectionConfig{}
	b := Defaults()
	if b.Tools[0].Name == "changed" || b.SectionConfigs[SectionRankings].Title == "" {
		t.Fatalf("Defaults must not share state between calls")
	}
	if !reflect.DeepEqual(b, Defaults()) {
		t.Fatalf("Defaults must be deterministic")
	}
}
