// Package rowmap translates between flat snake_case persistence rows and the
// catalog entities. Inbound rows are decoded into an explicit struct per
// table first, so a row whose values have the wrong shape fails immediately
// instead of leaking loosely typed data inward.
package rowmap

import (
	"encoding/json"
	"fmt"
	"time"

	"aisumo/pkg/domain"
)

// ToolRow is the tools table shape.
type ToolRow struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Domain      string `json:"domain"`
	ExternalURL string `json:"external_url"`
	Icon        string `json:"icon"`
	IconBg      string `json:"icon_bg"`
	VideoURL    string `json:"video_url"`

	IsPaid                   bool  `json:"is_paid"`
	IsHotDeal                *bool `json:"is_hot_deal"`
	IsFeatured               bool  `json:"is_featured"`
	HasRecurringFreeCredits  bool  `json:"has_recurring_free_credits"`
	HasStudentBenefit        bool  `json:"has_student_benefit"`
	HasWelcomeCredits        *bool `json:"has_welcome_credits"`
	HasInstantWelcomeCredits bool  `json:"has_instant_welcome_credits"`
	HasProTrialNoCard        bool  `json:"has_pro_trial_no_card"`
	HasProTrialWithCard      bool  `json:"has_pro_trial_with_card"`

	// Older rows carried these names for the hot-deal and welcome-credit flags.
	LegacyIsActive             *bool `json:"is_active"`
	LegacyHasNewAccountCredits *bool `json:"has_new_account_credits"`

	CategoryIDs []string   `json:"category_ids"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// CategoryRow is the categories table shape.
type CategoryRow struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	ToolCount int    `json:"tool_count"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// RankingRow is the rankings table shape.
type RankingRow struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	ToolIDs []string `json:"tool_ids"`
}

// ContentItemRow is the content_items table shape.
type ContentItemRow struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Image        string   `json:"image"`
	VideoURL     string   `json:"video_url"`
	CategoryTags []string `json:"category_tags"`
	SortOrder    int      `json:"sort_order"`
}

// FilterTabRow is the filter_tabs table shape.
type FilterTabRow struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	IsDefault bool   `json:"is_default"`
	SortOrder int    `json:"sort_order"`
}

// IssueOptionRow is the issue_options table shape.
type IssueOptionRow struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	IsActive bool   `json:"is_active"`
}

// SiteConfigRow is the site_config table shape. The logo wordmark is stored
// as two flat columns.
type SiteConfigRow struct {
	ID                string              `json:"id"`
	SiteName          string              `json:"site_name"`
	SiteTagline       string              `json:"site_tagline"`
	LogoTextPrimary   string              `json:"logo_text_primary"`
	LogoTextSecondary string              `json:"logo_text_secondary"`
	Description       string              `json:"description"`
	CopyrightYear     string              `json:"copyright_year"`
	Languages         []domain.Language   `json:"languages"`
	SocialLinks       []domain.SocialLink `json:"social_links"`
}

// SectionConfigRow is the section_configs table shape.
type SectionConfigRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	ViewAllLink string `json:"view_all_link"`
	ViewAllText string `json:"view_all_text"`
}

// decode moves a generic row into its typed shape through its JSON form.
func decode[T any](table string, row domain.Row) (T, error) {
	var out T
	raw, err := json.Marshal(row)
	if err != nil {
		return out, fmt.Errorf("encode %s row: %w", table, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s row: %w", table, err)
	}
	return out, nil
}

func decodeAll[T, E any](table string, rows []domain.Row, conv func(T) E) ([]E, error) {
	out := make([]E, 0, len(rows))
	for i, row := range rows {
		typed, err := decode[T](table, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, conv(typed))
	}
	return out, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func firstSet(values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return false
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
