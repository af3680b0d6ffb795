package rowmap

import "aisumo/pkg/domain"

// Full rows omit id and timestamps: the backend assigns them on insert and
// upsert keeps the existing ones.

// ToolToRow maps a tool to an insert row.
func ToolToRow(t domain.Tool) domain.Row {
	return domain.Row{
		"slug":                        t.Slug,
		"name":                        t.Name,
		"description":                 t.Description,
		"logo":                        t.Logo,
		"domain":                      t.Domain,
		"external_url":                t.ExternalURL,
		"icon":                        t.Icon,
		"icon_bg":                     t.IconBg,
		"video_url":                   t.VideoURL,
		"is_paid":                     t.IsPaid,
		"is_hot_deal":                 t.IsHotDeal,
		"is_featured":                 t.IsFeatured,
		"has_recurring_free_credits":  t.HasRecurringFreeCredits,
		"has_student_benefit":         t.HasStudentBenefit,
		"has_welcome_credits":         t.HasWelcomeCredits,
		"has_instant_welcome_credits": t.HasInstantWelcomeCredits,
		"has_pro_trial_no_card":       t.HasProTrialNoCard,
		"has_pro_trial_with_card":     t.HasProTrialWithCard,
		"category_ids":                nonNil(t.CategoryIDs),
	}
}

// ToolPatchToRow maps only the fields present in p.
func ToolPatchToRow(p domain.ToolPatch) domain.Row {
	row := domain.Row{}
	setString(row, "slug", p.Slug)
	setString(row, "name", p.Name)
	setString(row, "description", p.Description)
	setString(row, "logo", p.Logo)
	setString(row, "domain", p.Domain)
	setString(row, "external_url", p.ExternalURL)
	setString(row, "icon", p.Icon)
	setString(row, "icon_bg", p.IconBg)
	setString(row, "video_url", p.VideoURL)
	setBool(row, "is_paid", p.IsPaid)
	setBool(row, "is_hot_deal", p.IsHotDeal)
	setBool(row, "is_featured", p.IsFeatured)
	setBool(row, "has_recurring_free_credits", p.HasRecurringFreeCredits)
	setBool(row, "has_student_benefit", p.HasStudentBenefit)
	setBool(row, "has_welcome_credits", p.HasWelcomeCredits)
	setBool(row, "has_instant_welcome_credits", p.HasInstantWelcomeCredits)
	setBool(row, "has_pro_trial_no_card", p.HasProTrialNoCard)
	setBool(row, "has_pro_trial_with_card", p.HasProTrialWithCard)
	setStrings(row, "category_ids", p.CategoryIDs)
	return row
}

// CategoryToRow maps a category to an insert row.
func CategoryToRow(c domain.Category) domain.Row {
	return domain.Row{
		"slug":       c.Slug,
		"label":      c.Label,
		"icon":       c.Icon,
		"tool_count": c.ToolCount,
		"is_active":  c.IsActive,
		"sort_order": c.SortOrder,
	}
}

// CategoryPatchToRow maps only the fields present in p.
func CategoryPatchToRow(p domain.CategoryPatch) domain.Row {
	row := domain.Row{}
	setString(row, "slug", p.Slug)
	setString(row, "label", p.Label)
	setString(row, "icon", p.Icon)
	setInt(row, "tool_count", p.ToolCount)
	setBool(row, "is_active", p.IsActive)
	setInt(row, "sort_order", p.SortOrder)
	return row
}

// RankingToRow maps a ranking to an insert row.
func RankingToRow(r domain.RankingList) domain.Row {
	return domain.Row{
		"type":     string(r.Type),
		"title":    r.Title,
		"tool_ids": nonNil(r.ToolIDs),
	}
}

// RankingPatchToRow maps only the fields present in p.
func RankingPatchToRow(p domain.RankingPatch) domain.Row {
	row := domain.Row{}
	setString(row, "title", p.Title)
	setStrings(row, "tool_ids", p.ToolIDs)
	return row
}

// ContentItemToRow maps a content item to an insert row.
func ContentItemToRow(c domain.ContentItem) domain.Row {
	return domain.Row{
		"title":         c.Title,
		"image":         c.Image,
		"video_url":     c.VideoURL,
		"category_tags": nonNil(c.CategoryTags),
		"sort_order":    c.SortOrder,
	}
}

// ContentItemPatchToRow maps only the fields present in p.
func ContentItemPatchToRow(p domain.ContentItemPatch) domain.Row {
	row := domain.Row{}
	setString(row, "title", p.Title)
	setString(row, "image", p.Image)
	setString(row, "video_url", p.VideoURL)
	setStrings(row, "category_tags", p.CategoryTags)
	setInt(row, "sort_order", p.SortOrder)
	return row
}

// FilterTabToRow maps a filter tab to an insert row.
func FilterTabToRow(t domain.FilterTab) domain.Row {
	return domain.Row{"label": t.Label, "is_default": t.IsDefault, "sort_order": t.SortOrder}
}

// IssueOptionToRow maps an issue option to an insert row.
func IssueOptionToRow(o domain.IssueOption) domain.Row {
	return domain.Row{"label": o.Label, "is_active": o.IsActive}
}

// SiteConfigToRow maps the site config to an insert row, flattening the
// logo wordmark.
func SiteConfigToRow(c domain.SiteConfig) domain.Row {
	languages := c.Languages
	if languages == nil {
		languages = []domain.Language{}
	}
	links := c.SocialLinks
	if links == nil {
		links = []domain.SocialLink{}
	}
	return domain.Row{
		"site_name":           c.SiteName,
		"site_tagline":        c.SiteTagline,
		"logo_text_primary":   c.LogoText.Primary,
		"logo_text_secondary": c.LogoText.Secondary,
		"description":         c.Description,
		"copyright_year":      c.CopyrightYear,
		"languages":           languages,
		"social_links":        links,
	}
}

// SectionConfigToRow maps a section config. The id is the section key and is
// always written.
func SectionConfigToRow(s domain.SectionConfig) domain.Row {
	return domain.Row{
		"id":            s.ID,
		"title":         s.Title,
		"subtitle":      s.Subtitle,
		"view_all_link": s.ViewAllLink,
		"view_all_text": s.ViewAllText,
	}
}

func setString(row domain.Row, col string, v *string) {
	if v != nil {
		row[col] = *v
	}
}

func setBool(row domain.Row, col string, v *bool) {
	if v != nil {
		row[col] = *v
	}
}

func setInt(row domain.Row, col string, v *int) {
	if v != nil {
		row[col] = *v
	}
}

func setStrings(row domain.Row, col string, v *[]string) {
	if v != nil {
		row[col] = nonNil(*v)
	}
}
