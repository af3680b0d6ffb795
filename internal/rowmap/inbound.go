package rowmap

import "aisumo/pkg/domain"

// ToolFromRow converts a decoded tools row.
func ToolFromRow(r ToolRow) domain.Tool {
	return domain.Tool{
		ID:                       r.ID,
		Slug:                     r.Slug,
		Name:                     r.Name,
		Description:              r.Description,
		Logo:                     r.Logo,
		Domain:                   r.Domain,
		ExternalURL:              r.ExternalURL,
		Icon:                     r.Icon,
		IconBg:                   r.IconBg,
		VideoURL:                 r.VideoURL,
		IsPaid:                   r.IsPaid,
		IsHotDeal:                firstSet(r.IsHotDeal, r.LegacyIsActive),
		IsFeatured:               r.IsFeatured,
		HasRecurringFreeCredits:  r.HasRecurringFreeCredits,
		HasStudentBenefit:        r.HasStudentBenefit,
		HasWelcomeCredits:        firstSet(r.HasWelcomeCredits, r.LegacyHasNewAccountCredits),
		HasInstantWelcomeCredits: r.HasInstantWelcomeCredits,
		HasProTrialNoCard:        r.HasProTrialNoCard,
		HasProTrialWithCard:      r.HasProTrialWithCard,
		CategoryIDs:              nonNil(r.CategoryIDs),
		CreatedAt:                timeOrZero(r.CreatedAt),
		UpdatedAt:                timeOrZero(r.UpdatedAt),
	}
}

// CategoryFromRow converts a decoded categories row.
func CategoryFromRow(r CategoryRow) domain.Category {
	return domain.Category{
		ID:        r.ID,
		Slug:      r.Slug,
		Label:     r.Label,
		Icon:      r.Icon,
		ToolCount: r.ToolCount,
		IsActive:  r.IsActive,
		SortOrder: r.SortOrder,
	}
}

// RankingFromRow converts a decoded rankings row.
func RankingFromRow(r RankingRow) domain.RankingList {
	return domain.RankingList{
		ID:      r.ID,
		Type:    domain.RankingType(r.Type),
		Title:   r.Title,
		ToolIDs: nonNil(r.ToolIDs),
	}
}

// ContentItemFromRow converts a decoded content_items row.
func ContentItemFromRow(r ContentItemRow) domain.ContentItem {
	return domain.ContentItem{
		ID:           r.ID,
		Title:        r.Title,
		Image:        r.Image,
		VideoURL:     r.VideoURL,
		CategoryTags: nonNil(r.CategoryTags),
		SortOrder:    r.SortOrder,
	}
}

// FilterTabFromRow converts a decoded filter_tabs row.
func FilterTabFromRow(r FilterTabRow) domain.FilterTab {
	return domain.FilterTab{ID: r.ID, Label: r.Label, IsDefault: r.IsDefault, SortOrder: r.SortOrder}
}

// IssueOptionFromRow converts a decoded issue_options row.
func IssueOptionFromRow(r IssueOptionRow) domain.IssueOption {
	return domain.IssueOption{ID: r.ID, Label: r.Label, IsActive: r.IsActive}
}

// SiteConfigFromRow converts a decoded site_config row.
func SiteConfigFromRow(r SiteConfigRow) domain.SiteConfig {
	cfg := domain.SiteConfig{
		SiteName:      r.SiteName,
		SiteTagline:   r.SiteTagline,
		LogoText:      domain.LogoText{Primary: r.LogoTextPrimary, Secondary: r.LogoTextSecondary},
		Description:   r.Description,
		CopyrightYear: r.CopyrightYear,
		Languages:     r.Languages,
		SocialLinks:   r.SocialLinks,
	}
	if cfg.Languages == nil {
		cfg.Languages = []domain.Language{}
	}
	if cfg.SocialLinks == nil {
		cfg.SocialLinks = []domain.SocialLink{}
	}
	return cfg
}

// SectionConfigFromRow converts a decoded section_configs row.
func SectionConfigFromRow(r SectionConfigRow) domain.SectionConfig {
	return domain.SectionConfig{
		ID:          r.ID,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		ViewAllLink: r.ViewAllLink,
		ViewAllText: r.ViewAllText,
	}
}

// DecodeTool decodes one tools row.
func DecodeTool(row domain.Row) (domain.Tool, error) {
	r, err := decode[ToolRow](domain.TableTools, row)
	if err != nil {
		return domain.Tool{}, err
	}
	return ToolFromRow(r), nil
}

// DecodeTools decodes a tools result set; any malformed row fails the set.
func DecodeTools(rows []domain.Row) ([]domain.Tool, error) {
	return decodeAll(domain.TableTools, rows, ToolFromRow)
}

// DecodeCategory decodes one categories row.
func DecodeCategory(row domain.Row) (domain.Category, error) {
	r, err := decode[CategoryRow](domain.TableCategories, row)
	if err != nil {
		return domain.Category{}, err
	}
	return CategoryFromRow(r), nil
}

// DecodeCategories decodes a categories result set.
func DecodeCategories(rows []domain.Row) ([]domain.Category, error) {
	return decodeAll(domain.TableCategories, rows, CategoryFromRow)
}

// DecodeRanking decodes one rankings row.
func DecodeRanking(row domain.Row) (domain.RankingList, error) {
	r, err := decode[RankingRow](domain.TableRankings, row)
	if err != nil {
		return domain.RankingList{}, err
	}
	return RankingFromRow(r), nil
}

// DecodeRankings decodes a rankings result set.
func DecodeRankings(rows []domain.Row) ([]domain.RankingList, error) {
	return decodeAll(domain.TableRankings, rows, RankingFromRow)
}

// DecodeContentItem decodes one content_items row.
func DecodeContentItem(row domain.Row) (domain.ContentItem, error) {
	r, err := decode[ContentItemRow](domain.TableContentItems, row)
	if err != nil {
		return domain.ContentItem{}, err
	}
	return ContentItemFromRow(r), nil
}

// DecodeContentItems decodes a content_items result set.
func DecodeContentItems(rows []domain.Row) ([]domain.ContentItem, error) {
	return decodeAll(domain.TableContentItems, rows, ContentItemFromRow)
}

// DecodeFilterTabs decodes a filter_tabs result set.
func DecodeFilterTabs(rows []domain.Row) ([]domain.FilterTab, error) {
	return decodeAll(domain.TableFilterTabs, rows, FilterTabFromRow)
}

// DecodeIssueOptions decodes an issue_options result set.
func DecodeIssueOptions(rows []domain.Row) ([]domain.IssueOption, error) {
	return decodeAll(domain.TableIssueOptions, rows, IssueOptionFromRow)
}

// DecodeSiteConfig decodes one site_config row.
func DecodeSiteConfig(row domain.Row) (domain.SiteConfig, error) {
	r, err := decode[SiteConfigRow](domain.TableSiteConfig, row)
	if err != nil {
		return domain.SiteConfig{}, err
	}
	return SiteConfigFromRow(r), nil
}

// DecodeSectionConfigs decodes a section_configs result set keyed by id.
// Later rows win on duplicate ids.
func DecodeSectionConfigs(rows []domain.Row) (domain.SectionConfigs, error) {
	list, err := decodeAll(domain.TableSectionConfigs, rows, SectionConfigFromRow)
	if err != nil {
		return nil, err
	}
	out := make(domain.SectionConfigs, len(list))
	for _, sc := range list {
		out[sc.ID] = sc
	}
	return out, nil
}
