package domain

// Patch types describe partial updates. A nil field is left untouched by the
// write; a non-nil field (including a pointer to the zero value) is written.

// ToolPatch is a partial Tool update.
type ToolPatch struct {
	Slug        *string `json:"slug,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Domain      *string `json:"domain,omitempty"`
	ExternalURL *string `json:"externalUrl,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	IconBg      *string `json:"iconBg,omitempty"`
	VideoURL    *string `json:"videoUrl,omitempty"`

	IsPaid                   *bool `json:"isPaid,omitempty"`
	IsHotDeal                *bool `json:"isHotDeal,omitempty"`
	IsFeatured               *bool `json:"isFeatured,omitempty"`
	HasRecurringFreeCredits  *bool `json:"hasRecurringFreeCredits,omitempty"`
	HasStudentBenefit        *bool `json:"hasStudentBenefit,omitempty"`
	HasWelcomeCredits        *bool `json:"hasWelcomeCredits,omitempty"`
	HasInstantWelcomeCredits *bool `json:"hasInstantWelcomeCredits,omitempty"`
	HasProTrialNoCard        *bool `json:"hasProTrialNoCard,omitempty"`
	HasProTrialWithCard      *bool `json:"hasProTrialWithCard,omitempty"`

	CategoryIDs *[]string `json:"categoryIds,omitempty"`
}

// CategoryPatch is a partial Category update.
type CategoryPatch struct {
	Slug      *string `json:"slug,omitempty"`
	Label     *string `json:"label,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	ToolCount *int    `json:"toolCount,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// RankingPatch is a partial RankingList update. The ranking type is the
// natural key and cannot be changed.
type RankingPatch struct {
	Title   *string   `json:"title,omitempty"`
	ToolIDs *[]string `json:"toolIds,omitempty"`
}

// ContentItemPatch is a partial ContentItem update.
type ContentItemPatch struct {
	Title        *string   `json:"title,omitempty"`
	Image        *string   `json:"image,omitempty"`
	VideoURL     *string   `json:"videoUrl,omitempty"`
	CategoryTags *[]string `json:"categoryTags,omitempty"`
	SortOrder    *int      `json:"sortOrder,omitempty"`
}

// Ptr returns a pointer to v; convenient for building patches.
func Ptr[T any](v T) *T { return &v }
