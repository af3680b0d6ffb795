// Package domain defines the catalog entities shared by the row mapper, the
// default catalog, the data store and both facades, together with the
// persistence contract implemented by the storage backends.
package domain

import "time"

// EntityType identifies the kind of catalog record.
type EntityType string

// Supported entity identifiers used in errors, metrics and log fields.
const (
	EntityTool          EntityType = "tool"
	EntityCategory      EntityType = "category"
	EntityRanking       EntityType = "ranking"
	EntityContentItem   EntityType = "content_item"
	EntityFilterTab     EntityType = "filter_tab"
	EntityIssueOption   EntityType = "issue_option"
	EntitySiteConfig    EntityType = "site_config"
	EntitySectionConfig EntityType = "section_config"
)

// RankingType is the closed set of ranking boards.
type RankingType string

// Ranking boards shown on the home page.
const (
	RankingOverall      RankingType = "overall"
	RankingImage        RankingType = "image"
	RankingVideo        RankingType = "video"
	RankingCoding       RankingType = "coding"
	RankingWriting      RankingType = "writing"
	RankingProductivity RankingType = "productivity"
)

// RankingTypes lists every valid ranking type in display order.
var RankingTypes = []RankingType{
	RankingOverall,
	RankingImage,
	RankingVideo,
	RankingCoding,
	RankingWriting,
	RankingProductivity,
}

// Valid reports whether t is one of the known ranking types.
func (t RankingType) Valid() bool {
	for _, known := range RankingTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Tool is a single AI tool listed in the directory.
//
// CategoryIDs are soft references: ids that no longer resolve to a Category
// are tolerated and simply ignored by category lookups.
type Tool struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Domain      string `json:"domain,omitempty"`
	ExternalURL string `json:"externalUrl,omitempty"`
	// Icon is either an emoji or an image URL (uploaded icons).
	Icon     string `json:"icon,omitempty"`
	IconBg   string `json:"iconBg,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`

	IsPaid                   bool `json:"isPaid"`
	IsHotDeal                bool `json:"isHotDeal"`
	IsFeatured               bool `json:"isFeatured"`
	HasRecurringFreeCredits  bool `json:"hasRecurringFreeCredits"`
	HasStudentBenefit        bool `json:"hasStudentBenefit"`
	HasWelcomeCredits        bool `json:"hasWelcomeCredits"`
	HasInstantWelcomeCredits bool `json:"hasInstantWelcomeCredits"`
	HasProTrialNoCard        bool `json:"hasProTrialNoCard"`
	HasProTrialWithCard      bool `json:"hasProTrialWithCard"`

	CategoryIDs []string  `json:"categoryIds"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// RankedTool is a Tool resolved from a ranking, with its dense 1-based rank.
type RankedTool struct {
	Tool
	Rank int `json:"rank"`
}

// Category groups tools for browsing. ToolCount is a display counter and is
// not derived from tool membership.
type Category struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	ToolCount int    `json:"toolCount"`
	IsActive  bool   `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
}

// RankingList is an ordered board of tool ids; index 0 is rank 1.
type RankingList struct {
	ID      string      `json:"id"`
	Type    RankingType `json:"type"`
	Title   string      `json:"title"`
	ToolIDs []string    `json:"toolIds"`
}

// ContentItem is a promotional video card.
type ContentItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Image        string   `json:"image"`
	VideoURL     string   `json:"videoUrl"`
	CategoryTags []string `json:"categoryTags"`
	SortOrder    int      `json:"sortOrder"`
}

// FilterTab is a tab of the "AI for everyone" section.
type FilterTab struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	IsDefault bool   `json:"isDefault"`
	SortOrder int    `json:"sortOrder"`
}

// IssueOption is a choice in the "report an issue" form. Inactive options are
// retained but hidden.
type IssueOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	IsActive bool   `json:"isActive"`
}

// LogoText is the two-tone wordmark.
type LogoText struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Language is an entry of the language picker.
type Language struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	IsDefault bool   `json:"isDefault"`
}

// SocialLink is a footer social profile link.
type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Label    string `json:"label"`
}

// SiteConfig is the singleton site-wide configuration.
type SiteConfig struct {
	SiteName      string       `json:"siteName"`
	SiteTagline   string       `json:"siteTagline"`
	LogoText      LogoText     `json:"logoText"`
	Description   string       `json:"description"`
	CopyrightYear string       `json:"copyrightYear"`
	Languages     []Language   `json:"languages"`
	SocialLinks   []SocialLink `json:"socialLinks"`
}

// SectionConfig holds the copy of one home page section.
type SectionConfig struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	ViewAllLink string `json:"viewAllLink,omitempty"`
	ViewAllText string `json:"viewAllText,omitempty"`
}

// SectionConfigs maps a section key to its copy.
type SectionConfigs map[string]SectionConfig
