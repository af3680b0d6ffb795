package catalog

import "aisumo/pkg/domain"

// Defaults returns a fresh copy of the built-in catalog used whenever the
// remote store is empty or unreachable. Every ranking entry resolves to a
// tool and every tool category id resolves to a category.
func Defaults() Data {
	return Data{
		Tools:          defaultTools(),
		Categories:     defaultCategories(),
		Rankings:       defaultRankings(),
		ContentItems:   defaultContentItems(),
		FilterTabs:     defaultFilterTabs(),
		IssueOptions:   defaultIssueOptions(),
		SiteConfig:     defaultSiteConfig(),
		SectionConfigs: defaultSectionConfigs(),
	}
}

func defaultSiteConfig() domain.SiteConfig {
	return domain.SiteConfig{
		SiteName:      "AISumo",
		SiteTagline:   "Discover AI Tools",
		LogoText:      domain.LogoText{Primary: "AI", Secondary: "Sumo"},
		Description:   "Explore over 500 hand-picked, high-utility AI tools. AiSumo connects users with daily free-tier recommendations while providing developers a free platform to showcase their products to a growing audience.",
		CopyrightYear: "2026",
		Languages: []domain.Language{
			{Code: "en", Label: "English", IsDefault: true},
			{Code: "zh-CN", Label: "简体中文"},
			{Code: "zh-TW", Label: "繁體中文"},
			{Code: "ja", Label: "日本語"},
			{Code: "th", Label: "ภาษาไทย"},
			{Code: "km", Label: "ភាសាខ្មែរ"},
			{Code: "my", Label: "မြန်မာဘာသာ"},
			{Code: "vi", Label: "Tiếng Việt"},
			{Code: "id", Label: "Bahasa Indonesia"},
			{Code: "ms", Label: "Bahasa Melayu"},
			{Code: "tl", Label: "Tagalog"},
		},
		SocialLinks: []domain.SocialLink{
			{ID: "x", Platform: "X", URL: "#", Label: "X.com"},
			{ID: "tiktok", Platform: "TikTok", URL: "#", Label: "Tiktok"},
			{ID: "youtube", Platform: "YouTube", URL: "#", Label: "Youtube"},
		},
	}
}

// Section keys of the home page.
const (
	SectionRankings      = "rankings"
	SectionCategories    = "categories"
	SectionMoneyMaking   = "moneyMaking"
	SectionAIForEveryone = "aiForEveryone"
	SectionDevEssentials = "devEssentials"
)

func defaultSectionConfigs() domain.SectionConfigs {
	return domain.SectionConfigs{
		SectionRankings:      {ID: SectionRankings, Title: "Monthly Rankings", ViewAllLink: "#", ViewAllText: "View All Rankings"},
		SectionCategories:    {ID: SectionCategories, Title: "Browse by Category", Subtitle: "Discover AI tools across different categories"},
		SectionMoneyMaking:   {ID: SectionMoneyMaking, Title: "Ways to Make Living with AI", ViewAllLink: "#", ViewAllText: "View All"},
		SectionAIForEveryone: {ID: SectionAIForEveryone, Title: "Daily AI Tools for Everyone", ViewAllLink: "#", ViewAllText: "View All"},
		SectionDevEssentials: {ID: SectionDevEssentials, Title: "Today's Hot Deals", ViewAllLink: "#", ViewAllText: "View All"},
	}
}

func defaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat-1", Slug: "image-generation", Label: "Image Generation", Icon: "Image", ToolCount: 2341, IsActive: true, SortOrder: 1},
		{ID: "cat-2", Slug: "video-generation", Label: "Video Generation", Icon: "Video", ToolCount: 856, IsActive: true, SortOrder: 2},
		{ID: "cat-3", Slug: "chatbots", Label: "Chatbots", Icon: "MessageSquare", ToolCount: 1892, IsActive: true, SortOrder: 3},
		{ID: "cat-4", Slug: "code-assistants", Label: "Code Assistants", Icon: "Code", ToolCount: 743, IsActive: true, SortOrder: 4},
		{ID: "cat-5", Slug: "voice-audio", Label: "Voice & Audio", Icon: "Mic", ToolCount: 568, IsActive: true, SortOrder: 5},
		{ID: "cat-6", Slug: "design-tools", Label: "Design Tools", Icon: "PenTool", ToolCount: 924, IsActive: true, SortOrder: 6},
		{ID: "cat-7", Slug: "productivity", Label: "Productivity", Icon: "Sparkles", ToolCount: 1456, IsActive: true, SortOrder: 7},
		{ID: "cat-8", Slug: "writing-tools", Label: "Writing Tools", Icon: "FileText", ToolCount: 2103, IsActive: true, SortOrder: 8},
		{ID: "cat-9", Slug: "ai-agents", Label: "AI Agents", Icon: "Bot", ToolCount: 412, IsActive: true, SortOrder: 9},
		{ID: "cat-10", Slug: "business-tools", Label: "Business Tools", Icon: "Briefcase", ToolCount: 1287, IsActive: true, SortOrder: 10},
	}
}

func defaultFilterTabs() []domain.FilterTab {
	return []domain.FilterTab{
		{ID: "trending", Label: "Trending", IsDefault: true, SortOrder: 1},
		{ID: "business", Label: "Business", SortOrder: 2},
		{ID: "social-media", Label: "Social Media", SortOrder: 3},
		{ID: "education", Label: "Education", SortOrder: 4},
		{ID: "design", Label: "Design", SortOrder: 5},
		{ID: "knowledge-base", Label: "Knowledge Base", SortOrder: 6},
		{ID: "music", Label: "Music", SortOrder: 7},
	}
}

const unsplash = "https://images.unsplash.com/"

// tool builds a featured directory entry whose id equals its slug.
func tool(slug, name, description, logo, domainName, externalURL, categoryID string) domain.Tool {
	return domain.Tool{
		ID:          slug,
		Slug:        slug,
		Name:        name,
		Description: description,
		Logo:        logo,
		Domain:      domainName,
		ExternalURL: externalURL,
		IsFeatured:  true,
		CategoryIDs: []string{categoryID},
	}
}

func withIcon(t domain.Tool, icon, bg string) domain.Tool {
	t.Icon = icon
	t.IconBg = bg
	return t
}

func paid(t domain.Tool) domain.Tool {
	t.IsPaid = true
	return t
}

func hotDeal(t domain.Tool) domain.Tool {
	t.IsPaid = true
	t.IsHotDeal = true
	return t
}

func defaultTools() []domain.Tool {
	const thumb = "?w=60&h=60&fit=crop"
	const card = "?w=400&h=200&fit=crop"
	return []domain.Tool{
		// rankings
		withIcon(tool("chatgpt", "ChatGPT", "Intelligent assistant for conversations...", unsplash+"photo-1677442136019-21780ecad995"+thumb, "chatgpt.com", "https://chatgpt.com", "cat-3"), "💚", "bg-green-100"),
		tool("gemini", "Gemini", "Google AI assistant", unsplash+"photo-1573804633927-bfcbcd909acd"+thumb, "gemini.google.com", "https://gemini.google.com", "cat-3"),
		tool("claude", "Claude", "Anthropic AI assistant", unsplash+"photo-1620712943543-bcc4688e7485"+thumb, "claude.ai", "https://claude.ai", "cat-3"),
		tool("canva-ai", "Canva AI", "AI-powered design tools", unsplash+"photo-1611162617474-5b21e879e113"+thumb, "canva.com", "https://canva.com", "cat-6"),
		withIcon(tool("deepseek", "DeepSeek", "Chat with DeepSeek AI", unsplash+"photo-1535378917042-10a22c95931a"+thumb, "deepseek.com", "https://deepseek.com", "cat-3"), "🐬", "bg-purple-100"),

		// image generation
		tool("midjourney", "Midjourney", "AI image generation", unsplash+"photo-1547954575-855750c57bd3"+thumb, "midjourney.com", "https://midjourney.com", "cat-1"),
		tool("dall-e-3", "DALL-E 3", "OpenAI image generation", unsplash+"photo-1677442136019-21780ecad995"+thumb, "openai.com", "https://openai.com/dall-e-3", "cat-1"),
		tool("stable-diffusion", "Stable Diffusion", "Open source image generation", unsplash+"photo-1620712943543-bcc4688e7485"+thumb, "stability.ai", "https://stability.ai", "cat-1"),
		tool("leonardo-ai", "Leonardo AI", "AI art generation", unsplash+"photo-1573804633927-bfcbcd909acd"+thumb, "leonardo.ai", "https://leonardo.ai", "cat-1"),
		tool("ideogram", "Ideogram", "AI image with text", unsplash+"photo-1611162617474-5b21e879e113"+thumb, "ideogram.ai", "https://ideogram.ai", "cat-1"),

		// video generation
		tool("sora", "Sora", "OpenAI video generation", unsplash+"photo-1677442136019-21780ecad995"+thumb, "openai.com", "https://openai.com/sora", "cat-2"),
		tool("runway", "Runway", "AI video editing and generation", unsplash+"photo-1535378917042-10a22c95931a"+thumb, "runway.ml", "https://runway.ml", "cat-2"),
		tool("pika", "Pika", "AI video creation", unsplash+"photo-1573804633927-bfcbcd909acd"+thumb, "pika.art", "https://pika.art", "cat-2"),
		tool("kling-ai", "Kling AI", "Video generation AI", unsplash+"photo-1620712943543-bcc4688e7485"+thumb, "kling.ai", "https://kling.ai", "cat-2"),
		tool("luma-dream", "Luma Dream", "AI video dreams", unsplash+"photo-1611162617474-5b21e879e113"+thumb, "lumalabs.ai", "https://lumalabs.ai", "cat-2"),

		// coding
		paid(withIcon(tool("github-copilot", "GitHub Copilot", "AI pair programmer that helps you write code faster...", unsplash+"photo-1618401471353-b98afee0b2eb"+thumb, "github.com", "https://github.com/features/copilot", "cat-4"), "🐙", "bg-gray-100")),
		paid(withIcon(tool("cursor", "Cursor", "Cursor is an AI-driven code editor designed to help developers wri...", unsplash+"photo-1555066931-4365d14bab8c"+thumb, "cursor.com", "https://cursor.com", "cat-4"), "📝", "bg-cyan-100")),
		tool("replit-ai", "Replit AI", "AI-powered coding in browser", unsplash+"photo-1542831371-29b0f74f9713"+thumb, "replit.com", "https://replit.com", "cat-4"),
		tool("codeium", "Codeium", "Free AI code completion", unsplash+"photo-1516116216624-53e697fedbea"+thumb, "codeium.com", "https://codeium.com", "cat-4"),
		tool("tabnine", "Tabnine", "AI code assistant", unsplash+"photo-1587620962725-abab7fe55159"+thumb, "tabnine.com", "https://tabnine.com", "cat-4"),

		// AI for everyone
		withIcon(tool("doubao", "Doubao", "A chat robot that keeps you company.", unsplash+"photo-1676299081847-824916de030a"+card, "", "", "cat-3"), "👩", "bg-blue-100"),
		withIcon(tool("kimi-chat", "Kimi Chat", "Kimi is an AI assistant designed for...", unsplash+"photo-1555949963-ff9fe0c870eb"+card, "", "", "cat-3"), "K", "bg-black text-white"),
		withIcon(tool("wenxin-yiyian", "Wenxin Yiyian", "Knowledge-Augmented Large Language Model", unsplash+"photo-1677442136019-21780ecad995"+card, "", "", "cat-3"), "🔵", "bg-blue-500"),
		withIcon(tool("qwen-chat", "Qwen Chat", "Qwen Chat is an AI-powered chat tool built o...", unsplash+"photo-1620712943543-bcc4688e7485"+card, "", "", "cat-3"), "⚫", "bg-purple-600 text-white"),

		// hot deals
		hotDeal(withIcon(tool("qoder", "Qoder", "Qoder is an agent coding platform that seamlessly...", "", "", "https://qoder.ai", "cat-4"), "🔴", "bg-gradient-to-br from-orange-500 to-red-500")),
		hotDeal(withIcon(tool("trae", "Trae", "Trae is an AI-driven integrated development environment (IDE)...", "", "", "https://trae.ai", "cat-4"), "🟥", "bg-red-500")),
		hotDeal(withIcon(tool("augment-code", "Augment Code", "Augment Code is an AI development assistant for...", "", "", "https://augmentcode.com", "cat-4"), "⚡", "bg-purple-100")),
		hotDeal(withIcon(tool("warp", "Warp", "Warp is a terminal written in Rust, wh...", "", "", "https://warp.dev", "cat-4"), "🟢", "bg-green-100")),
	}
}

func defaultRankings() []domain.RankingList {
	return []domain.RankingList{
		{ID: "rank-overall", Type: domain.RankingOverall, Title: "Overall Rankings", ToolIDs: []string{"chatgpt", "gemini", "claude", "canva-ai", "deepseek"}},
		{ID: "rank-image", Type: domain.RankingImage, Title: "Image Generation", ToolIDs: []string{"midjourney", "dall-e-3", "stable-diffusion", "leonardo-ai", "ideogram"}},
		{ID: "rank-video", Type: domain.RankingVideo, Title: "Video Generation", ToolIDs: []string{"sora", "runway", "pika", "kling-ai", "luma-dream"}},
		{ID: "rank-coding", Type: domain.RankingCoding, Title: "Coding", ToolIDs: []string{"github-copilot", "cursor", "replit-ai", "codeium", "tabnine"}},
	}
}

func defaultContentItems() []domain.ContentItem {
	const portrait = "?w=400&h=711&fit=crop"
	const video = "https://www.w3schools.com/html/mov_bbb.mp4"
	tags := func(second string) []string { return []string{"Content Creation", second} }
	return []domain.ContentItem{
		{ID: "content-1", Title: "TikTok Influencer Uses AI Rap + Animal Science to...", Image: unsplash + "photo-1611162616475-46b635cb6868" + portrait, VideoURL: video, CategoryTags: tags("Professional"), SortOrder: 1},
		{ID: "content-2", Title: "3 Months Gained 1 Million Fans! This Young Man Writ...", Image: unsplash + "photo-1516321318423-f06f85e504b3" + portrait, VideoURL: video, CategoryTags: tags("Professional"), SortOrder: 2},
		{ID: "content-3", Title: "Blogger Creates 'Mashu Cat X' with AI and Goes Viral,...", Image: unsplash + "photo-1514888286974-6c03e2ca1dba" + portrait, VideoURL: video, CategoryTags: tags("Professional"), SortOrder: 3},
		{ID: "content-4", Title: "Douyin AI Video E-commerce Large Size...", Image: unsplash + "photo-1556742049-0cfed4f6a45d" + portrait, VideoURL: video, CategoryTags: tags("Professional"), SortOrder: 4},
		{ID: "content-5", Title: "Thinking Outside the Box: TikTok Influenc...", Image: unsplash + "photo-1507003211169-0a1dd7228f2d" + portrait, VideoURL: video, CategoryTags: tags("Professional"), SortOrder: 5},
		{ID: "content-6", Title: "AI-Powered Content Strategy for Social Media Growth", Image: unsplash + "photo-1460925895917-afdab827c52f" + portrait, VideoURL: video, CategoryTags: tags("Marketing"), SortOrder: 6},
	}
}

func defaultIssueOptions() []domain.IssueOption {
	return []domain.IssueOption{
		{ID: "no-free-trial", Label: "No free trial anymore", IsActive: true},
		{ID: "no-free-credits", Label: "No free credits anymore", IsActive: true},
		{ID: "limits-reduced", Label: "Limits reduced", IsActive: true},
		{ID: "link-broken", Label: "Website Link broken", IsActive: true},
	}
}
