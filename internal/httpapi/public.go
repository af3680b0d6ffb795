package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aisumo/pkg/domain"
)

func (s *Server) publicRoutes(r chi.Router) {
	r.Get("/site", s.handleSite)
	r.Get("/tools", s.handleTools)
	r.Get("/tools/featured", s.handleFeatured)
	r.Get("/tools/hot-deals", s.handleHotDeals)
	r.Get("/tools/{slug}", s.handleTool)
	r.Get("/categories", s.handleCategories)
	r.Get("/categories/{id}/tools", s.handleCategoryTools)
	r.Get("/rankings", s.handleRankings)
	r.Get("/rankings/{type}", s.handleRanking)
	r.Get("/sections/{id}", s.handleSection)
	r.Get("/issue-options", s.handleIssueOptions)
	r.Get("/filter-tabs", s.handleFilterTabs)
}

// handleSite returns the whole catalog as one document.
func (s *Server) handleSite(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.site.Snapshot())
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.site.Search(r.URL.Query().Get("q"))})
}

func (s *Server) handleFeatured(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.site.FeaturedTools()})
}

func (s *Server) handleHotDeals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.site.HotDealTools()})
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	tool, ok := s.site.ToolBySlug(slug)
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrNotFound{Entity: domain.EntityTool, ID: slug}.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tool": tool})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.site.SortedCategories()})
}

func (s *Server) handleCategoryTools(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	category, ok := s.site.CategoryByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrNotFound{Entity: domain.EntityCategory, ID: id}.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category, "tools": s.site.ToolsByCategory(id)})
}

func (s *Server) handleRankings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rankings": s.site.Rankings()})
}

// handleRanking resolves a ranking by type into ranked tools.
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	typ := domain.RankingType(chi.URLParam(r, "type"))
	ranking, ok := s.site.RankingByType(typ)
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrNotFound{Entity: domain.EntityRanking, ID: string(typ)}.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ranking": ranking, "tools": s.site.ToolsForRanking(ranking)})
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	section, ok := s.site.Section(id)
	if !ok {
		writeError(w, http.StatusNotFound, "section "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"section": section})
}

func (s *Server) handleIssueOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"issueOptions": s.site.ActiveIssueOptions()})
}

func (s *Server) handleFilterTabs(w http.ResponseWriter, _ *http.Request) {
	tab, _ := s.site.DefaultFilterTab()
	writeJSON(w, http.StatusOK, map[string]any{"filterTabs": s.site.FilterTabs(), "default": tab.ID})
}
