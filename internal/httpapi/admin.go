package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"aisumo/internal/catalog"
	"aisumo/pkg/domain"
)

// maxIconBytes bounds multipart icon uploads.
const maxIconBytes = 5 << 20

func (s *Server) adminRoutes(r chi.Router) {
	r.Get("/status", s.handleStatus)
	r.Get("/stats", s.handleStats)
	r.Post("/fetch", s.handleFetch)
	r.Post("/site/fetch", s.handleSiteFetch)
	r.Post("/seed", s.handleSeed)
	r.Post("/reset", s.handleReset)

	r.Post("/tools", s.handleAddTool)
	r.Patch("/tools/{id}", s.handleUpdateTool)
	r.Delete("/tools/{id}", s.handleDeleteTool)
	r.Post("/tools/icon", s.handleUploadIcon)

	r.Post("/categories", s.handleAddCategory)
	r.Patch("/categories/{id}", s.handleUpdateCategory)
	r.Delete("/categories/{id}", s.handleDeleteCategory)

	r.Patch("/rankings/{id}", s.handleUpdateRanking)
	r.Post("/rankings/{id}/tools", s.handleAddRankingTool)
	r.Delete("/rankings/{id}/tools/{toolID}", s.handleRemoveRankingTool)
	r.Post("/rankings/{id}/move", s.handleMoveRankingTool)

	r.Post("/content-items", s.handleAddContentItem)
	r.Patch("/content-items/{id}", s.handleUpdateContentItem)
	r.Delete("/content-items/{id}", s.handleDeleteContentItem)

	// Local-only replacements; nothing is written to the backend.
	r.Put("/filter-tabs", s.handleSetFilterTabs)
	r.Put("/issue-options", s.handleSetIssueOptions)
	r.Put("/site-config", s.handleSetSiteConfig)
	r.Put("/section-configs", s.handleSetSectionConfigs)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"isLoading":        s.admin.IsLoading(),
		"isDatabaseSeeded": s.admin.IsDatabaseSeeded(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.admin.Stats())
}

type tableResult struct {
	Table    string `json:"table"`
	Rows     int    `json:"rows"`
	Replaced bool   `json:"replaced"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	report := s.admin.FetchAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"tables": tableResults(report), "isDatabaseSeeded": s.admin.IsDatabaseSeeded()})
}

// handleSiteFetch refreshes the public store so committed admin writes show
// up without waiting for the next poll.
func (s *Server) handleSiteFetch(w http.ResponseWriter, r *http.Request) {
	report := s.site.FetchAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"tables": tableResults(report), "isDatabaseSeeded": s.site.IsDatabaseSeeded()})
}

func tableResults(report catalog.FetchReport) []tableResult {
	out := make([]tableResult, 0, len(report.Tables))
	for _, t := range report.Tables {
		res := tableResult{Table: t.Table, Rows: t.Rows, Replaced: t.Replaced()}
		if t.Err != nil {
			res.Error = t.Err.Error()
		}
		out = append(out, res)
	}
	return out
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.SeedDatabase(r.Context()); err != nil {
		s.logger.Error("seed failed", zap.Error(err))
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.admin.Stats())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.admin.ResetToDefaults()
	writeJSON(w, http.StatusOK, s.admin.Stats())
}

// mutate runs fn and answers 204, or maps its error.
func mutate(w http.ResponseWriter, fn func() error) {
	if err := fn(); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTool(w http.ResponseWriter, r *http.Request) {
	var t domain.Tool
	if !decodeJSON(w, r, &t) {
		return
	}
	mutate(w, func() error { return s.admin.AddTool(r.Context(), t) })
}

func (s *Server) handleUpdateTool(w http.ResponseWriter, r *http.Request) {
	var p domain.ToolPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	mutate(w, func() error { return s.admin.UpdateTool(r.Context(), chi.URLParam(r, "id"), p) })
}

func (s *Server) handleDeleteTool(w http.ResponseWriter, r *http.Request) {
	mutate(w, func() error { return s.admin.DeleteTool(r.Context(), chi.URLParam(r, "id")) })
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.Category
	if !decodeJSON(w, r, &c) {
		return
	}
	mutate(w, func() error { return s.admin.AddCategory(r.Context(), c) })
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var p domain.CategoryPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	mutate(w, func() error { return s.admin.UpdateCategory(r.Context(), chi.URLParam(r, "id"), p) })
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	mutate(w, func() error { return s.admin.DeleteCategory(r.Context(), chi.URLParam(r, "id")) })
}

func (s *Server) handleUpdateRanking(w http.ResponseWriter, r *http.Request) {
	var p domain.RankingPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	mutate(w, func() error { return s.admin.UpdateRanking(r.Context(), chi.URLParam(r, "id"), p) })
}

func (s *Server) handleAddRankingTool(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ToolID string `json:"toolId"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	mutate(w, func() error { return s.admin.AddToolToRanking(r.Context(), chi.URLParam(r, "id"), body.ToolID) })
}

func (s *Server) handleRemoveRankingTool(w http.ResponseWriter, r *http.Request) {
	mutate(w, func() error {
		return s.admin.RemoveToolFromRanking(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "toolID"))
	})
}

func (s *Server) handleMoveRankingTool(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index int `json:"index"`
		Delta int `json:"delta"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	mutate(w, func() error {
		return s.admin.MoveRankingTool(r.Context(), chi.URLParam(r, "id"), body.Index, body.Delta)
	})
}

func (s *Server) handleAddContentItem(w http.ResponseWriter, r *http.Request) {
	var c domain.ContentItem
	if !decodeJSON(w, r, &c) {
		return
	}
	mutate(w, func() error { return s.admin.AddContentItem(r.Context(), c) })
}

func (s *Server) handleUpdateContentItem(w http.ResponseWriter, r *http.Request) {
	var p domain.ContentItemPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	mutate(w, func() error { return s.admin.UpdateContentItem(r.Context(), chi.URLParam(r, "id"), p) })
}

func (s *Server) handleDeleteContentItem(w http.ResponseWriter, r *http.Request) {
	mutate(w, func() error { return s.admin.DeleteContentItem(r.Context(), chi.URLParam(r, "id")) })
}

func (s *Server) handleSetFilterTabs(w http.ResponseWriter, r *http.Request) {
	var v []domain.FilterTab
	if decodeJSON(w, r, &v) {
		s.admin.SetFilterTabs(v)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSetIssueOptions(w http.ResponseWriter, r *http.Request) {
	var v []domain.IssueOption
	if decodeJSON(w, r, &v) {
		s.admin.SetIssueOptions(v)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSetSiteConfig(w http.ResponseWriter, r *http.Request) {
	var v domain.SiteConfig
	if decodeJSON(w, r, &v) {
		s.admin.SetSiteConfig(v)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSetSectionConfigs(w http.ResponseWriter, r *http.Request) {
	var v domain.SectionConfigs
	if decodeJSON(w, r, &v) {
		s.admin.SetSectionConfigs(v)
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleUploadIcon accepts multipart field "file" and answers the public URL.
func (s *Server) handleUploadIcon(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxIconBytes)
	if err := r.ParseMultipartForm(maxIconBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()
	url, err := s.admin.UploadToolIcon(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"url": url})
}
