// Package httpapi exposes the catalog over JSON HTTP: a public read API, an
// admin API behind an Authenticator, blob downloads, health and metrics.
package httpapi

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"aisumo/internal/blob"
	"aisumo/internal/catalog"
)

// Options wires a Server. Site and Admin are required and should sit on
// separate stores so local admin edits stay out of public responses; the
// rest have defaults.
type Options struct {
	Site   *catalog.Site
	Admin  *catalog.Admin
	Blobs  blob.Store
	Auth   Authenticator
	Logger *zap.Logger
	// Gatherer backs /metrics; nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// BlobPrefix is where blobs are served, default "/blobs".
	BlobPrefix string
}

// Server holds the handlers' dependencies.
type Server struct {
	site       *catalog.Site
	admin      *catalog.Admin
	blobs      blob.Store
	auth       Authenticator
	logger     *zap.Logger
	gatherer   prometheus.Gatherer
	blobPrefix string
}

// New builds a Server from opts.
func New(opts Options) *Server {
	s := &Server{
		site:       opts.Site,
		admin:      opts.Admin,
		blobs:      opts.Blobs,
		auth:       opts.Auth,
		logger:     opts.Logger,
		gatherer:   opts.Gatherer,
		blobPrefix: opts.BlobPrefix,
	}
	if s.auth == nil {
		s.auth = TokenAuthenticator{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if s.blobPrefix == "" {
		s.blobPrefix = "/blobs"
	}
	return s
}

// Routes returns the full router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	if s.blobs != nil {
		r.Get(s.blobPrefix+"/*", s.handleBlob)
	}

	r.Route("/api", func(api chi.Router) {
		s.publicRoutes(api)
		api.Route("/admin", func(ad chi.Router) {
			ad.Use(s.requireAdmin)
			s.adminRoutes(ad)
		})
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"isLoading":        s.site.IsLoading(),
		"isDatabaseSeeded": s.site.IsDatabaseSeeded(),
	})
}

func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	info, body, err := s.blobs.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "blob not found")
			return
		}
		s.logger.Warn("blob read failed", zap.String("key", key), zap.Error(err))
		writeError(w, http.StatusBadGateway, "blob read failed")
		return
	}
	defer body.Close()
	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	if info.ETag != "" {
		w.Header().Set("ETag", strconv.Quote(info.ETag))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
