// Where: internal/server/server.go
// What: HTTP facade wiring.
// Why: One router exposes repo lookup, scanner pass-through, and the issue tracker.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vessel-dev/vessel/internal/github"
	"github.com/vessel-dev/vessel/internal/issues"
	"github.com/vessel-dev/vessel/internal/scanner"
)

// RepoLookup resolves a repository to its numeric ID.
type RepoLookup interface {
	RepoID(ctx context.Context, owner, repo string) (int64, error)
}

// ScanClient talks to the scanning service.
type ScanClient interface {
	Dispatch(ctx context.Context, req scanner.DispatchRequest) (json.RawMessage, error)
	Status(ctx context.Context, scanID string) (json.RawMessage, error)
	Issues(ctx context.Context, scanID string) (json.RawMessage, error)
}

// Dependencies overrides the collaborators New would otherwise build from Config.
type Dependencies struct {
	Repos     RepoLookup
	Scanner   ScanClient
	Issues    *issues.Store
	Snapshots issues.SnapshotStore
	Registry  *prometheus.Registry
}

// Server owns the facade handlers and their shared state.
type Server struct {
	cfg       Config
	logger    *zap.Logger
	repos     RepoLookup
	scanner   ScanClient
	issues    *issues.Store
	snapshots issues.SnapshotStore
	registry  *prometheus.Registry
	metrics   *httpMetrics
}

// New builds a Server. Nil dependencies are created from cfg.
func New(cfg Config, logger *zap.Logger, deps Dependencies) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Repos == nil {
		deps.Repos = github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken)
	}
	if deps.Scanner == nil {
		deps.Scanner = scanner.NewClient(scanner.Options{
			BaseURL:           cfg.ScannerAPIURL,
			APIKey:            cfg.ScannerAPIKey,
			RequestsPerSecond: cfg.ScannerRPS,
		})
	}
	if deps.Issues == nil {
		deps.Issues = issues.NewStore(logger.Named("issues"))
	}
	if deps.Snapshots == nil {
		dir := cfg.IssuesDir
		if dir == "" {
			dir = DefaultIssuesDir
		}
		deps.Snapshots = issues.NewFileStore(dir)
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		repos:     deps.Repos,
		scanner:   deps.Scanner,
		issues:    deps.Issues,
		snapshots: deps.Snapshots,
		registry:  deps.Registry,
		metrics:   newHTTPMetrics(deps.Registry),
	}
}

// Handler returns the routed facade.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", s.handleHealth)
	r.Post("/repo-id", s.handleRepoID)
	r.Post("/trigger-scan", s.handleTriggerScan)
	r.Post("/check-scan-status", s.handleScanStatus)
	r.Post("/get-scan-issues", s.handleScanIssues)

	r.Route("/api/issues", func(r chi.Router) {
		r.Get("/", s.handleListIssues)
		r.Post("/", s.handleAddIssue)
		r.Delete("/", s.handleClearIssues)
		r.Get("/report", s.handleIssueReport)
		r.Post("/bulk", s.handleBulkIssues)
		r.Post("/save", s.handleSaveIssues)
		r.Post("/load", s.handleLoadIssues)
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// HTTPServer wraps Handler in an http.Server listening on cfg.Addr().
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
