package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"trialstat/adapters/excel"
	"trialstat/adapters/postgres"
	"trialstat/app"
	"trialstat/internal/config"
)

//go:embed templates/*
var embeddedFiles embed.FS

// App represents the upload/results web application. It is a thin collaborator
// around the pipeline: all statistics happen in the core packages and the app
// only moves bytes and renders tables.
type App struct {
	router   *chi.Mux
	cfg      *config.Config
	store    *RunStore
	pipeline *app.Pipeline
	reader   *excel.Reader
	archive  *postgres.ResultRepository
	tmpl     *template.Template
}

// NewApp creates the web application. archive may be nil; runs are then kept
// in memory only.
func NewApp(cfg *config.Config, archive *postgres.ResultRepository) (*App, error) {
	tmpl, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:   chi.NewRouter(),
		cfg:      cfg,
		store:    NewRunStore(),
		pipeline: app.NewPipeline(cfg.Pipeline.Workers),
		reader: excel.NewReader(excel.Config{
			TreatmentColumn:  cfg.Pipeline.TreatmentColumn,
			ParameterColumns: cfg.Pipeline.ParameterColumns,
			ExcludedSuffix:   cfg.Pipeline.ExcludedSuffix,
			LegendSheet:      cfg.Pipeline.LegendSheet,
		}),
		archive: archive,
		tmpl:    tmpl,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

// setupRoutes configures all HTTP routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/upload", a.handleUpload)
	a.router.Get("/runs/{runID}", a.handleRun)
	a.router.Get("/runs/{runID}/download", a.handleDownload)
}

// Start runs the HTTP server
func (a *App) Start() error {
	addr := ":" + a.cfg.Server.Port
	log.Printf("[UI] Listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the handler tree for tests
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[UI] Template %q failed: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
