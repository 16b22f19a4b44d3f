package api

import (
	h "github.com/frodejac/filedrop/internal/api/handlers"
	"github.com/frodejac/filedrop/internal/flash"
	"github.com/frodejac/filedrop/internal/folder"
	"github.com/frodejac/filedrop/internal/uploads"
	"github.com/frodejac/filedrop/internal/web"
	"html/template"
	"net/http"
)

type Config struct {
	// Number of recent activity events shown on the file list
	RecentActivity int
}

type handlers struct {
	home   *h.HomeHandler
	files  *h.FileHandler
	edit   *h.EditHandler
	rename *h.RenameHandler
	delete *h.DeleteHandler
	health *h.HealthHandler
}

type Router struct {
	config   *Config
	handlers *handlers
	limiter  *RateLimiter
	notFound http.HandlerFunc
}

func NewRouter(
	templates *template.Template,
	store *folder.Store,
	uploadService *uploads.UploadService,
	flashService *flash.Service,
	journal h.Journal,
	limiter *RateLimiter,
	config *Config,
) *Router {
	if config == nil {
		config = &Config{}
	}
	base := h.NewBaseHandler(store, templates, flashService, journal)
	router := &Router{
		config: config,
		handlers: &handlers{
			home:   h.NewHomeHandler(base, uploadService, config.RecentActivity),
			files:  h.NewFileHandler(base),
			edit:   h.NewEditHandler(base),
			rename: h.NewRenameHandler(base),
			delete: h.NewDeleteHandler(base),
			health: h.NewHealthHandler(base),
		},
		limiter:  limiter,
		notFound: h.NotFound(base),
	}
	return router
}

func (r *Router) SetupRoutes(mux *http.ServeMux) {
	mutate := func(f http.HandlerFunc) http.Handler {
		return r.limiter.Limit(f)
	}

	mux.HandleFunc("GET /{$}", r.handlers.home.HandleHome)
	mux.Handle("POST /{$}", mutate(r.handlers.home.HandleUpload))
	mux.HandleFunc("GET /files/{name}", r.handlers.files.HandleDownload)

	mux.HandleFunc("GET /edit/{name}", r.handlers.edit.HandleGetEdit)
	mux.Handle("POST /edit/{name}", mutate(r.handlers.edit.HandlePostEdit))
	mux.HandleFunc("GET /rename/{name}", r.handlers.rename.HandleGetRename)
	mux.Handle("POST /rename/{name}", mutate(r.handlers.rename.HandlePostRename))
	mux.Handle("POST /delete/{name}", mutate(r.handlers.delete.HandleDelete))

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
	mux.HandleFunc("GET /favicon.png", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFileFS(w, req, web.Static(), "favicon.png")
	})
	mux.HandleFunc("GET /healthz", r.handlers.health.HandleHealth)

	mux.HandleFunc("/", r.notFound)
}
