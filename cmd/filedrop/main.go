package main

import (
	"flag"
	"github.com/frodejac/filedrop/internal/api"
	"github.com/frodejac/filedrop/internal/config"
	"github.com/frodejac/filedrop/internal/database"
	"github.com/frodejac/filedrop/internal/database/activity"
	"github.com/frodejac/filedrop/internal/flash"
	"github.com/frodejac/filedrop/internal/folder"
	"github.com/frodejac/filedrop/internal/logging"
	"github.com/frodejac/filedrop/internal/uploads"
	"github.com/frodejac/filedrop/internal/web"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"net/http"
	"os"
	"time"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create logger")
	}

	store, err := folder.New(&folder.Config{
		Root:      cfg.Files.Path,
		NoClobber: cfg.Files.NoClobber,
		LockNames: cfg.Files.LockNames,
		Workers:   cfg.Upload.Workers,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open files directory")
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	journal, err := activity.NewActivityStore(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create activity store")
	}
	if cfg.Activity.Retention > 0 {
		pruned, err := journal.Prune(time.Now().Add(-cfg.Activity.Retention))
		if err != nil {
			logger.Error().Err(err).Msg("Failed to prune activity")
		} else if pruned > 0 {
			logger.Info().Int64("events", pruned).Msg("Pruned old activity")
		}
	}

	uploadService := uploads.NewUploadService(store, &uploads.Config{
		MaxUploadBytes: cfg.Upload.MaxBytes,
		MaxMemory:      cfg.Upload.MaxMemory,
	})

	flashService := flash.NewService(&flash.CookieConfig{
		Name:     "flash",
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	templates, err := web.Templates(nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to parse templates")
	}

	var limiter *api.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = api.NewRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	}

	router := api.NewRouter(
		templates,
		store,
		uploadService,
		flashService,
		journal,
		limiter,
		&api.Config{RecentActivity: cfg.Activity.Recent},
	)

	mux := http.NewServeMux()
	router.SetupRoutes(mux)

	var handler http.Handler = mux
	if cfg.Server.UseSecurityHeaders {
		handler = api.SecurityHeadersMiddleware(cfg.Server.UseHsts)(handler)
	}
	handler = api.LoggingMiddleWare(logger)(handler)

	logger.Info().Str("port", cfg.Server.Port).Str("root", store.Root()).Msg("Starting server")
	err = http.ListenAndServe(":"+cfg.Server.Port, handler)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
