// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/pagesmith/internal/cache"
	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/config"
	"github.com/olegiv/pagesmith/internal/demo"
	"github.com/olegiv/pagesmith/internal/handler"
	"github.com/olegiv/pagesmith/internal/handler/api"
	"github.com/olegiv/pagesmith/internal/logging"
	"github.com/olegiv/pagesmith/internal/middleware"
	"github.com/olegiv/pagesmith/internal/render"
	"github.com/olegiv/pagesmith/internal/scheduler"
	"github.com/olegiv/pagesmith/internal/seo"
	"github.com/olegiv/pagesmith/internal/service"
	"github.com/olegiv/pagesmith/internal/session"
	"github.com/olegiv/pagesmith/internal/store"
	"github.com/olegiv/pagesmith/internal/version"
	"github.com/olegiv/pagesmith/internal/workspace"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Pagesmith - landing page builder\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAGESMITH_SESSION_SECRET  Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAGESMITH_STORE_DRIVER    Page store: sqlite|memory|mongo (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAGESMITH_DB_PATH         SQLite database path (default: ./data/pagesmith.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAGESMITH_MONGO_URI       MongoDB connection URI (mongo driver only)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAGESMITH_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAGESMITH_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAGESMITH_REDIS_URL       Redis URL for the page cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAGESMITH_SITE_URL        Public base URL used in sitemaps and canonical links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PAGESMITH_DEMO_MODE       Restore the demo page every 24 hours (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// backend is the opened page store with the pieces main needs from it.
type backend struct {
	pages  store.PageStore
	db     *sql.DB        // nil unless the SQLite driver is used
	events store.EventSink // nil when the store keeps no event log
	pinger handler.Pinger
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	be, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.pages.Close(); err != nil {
			slog.Error("error closing page store", "error", err)
		}
	}()

	// Upgrade logger to also write WARN and ERROR logs to the event log
	if be.events != nil {
		textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
		logger = slog.New(logging.NewEventLogHandler(textHandler, be.events))
		slog.SetDefault(logger)
		slog.Info("event log integration enabled", "min_level", "warn")
	}

	pageCache, err := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		// Fall back to memory so a missing Redis does not take the site down
		slog.Warn(handler.LogCacheInit, "backend", "memory", "note", "Redis unavailable, using fallback", "error", err)
		pageCache, _ = cache.New(cache.Config{
			DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
			MaxSize:    cfg.CacheMaxSize,
		})
	} else if cfg.UseRedisCache() {
		slog.Info(handler.LogCacheInit, "backend", "redis")
	} else {
		slog.Info(handler.LogCacheInit, "backend", "memory")
	}
	defer func() { _ = pageCache.Close() }()

	pageStore := store.NewCachedStore(be.pages, pageCache, time.Duration(cfg.CacheTTL)*time.Second, logger)

	factory := catalog.NewFactory(nil)
	if cfg.DoSeed {
		if err := store.Seed(ctx, pageStore, factory, time.Now().UTC()); err != nil {
			return fmt.Errorf("seeding pages: %w", err)
		}
	}

	sessionManager := session.New(be.db, cfg.IsDevelopment())
	slog.Info("session manager initialized", "persistent", be.db != nil)

	eventService := service.NewEventService(be.events)
	pages := service.NewPages(pageStore,
		service.WithPagesFactory(factory),
		service.WithPagesEvents(eventService),
		service.WithPagesLogger(logger),
	)
	workspaces := workspace.NewManager(pages, workspace.Config{
		HistoryLimit: cfg.HistoryLimit,
		IdleTimeout:  cfg.SessionIdle,
		Factory:      factory,
		Logger:       logger,
	})

	site := seo.SiteConfig{SiteName: cfg.SiteName, SiteURL: cfg.SiteURL}
	renderer, err := render.New(render.Config{Site: site, Logger: logger})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("renderer initialized")

	sched := scheduler.New(logger)
	if err := sched.AddJob("session-sweep", "Close idle editor sessions", "@every 1m",
		scheduler.SessionSweepJob(workspaces)); err != nil {
		return fmt.Errorf("scheduling session sweep: %w", err)
	}
	if be.events != nil {
		if err := sched.AddJob("event-retention", "Delete old event log entries", "@daily",
			scheduler.EventRetentionJob(eventService, cfg.EventRetention(), logger)); err != nil {
			return fmt.Errorf("scheduling event retention: %w", err)
		}
	}
	if cfg.DemoMode {
		resetter := demo.NewResetter(pageStore, factory, sqliteDataDir(cfg), func(pageID string) {
			workspaces.CloseAll(pageID)
		})
		if _, err := resetter.ResetIfNeeded(ctx); err != nil {
			return fmt.Errorf("resetting demo content: %w", err)
		}
		if err := sched.AddJob("demo-reset", "Restore the demo page", "@every 24h", resetter.Job()); err != nil {
			return fmt.Errorf("scheduling demo reset: %w", err)
		}
		slog.Info("demo mode enabled", "reset_interval", demo.ResetInterval)
	}
	sched.Start()
	defer sched.Stop()

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.StripTrailingSlash)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment())

	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadUser(sessionManager))

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	r.Use(middleware.CSRF(csrfConfig))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Import and export are the expensive routes: 2 req/s with burst of 5 per IP
	transferLimiter := middleware.NewGlobalRateLimiter(2.0, 5)
	// Public pages: 10 req/s with burst of 20 per IP
	publicLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	apiHandler := api.NewHandler(api.Config{
		Pages:         pages,
		Workspaces:    workspaces,
		Renderer:      renderer,
		Sessions:      sessionManager,
		Events:        eventService,
		Logger:        logger,
		TransferLimit: transferLimiter.Middleware(),
	})
	publicHandler := handler.NewPublicHandler(handler.PublicConfig{
		Pages:            pages,
		Renderer:         renderer,
		Site:             site,
		DisallowCrawlers: cfg.IsDevelopment(),
		Logger:           logger,
	})
	healthHandler := handler.NewHealthHandler(handler.HealthConfig{
		Store:    be.pinger,
		DataDir:  sqliteDataDir(cfg),
		Sessions: workspaces,
		Jobs:     sched.Registry(),
		Version:  versionInfo,
	})

	r.Route(handler.RouteAPI, apiHandler.Routes)

	r.Group(func(r chi.Router) {
		r.Use(publicLimiter.HTMLMiddleware())
		r.Get(handler.RoutePublicPage, publicHandler.Page)
		r.Get(handler.RouteRobots, publicHandler.Robots)
		r.Get(handler.RouteSitemap, publicHandler.Sitemap)
	})

	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)

	r.NotFound(publicHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Reduced from 120s to mitigate slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "store", cfg.StoreDriver, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if n := workspaces.Len(); n > 0 {
		slog.Info("discarding unsaved editor sessions", "count", n)
	}

	slog.Info("server stopped")
	return nil
}

// openBackend opens the page store selected by PAGESMITH_STORE_DRIVER.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		slog.Info("using in-memory page store")
		return &backend{pages: store.NewMemoryStore()}, nil

	case config.StoreMongo:
		slog.Info("connecting to mongo", "database", cfg.MongoDatabase)
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("initializing mongo store: %w", err)
		}
		return &backend{pages: ms, pinger: ms}, nil

	default:
		if err := os.MkdirAll(cfg.DataDir(), 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}

		slog.Info("initializing database", "path", cfg.DBPath)
		db, err := store.NewDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("initializing database: %w", err)
		}

		slog.Info("running database migrations")
		if err := store.Migrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database ready")

		ss := store.NewSQLiteStore(db)
		return &backend{pages: ss, db: db, events: ss, pinger: ss}, nil
	}
}

func sqliteDataDir(cfg *config.Config) string {
	if !cfg.UsesSQLite() {
		return ""
	}
	return cfg.DataDir()
}
