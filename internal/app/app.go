package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/terravista/estate-core/internal/config"
	"github.com/terravista/estate-core/internal/database"
	"github.com/terravista/estate-core/internal/middleware"
	"github.com/terravista/estate-core/internal/modules/storage/upload"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	mongo  *database.Mongo
	logger *zap.Logger

	// localUploads is set when files land on disk; routes.go mounts the
	// directory as a static prefix in that case.
	localUploads string
}

// New initializes the application: config → Mongo → storage backend → routes.
func New(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	mongo, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	backend, localDir, err := buildBackend(cfg)
	if err != nil {
		_ = mongo.Close(ctx)
		return nil, fmt.Errorf("storage: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{
		cfg:          cfg,
		router:       router,
		mongo:        mongo,
		logger:       logger,
		localUploads: localDir,
	}
	app.registerRoutes(upload.New(backend))
	return app, nil
}

// buildBackend picks the upload destination: an S3 bucket when configured,
// local disk otherwise. The second return is the on-disk directory to serve,
// empty for S3.
func buildBackend(cfg *config.AppConfig) (upload.Backend, string, error) {
	if cfg.S3.Enable {
		b, err := upload.NewS3Backend(cfg.S3)
		return b, "", err
	}
	b, err := upload.NewLocalBackend(cfg.Paths.Uploads)
	return b, cfg.Paths.Uploads, err
}

// corsConfig allows everything in development; in production only the
// configured origins may call the API.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if cfg.IsDev() || len(cfg.AllowedOrigins) == 0 {
		c.AllowOriginFunc = func(string) bool { return true }
		return c
	}
	allowed := cfg.AllowedOrigins
	c.AllowOriginFunc = func(origin string) bool {
		return originAllowed(allowed, origin)
	}
	return c
}

// originAllowed matches an Origin header against the configured list.
// Entries are hostnames, optionally with a leading "*." admitting the
// domain and its subdomains; ports are ignored so the site and a dev
// proxy on the same host both pass.
func originAllowed(patterns []string, origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(p, "*."); ok {
			if host == rest || strings.HasSuffix(host, "."+rest) {
				return true
			}
			continue
		}
		if host == p {
			return true
		}
	}
	return false
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases held resources, currently just the Mongo connection.
func (a *App) Shutdown(ctx context.Context) error {
	return a.mongo.Close(ctx)
}
