package app

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/terravista/estate-core/internal/database"
	"github.com/terravista/estate-core/internal/middleware"
	"github.com/terravista/estate-core/internal/modules/auth"
	"github.com/terravista/estate-core/internal/modules/hero"
	"github.com/terravista/estate-core/internal/modules/project"
	"github.com/terravista/estate-core/internal/modules/stats"
	"github.com/terravista/estate-core/internal/modules/storage/upload"
	"github.com/terravista/estate-core/internal/modules/testimonial"
	"github.com/terravista/estate-core/internal/pkg/jwt"
	"github.com/terravista/estate-core/internal/pkg/response"
)

// Login attempts are throttled per client IP; content routes are not.
const (
	loginRatePerSecond = 5.0 / 60.0
	loginBurst         = 5
)

func (a *App) registerRoutes(uploads *upload.Storage) {
	r := a.router

	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	authSvc := auth.NewService(database.NewUserRepo(a.mongo), jwt.New(a.cfg.JWTSecret))
	authMW := middleware.Auth(authSvc)
	loginLimiter := middleware.RateLimit(middleware.NewIPRateLimiter(loginRatePerSecond, loginBurst))

	api := r.Group("/api")

	auth.NewHandler(authSvc, a.logger).RegisterRoutes(api, authMW, loginLimiter)

	projectSvc := project.NewService(database.NewProjectRepo(a.mongo), uploads)
	project.NewHandler(projectSvc, a.logger).RegisterRoutes(api, authMW)

	testimonialSvc := testimonial.NewService(database.NewTestimonialRepo(a.mongo), uploads)
	testimonial.NewHandler(testimonialSvc, a.logger).RegisterRoutes(api, authMW)

	heroSvc := hero.NewService(database.NewHeroRepo(a.mongo), uploads)
	hero.NewHandler(heroSvc, a.logger).RegisterRoutes(api, authMW)

	statsSvc := stats.NewService(database.NewStatsRepo(a.mongo))
	stats.NewHandler(statsSvc, a.logger).RegisterRoutes(api, authMW)

	if a.localUploads != "" {
		r.Static(upload.PublicPrefix, a.localUploads)
	}
	if dir := a.cfg.Paths.Admin; dir != "" {
		r.Static("/admin", dir)
	}

	a.registerFallback()
}

// registerFallback serves the public frontend for unmatched GET paths when a
// frontend directory is configured, and a JSON 404 otherwise. API paths always
// get the JSON 404.
func (a *App) registerFallback() {
	frontend := a.cfg.Paths.Frontend
	a.router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if frontend == "" ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) ||
			strings.HasPrefix(path, "/api") ||
			strings.HasPrefix(path, upload.PublicPrefix) {
			response.NotFound(c)
			return
		}
		file := filepath.Join(frontend, filepath.Clean("/"+path))
		if st, err := os.Stat(file); err == nil && !st.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(frontend, "index.html"))
	})
}
