package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"school-cms-api/config"
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/announcement"
	"school-cms-api/internal/assistant"
	"school-cms-api/internal/auth"
	"school-cms-api/internal/category"
	"school-cms-api/internal/dashboard"
	"school-cms-api/internal/export"
	"school-cms-api/internal/extra"
	"school-cms-api/internal/facility"
	"school-cms-api/internal/gallery"
	"school-cms-api/internal/media"
	"school-cms-api/internal/middlewares"
	"school-cms-api/internal/post"
	"school-cms-api/internal/seo"
	"school-cms-api/internal/settings"
	"school-cms-api/internal/slider"
	"school-cms-api/internal/staff"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type app struct {
	Router *gin.Engine
	store  media.Store
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// newApp wires every service onto one gin engine. Gemini and GCS are optional: without a key
// or bucket excerpt generation and media answer 503.
func newApp(ctx context.Context, cfg config.Config, db *gorm.DB, log *zap.Logger) (*app, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "If-None-Match", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"ETag", "Last-Modified", "Content-Disposition", middlewares.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	a := &app{Router: r}

	var gen assistant.Generator
	if cfg.GeminiKey != "" {
		g, err := assistant.NewGeminiGenerator(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		gen = g
	} else {
		log.Info("GEMINI_KEY not set, excerpt generation is disabled")
	}

	if cfg.GCSBucket != "" {
		store, err := media.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, err
		}
		a.store = store
	} else {
		log.Warn("GCS_BUCKET not set, media uploads are disabled")
	}

	logService := &activitylog.LogService{DB: db}
	activitylog.RegisterRoutes(r, logService)

	authService := &auth.AuthService{DB: db, CFG: &cfg}
	auth.RegisterRoutes(r, authService, logService, cfg.Env == "production")

	category.RegisterRoutes(r, category.NewCategoryService(db), logService)
	post.RegisterRoutes(r, post.NewPostService(db, gen), logService)
	announcement.RegisterRoutes(r, announcement.NewAnnouncementService(db), logService)
	staff.RegisterRoutes(r, staff.NewStaffService(db), logService)
	facility.RegisterRoutes(r, facility.NewFacilityService(db), logService)
	extra.RegisterRoutes(r, extra.NewExtraService(db), logService)
	gallery.RegisterRoutes(r, gallery.NewGalleryService(db), logService)
	slider.RegisterRoutes(r, slider.NewSliderService(db), logService)

	settingsService := settings.NewSettingsService(db)
	settings.RegisterRoutes(r, settingsService, logService)

	dashboard.RegisterRoutes(r, dashboard.NewDashboardService(db, logService))
	export.RegisterRoutes(r, export.NewExportService(db), logService)
	seo.RegisterRoutes(r, seo.NewSEOService(db, settingsService, cfg.SiteURL))

	media.RegisterRoutes(r, media.NewMediaService(a.store), logService)

	return a, nil
}
