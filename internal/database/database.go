// Package database opens the gorm connection and owns the schema migration.
package database

import (
	"fmt"
	"time"

	"school-cms-api/config"
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/announcement"
	"school-cms-api/internal/auth"
	"school-cms-api/internal/category"
	"school-cms-api/internal/extra"
	"school-cms-api/internal/facility"
	"school-cms-api/internal/gallery"
	"school-cms-api/internal/post"
	"school-cms-api/internal/settings"
	"school-cms-api/internal/slider"
	"school-cms-api/internal/staff"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to postgres, or to a sqlite file when DB_DRIVER=sqlite.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	case "postgres", "":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  newGormLogger(cfg.Env, log),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func newGormLogger(env string, log *zap.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if env == "production" {
		level = gormlogger.Error
	}
	return gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&auth.User{},
		&auth.OTP{},
		&category.Category{},
		&staff.Staff{},
		&post.Post{},
		&announcement.Announcement{},
		&facility.Facility{},
		&extra.Extra{},
		&gallery.Gallery{},
		&gallery.GalleryImage{},
		&slider.Slider{},
		&settings.Setting{},
		&activitylog.ActivityLog{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
