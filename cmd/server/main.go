package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school-cms-api/config"
	"school-cms-api/internal/auth"
	"school-cms-api/internal/category"
	"school-cms-api/internal/database"
	"school-cms-api/internal/logger"
	"school-cms-api/internal/settings"
	"school-cms-api/internal/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	verbose     bool
	autoMigrate bool

	adminEmail    string
	adminName     string
	adminPassword string

	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "school-cms",
	Short: "School website CMS API",
	Long: `school-cms serves the public and admin JSON APIs of the school website.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadConfig()

		var err error
		log, err = logger.New(cfg.Env, verbose)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("migration finished")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert default settings and categories that are missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		n, err := settings.NewSettingsService(db).Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		c, err := category.NewCategoryService(db).Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		log.Info("seed finished", zap.Int("settings", n), zap.Int("categories", c))
		return nil
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(adminPassword) < 8 {
			return errors.New("password must be at least 8 characters")
		}
		db, err := openDB()
		if err != nil {
			return err
		}

		svc := &auth.AuthService{DB: db, CFG: &cfg}
		hashed, err := util.HashPassword(adminPassword)
		if err != nil {
			return err
		}
		user, err := svc.CreateUser(auth.User{Name: adminName, Email: adminEmail, Password: hashed, Role: auth.RoleAdmin})
		if err != nil {
			return err
		}
		log.Info("admin created", zap.Uint("id", user.ID), zap.String("email", user.Email))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Run migrations before serving")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Run migrations before serving")

	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email (required)")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Administrator", "Display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Initial password (required)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	return database.Open(cfg, log)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB()
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	app, err := newApp(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
