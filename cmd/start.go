package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"contentsync/core/config"
	"contentsync/core/database"
	"contentsync/core/loader"
	"contentsync/core/logger"
	"contentsync/core/middleware/auth"
	"contentsync/core/middleware/rayid"
	"contentsync/core/scheduler"
	"contentsync/core/storage"
	"contentsync/core/store"

	"contentsync/feature/organizations"
	"contentsync/feature/persons"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the content sync server",
	Long:  `Starts the HTTP server, the sync schedules and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to the database", zap.Error(err))
		}
		if err := store.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate the entity table", zap.Error(err))
		}

		// 4. Initialize Storage
		storageClient, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Build Features
		orgFeature, err := organizations.NewFeature(cfg.Organizations, db, storageClient, cfg.Storage.Bucket, logg)
		if err != nil {
			logg.Fatal("Failed to build the organizations feature", zap.Error(err))
		}
		personFeature, err := persons.NewFeature(cfg.Persons, db, storageClient, cfg.Storage.Bucket, logg)
		if err != nil {
			logg.Fatal("Failed to build the persons feature", zap.Error(err))
		}

		mgr := loader.NewManager(logg)
		mgr.Register(orgFeature)
		mgr.Register(personFeature)

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Auth protects every sync trigger
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Schedule Sync Runs
		sched := scheduler.New(logg)
		if orgFeature.IsEnabled() {
			err = sched.Add(cfg.Sync.FullSpec, "organizations full sync", func(ctx context.Context) error {
				_, err := orgFeature.Service().UpdateAll(ctx)
				return err
			})
			if err != nil {
				logg.Fatal("Failed to schedule the organization sync", zap.Error(err))
			}
			err = sched.Add(cfg.Sync.AvailabilitySpec, "availability sync", func(ctx context.Context) error {
				_, err := orgFeature.Service().UpdateAvailability(ctx)
				return err
			})
			if err != nil {
				logg.Fatal("Failed to schedule the availability sync", zap.Error(err))
			}
		}
		if personFeature.IsEnabled() {
			err = sched.Add(cfg.Sync.FullSpec, "persons full sync", func(ctx context.Context) error {
				_, err := personFeature.Service().UpdateAll(ctx)
				return err
			})
			if err != nil {
				logg.Fatal("Failed to schedule the person sync", zap.Error(err))
			}
		}
		sched.Start()

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		sched.Stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
