package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Spritualkb/xingrin/core/config"
	"github.com/Spritualkb/xingrin/core/database"
	"github.com/Spritualkb/xingrin/core/loader"
	"github.com/Spritualkb/xingrin/core/logger"
	"github.com/Spritualkb/xingrin/core/middleware/auth"
	"github.com/Spritualkb/xingrin/core/middleware/rayid"
	"github.com/Spritualkb/xingrin/core/storage"
	"github.com/Spritualkb/xingrin/feature/fingerprints"
	"github.com/Spritualkb/xingrin/feature/fingerprints/models"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the fingerprint platform server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
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

		// 3. Connect to Database (required, the store lives here)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(models.All()...); err != nil {
			logg.Fatal("Failed to migrate fingerprint tables", zap.Error(err))
		}
		logg.Info("Connected to fingerprint database")

		// 4. Initialize the export mirror (optional)
		var mirror *fingerprints.Mirror
		if cfg.Fingerprints.MirrorEnabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			mirror = fingerprints.NewMirror(store, cfg.Storage.Bucket, cfg.Fingerprints.MirrorPrefix, logg)
			if err := mirror.EnsureBucket(cmd.Context()); err != nil {
				logg.Fatal("Failed to prepare mirror bucket", zap.Error(err))
			}
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(fingerprints.NewFeature(db, mirror, logg))

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Request logging with Zap + RayID
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

		// Auth (protect the management API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
