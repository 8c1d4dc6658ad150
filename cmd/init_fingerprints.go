package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/Spritualkb/xingrin/core/config"
	"github.com/Spritualkb/xingrin/core/database"
	"github.com/Spritualkb/xingrin/core/logger"
	"github.com/Spritualkb/xingrin/feature/fingerprints"
	"github.com/Spritualkb/xingrin/feature/fingerprints/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// builtinSeeds lists the fingerprint files shipped with the platform image.
// Only the variants with bundled data are seeded; the rest start empty and
// are populated through the import API.
var builtinSeeds = []struct {
	variant  fingerprints.Variant
	filename string
}{
	{fingerprints.VariantEhole, "ehole.json"},
	{fingerprints.VariantGoby, "goby.json"},
	{fingerprints.VariantWappalyzer, "wappalyzer.json"},
}

// initFingerprintsCmd seeds an empty database with the built-in libraries.
// It is safe to re-run: variants that already hold data are skipped.
var initFingerprintsCmd = &cobra.Command{
	Use:   "init-fingerprints",
	Short: "Seed the database with the built-in fingerprint libraries",
	Long: `Imports the bundled EHole, Goby and Wappalyzer fingerprint files into an
empty database. Variants that already contain records are left untouched, so
the command can run on every container start.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(models.All()...); err != nil {
			logg.Fatal("Failed to migrate fingerprint tables", zap.Error(err))
		}

		svc := fingerprints.NewService(db, nil, logg)
		runInitFingerprints(cmd.Context(), svc, cfg.Fingerprints.BuiltinDir, logg)
	},
}

func runInitFingerprints(ctx context.Context, svc *fingerprints.Service, dir string, logg *zap.Logger) {
	var initialized, skipped, failed int

	for _, seed := range builtinSeeds {
		l := logg.With(zap.String("variant", string(seed.variant)))

		existing, err := svc.Count(ctx, seed.variant)
		if err != nil {
			l.Error("Failed to count existing records", zap.Error(err))
			failed++
			continue
		}
		if existing > 0 {
			l.Info("Variant already seeded, skipping", zap.Int64("records", existing))
			skipped++
			continue
		}

		path := filepath.Join(dir, seed.filename)
		data, err := os.ReadFile(path)
		if err != nil {
			l.Warn("Built-in fingerprint file not found, skipping", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}

		result, err := svc.ImportFile(ctx, seed.variant, seed.filename, data)
		if err != nil {
			l.Error("Seed import failed", zap.Error(err))
			failed++
			continue
		}
		l.Info("Seed import finished",
			zap.Int("created", result.Created),
			zap.Int("failed", result.Failed),
		)
		initialized++
	}

	logg.Info("Fingerprint initialization complete",
		zap.Int("initialized", initialized),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
}

func init() {
	RootCmd.AddCommand(initFingerprintsCmd)
}
