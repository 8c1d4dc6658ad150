package cmd

import (
	"log"

	"github.com/Spritualkb/xingrin/core/config"
	"github.com/Spritualkb/xingrin/core/database"
	"github.com/Spritualkb/xingrin/core/logger"
	"github.com/Spritualkb/xingrin/feature/fingerprints"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd refreshes the local fingerprint cache files used by scan workers.
// Without arguments it syncs every variant; otherwise only the named ones.
var syncCmd = &cobra.Command{
	Use:   "sync [variant...]",
	Short: "Refresh local fingerprint cache files from the database",
	Long: `Exports fingerprint libraries to the local cache directory so that scan
tooling can read them from disk. Files are rewritten only when the stored
content has changed since the last sync.`,
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

		variants := fingerprints.AllVariants()
		if len(args) > 0 {
			variants = variants[:0]
			for _, arg := range args {
				v, err := fingerprints.ParseVariant(arg)
				if err != nil {
					logg.Fatal("Unknown fingerprint variant", zap.String("variant", arg))
				}
				variants = append(variants, v)
			}
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		svc := fingerprints.NewService(db, nil, logg)
		cache := fingerprints.NewCacheManager(cfg.Fingerprints.BasePath, svc.Store(), svc.Engine(), logg)

		paths := cache.EnsureAll(cmd.Context(), variants)
		for v, path := range paths {
			logg.Info("Fingerprint cache ready",
				zap.String("variant", string(v)),
				zap.String("path", path),
			)
		}
		if len(paths) < len(variants) {
			logg.Warn("Some variants could not be synced",
				zap.Int("requested", len(variants)),
				zap.Int("synced", len(paths)),
			)
		}
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
