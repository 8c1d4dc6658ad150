package cmd

import (
	"fmt"
	"os"

	"github.com/Spritualkb/xingrin/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "xingrin",
	Short: "Xingrin Fingerprint Platform",
	Long: `Xingrin manages the fingerprint libraries used by scan workers to
recognize running web technologies. It imports third-party rule sets (EHole,
Goby, Wappalyzer, Fingers, FingerPrintHub, ARL), stores them centrally and
redistributes them to workers with version-gated local caching.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives readable timestamps for a
		// CLI tool; the structured logger keeps the output consistent with
		// the server.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
