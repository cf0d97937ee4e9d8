// Command aria is the voice-assistant core: it classifies utterances into
// intents, dispatches them concurrently, and manages durable reminders and
// timers.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aria/internal/config"
	"aria/internal/logging"
)

var version = "1.0.0"

var (
	logger     *zap.Logger
	cfg        *config.Config
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "aria",
	Short: "Aria - voice assistant orchestrator core",
	Long: `Aria turns natural-language requests into actions: opening sites,
searching, writing content, generating images, answering questions with
live information, and managing durable reminders and timers.

Run without arguments to start the interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logFile := cfg.Logging.File
		if logFile != "" && !filepath.IsAbs(logFile) {
			logFile = filepath.Join(cfg.Storage.DataDir, logFile)
		}
		logger, err = logging.New(logging.Options{Level: level, File: logFile})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(timersCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aria %s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
