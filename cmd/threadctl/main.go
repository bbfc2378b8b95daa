package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/metaphy/threadctl/internal/config"
	"github.com/metaphy/threadctl/internal/storage"
	"github.com/metaphy/threadctl/internal/thread"
)

const version = "1.0.0"

var (
	cfgFile string
	dbPath  string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "threadctl",
	Short: "Reconstruct conversation threads from a comms database",
	Long: `threadctl rebuilds complete conversation threads from a flat message
store: given any message, it traces backward to the thread origin and
forward through all replies.

Threads can be exported as markdown, JSON, or plain text, and discovered
by topic, by participant, or by a significance scan over all thread roots.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}

		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
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
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".threadctl.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// openStore opens the configured message store. Callers own the returned
// store and must close it.
func openStore() (storage.Store, error) {
	return storage.NewStore(&storage.Config{Path: cfg.DBPath})
}

// newEngine builds a discovery engine with the configured tuning.
func newEngine(store storage.Store) *thread.Engine {
	return thread.NewEngine(store, thread.EngineConfig{
		ScanCandidateCap: cfg.ScanCandidateCap,
		ScanParallelism:  cfg.ScanParallelism,
	}, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", iconError, err)
		os.Exit(1)
	}
}
