package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bslcheck/config"
	"bslcheck/internal/logging"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "bslcheck",
	Short: "Convention checks for 1C:Enterprise BSL modules",
	Long: `bslcheck scans a directory of .bsl modules and reports functions without
a return statement, managed form methods without a compilation directive and
client/server methods that drifted apart. Problems in lines touched by the
last commit are reported separately.

Example usage:
  bslcheck check src/MyProcessor     # Check a source tree
  bslcheck methods Form/Module.bsl   # Show how a module is parsed`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <src-root>/bslcheck.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
}

// loadConfig reads --config when given, otherwise the config found in dir,
// and builds the logger from it.
func loadConfig(dir string) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromDir(dir)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logging.Setup(os.Stderr, level), nil
}
