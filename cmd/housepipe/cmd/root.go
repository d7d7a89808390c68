package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"house-price-pipeline/internal/config"
)

var rootCmd = &cobra.Command{
	Use:               "housepipe",
	Short:             "house-price model training and evaluation jobs",
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the CLI. Job failures exit non-zero; the error-log files are
// written by the failing subcommand before it returns.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// changedString returns the flag value only when the user explicitly set it,
// so environment variables still apply to untouched flags.
func changedString(cmd *cobra.Command, name string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return ""
}

// logEnvironment records the orchestration-injected path overrides for
// debugging precedence issues.
func logEnvironment() {
	log.WithFields(log.Fields{
		config.EnvModelDir:     os.Getenv(config.EnvModelDir),
		config.EnvTrainChannel: os.Getenv(config.EnvTrainChannel),
		config.EnvTestChannel:  os.Getenv(config.EnvTestChannel),
		config.EnvOutputDir:    os.Getenv(config.EnvOutputDir),
	}).Debug("orchestration environment")
}
