package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"house-price-pipeline/internal/artifact"
	"house-price-pipeline/internal/config"
	"house-price-pipeline/internal/evaluator"
)

var evaluateDescription = "score the trained model against the test channel and persist metrics.json"

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [flags]",
	Short: evaluateDescription,
	Long:  evaluateDescription,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.FlagOverrides{
			ModelDir:  changedString(cmd, "model-dir"),
			TestData:  changedString(cmd, "test-data"),
			OutputDir: changedString(cmd, "output-dir"),
		})
		if err != nil {
			return err
		}
		initLogger(cfg)
		logEnvironment()

		e := evaluator.New(cfg.Paths.ModelDir, cfg.Paths.TestData, cfg.Paths.OutputDir)
		if err := e.Run(cmd.Context()); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"model_dir":  cfg.Paths.ModelDir,
				"test_data":  cfg.Paths.TestData,
				"output_dir": cfg.Paths.OutputDir,
			}).Error("evaluation job failed")
			artifact.WriteFailureLog(cfg.Paths.OutputDir, artifact.EvaluationErrorLog, err)
			return err
		}
		return nil
	},
}

func init() {
	flags := evaluateCmd.Flags()
	flags.String("model-dir", config.DefaultModelDir, "directory holding the model artifact or an archived bundle")
	flags.String("test-data", config.DefaultTestData, "test channel: a directory of CSV parts or a single CSV file")
	flags.String("output-dir", config.DefaultOutputDir, "directory the metrics record is written to")

	rootCmd.AddCommand(evaluateCmd)
}
