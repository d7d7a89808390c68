package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"house-price-pipeline/internal/artifact"
	"house-price-pipeline/internal/config"
	"house-price-pipeline/internal/trainer"
)

var trainDescription = "fit the house-price model and persist the artifact"

var trainCmd = &cobra.Command{
	Use:   "train [flags]",
	Short: trainDescription,
	Long:  trainDescription,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.FlagOverrides{
			TrainData: changedString(cmd, "train-data"),
			ModelDir:  changedString(cmd, "model-dir"),
		})
		if err != nil {
			return err
		}
		initLogger(cfg)
		logEnvironment()

		t := trainer.New(cfg.Paths.TrainData, cfg.Paths.ModelDir)
		if err := t.Run(cmd.Context()); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"train_data": cfg.Paths.TrainData,
				"model_dir":  cfg.Paths.ModelDir,
			}).Error("training job failed")
			artifact.WriteFailureLog(cfg.Paths.ModelDir, artifact.TrainErrorLog, err)
			return err
		}
		return nil
	},
}

func init() {
	flags := trainCmd.Flags()
	flags.String("train-data", config.DefaultTrainData, "training channel: a directory of CSV parts or a single CSV file")
	flags.String("model-dir", config.DefaultModelDir, "directory the model artifact is written to")

	rootCmd.AddCommand(trainCmd)
}
