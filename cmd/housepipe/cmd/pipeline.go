package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"house-price-pipeline/internal/config"
	"house-price-pipeline/internal/pipeline"
)

var pipelineDescription = "build the train/evaluate pipeline definition and submit it to the orchestrator"

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [flags]",
	Short: pipelineDescription,
	Long:  pipelineDescription,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.FlagOverrides{})
		if err != nil {
			return err
		}
		initLogger(cfg)

		name, _ := cmd.Flags().GetString("pipeline-name")
		bucket, _ := cmd.Flags().GetString("default-bucket")
		inputDataURI, _ := cmd.Flags().GetString("input-data-uri")
		outPath, _ := cmd.Flags().GetString("output")
		start, _ := cmd.Flags().GetBool("start")

		p := pipeline.Build(pipeline.BuildOptions{
			Name:          name,
			DefaultBucket: bucket,
			InputDataURI:  inputDataURI,
		})

		// Without an orchestrator endpoint the definition is only rendered.
		if cfg.Orchestrator.URL == "" || outPath != "" {
			def, err := p.Definition()
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(def))
				return nil
			}
			if err := os.WriteFile(outPath, def, 0o644); err != nil {
				return fmt.Errorf("write definition to %s: %w", outPath, err)
			}
			log.WithField("path", outPath).Info("wrote pipeline definition")
			return nil
		}

		client := pipeline.NewClient(cfg.Orchestrator.URL, cfg.Orchestrator.Timeout)
		ctx := cmd.Context()

		if err := client.Upsert(ctx, p); err != nil {
			return err
		}
		log.WithField("pipeline", p.Name).Info("upserted pipeline")

		if !start {
			return nil
		}
		params := map[string]string{}
		if inputDataURI != "" {
			params["InputDataUri"] = inputDataURI
		}
		exec, err := client.Start(ctx, p.Name, params)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"pipeline":  exec.Pipeline,
			"execution": exec.ID,
		}).Info("started pipeline execution")
		return nil
	},
}

func init() {
	flags := pipelineCmd.Flags()
	flags.String("pipeline-name", pipeline.DefaultName, "name of the pipeline")
	flags.String("default-bucket", "", "bucket used for default data and evaluation locations")
	flags.String("input-data-uri", "", "data URI for training and evaluation; overrides the pipeline parameter")
	flags.String("output", "", "write the definition JSON to this file instead of submitting")
	flags.Bool("start", false, "start an execution after upserting the definition")

	rootCmd.AddCommand(pipelineCmd)
}
