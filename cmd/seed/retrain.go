package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var retrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Retrain the difficulty model from stored results",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		ctx := context.Background()
		defer a.Close(ctx)

		if a.ModelCache == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: REDIS_URI not set, the trained model will not be persisted")
		}

		results, err := a.ResultRepo.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("load results: %w", err)
		}

		pred := a.Predictor(ctx)
		if err := pred.Train(ctx, results); err != nil {
			return fmt.Errorf("train: %w", err)
		}

		m := pred.Current()
		fmt.Fprintf(cmd.OutOrStdout(), "trained on %d results: mediumCut=%.1f hardCut=%.1f\n",
			m.Samples, m.MediumCut, m.HardCut)
		return nil
	},
}
