package main

import (
	"adaptivequiz/internal/model"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Import the built-in sample questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		ctx := context.Background()
		defer a.Close(ctx)

		report, err := a.QuestionService().ImportSamples(ctx)
		if err != nil {
			return fmt.Errorf("import samples: %w", err)
		}
		printReport(cmd.OutOrStdout(), "sample", report)
		return nil
	},
}

var opentdbCmd = &cobra.Command{
	Use:   "opentdb",
	Short: "Import computer science questions from the Open Trivia Database",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		if u, _ := cmd.Flags().GetString("url"); u != "" {
			a.Config.Quiz.OpenTDBURL = u
		}
		ctx := context.Background()
		defer a.Close(ctx)

		report, err := a.QuestionService().ImportOpenTDB(ctx)
		if err != nil {
			return fmt.Errorf("import opentdb: %w", err)
		}
		printReport(cmd.OutOrStdout(), "opentdb", report)
		return nil
	},
}

func init() {
	opentdbCmd.Flags().String("url", "", "OpenTDB API URL (overrides OPENTDB_URL)")
}

func printReport(w io.Writer, source string, r *model.ImportReport) {
	fmt.Fprintf(w, "%s: %d available, %d imported, %d skipped, %d failed\n",
		source, r.TotalAvailable, r.Imported, r.Skipped, r.Failed)
}
