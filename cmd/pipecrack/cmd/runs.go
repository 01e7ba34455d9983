package cmd

import (
	"fmt"

	"github.com/solatis/pipecrack/internal/core/db"
	"github.com/solatis/pipecrack/internal/types"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, or show one run's ranked hits",
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().Int("limit", 20, "number of runs to list")
	runsCmd.Flags().String("run", "", "run ID: print that run's hits instead of the run list")
}

func runRuns(cmd *cobra.Command, args []string) error {
	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}
	database, err := db.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	store, err := db.NewStore(database)
	if err != nil {
		return err
	}

	if runFlag, _ := cmd.Flags().GetString("run"); runFlag != "" {
		id, err := types.ParseRunID(runFlag)
		if err != nil {
			return fmt.Errorf("invalid run ID %q: %w", runFlag, err)
		}
		run, err := store.GetRun(id)
		if err != nil {
			return err
		}
		fmt.Printf("[pipeline] %s\n", run.Pipeline)
		hits, err := store.RunHits(id)
		if err != nil {
			return err
		}
		for _, h := range hits {
			fmt.Printf("%.3f meta=%s\n", h.Score, h.Meta)
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %-30s keys=%d tuples=%d hits=%d failed_chunks=%d %s\n",
			r.RunID, r.Pipeline, r.KeyCount, r.TotalTuples, r.HitCount, r.FailedChunks, r.CreatedAt)
	}
	return nil
}
