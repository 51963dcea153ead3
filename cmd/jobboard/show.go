package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show one job in detail",
	Long:  "Prints a job with its description, requirements and benefits cleaned for the terminal.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)
	cfg := loadConfig(logger)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	job, err := findJob(cmd.Context(), cfg, st, logger, args[0])
	if err != nil {
		return err
	}
	if job.IsSaved, err = st.IsSaved(job.ID); err != nil {
		return err
	}
	app, err := st.ApplicationFor(job.ID)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderJobDetail(job, app, time.Now()))
	return nil
}
