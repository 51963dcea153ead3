package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved jobs",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved jobs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSavedList,
}

var savedAddCmd = &cobra.Command{
	Use:   "add <job-id>",
	Short: "Save a job from the feed",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedAdd,
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a saved job",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedRemove,
}

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd, savedAddCmd, savedRemoveCmd)
}

func runSavedList(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)
	cfg := loadConfig(logger)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, err := st.SavedJobs()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(saved) == 0 {
		fmt.Fprintln(out, "No saved jobs yet.")
		return nil
	}
	fmt.Fprintln(out, savedTable(saved, time.Now()))
	return nil
}

func runSavedAdd(cmd *cobra.Command, args []string) error {
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
	if err := st.SaveJob(job); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s at %s\n", job.Title, job.Company)
	return nil
}

func runSavedRemove(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)
	cfg := loadConfig(logger)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, err := st.SavedJobs()
	if err != nil {
		return err
	}
	for _, s := range saved {
		if matchesID(s.Job.ID, args[0]) {
			if err := st.UnsaveJob(s.Job.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from saved jobs\n", s.Job.Title)
			return nil
		}
	}
	return fmt.Errorf("no saved job with id %q", args[0])
}
