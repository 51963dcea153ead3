package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/search"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the feed and print matching jobs",
	Long: "Fetches the feed and keeps jobs whose title, company, location or type\n" +
		"contains the query (case-insensitive). With no query every job is listed.",
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print matches as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)
	cfg := loadConfig(logger)
	query := strings.Join(args, " ")

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	jobs, err := fetchJobs(cmd.Context(), cfg, logger)
	if err != nil {
		return feedError(logger, err)
	}
	savedIDs, err := st.SavedIDs()
	if err != nil {
		return err
	}
	applied, err := st.AppliedIDs()
	if err != nil {
		return err
	}

	matched := search.Filter(model.WithSavedState(jobs, savedIDs), query)
	logger.Debug("search done", "query", query, "fetched", len(jobs), "matched", len(matched))

	out := cmd.OutOrStdout()
	if searchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(matched)
	}
	if len(matched) == 0 {
		if strings.TrimSpace(query) == "" {
			fmt.Fprintln(out, "No jobs available.")
		} else {
			fmt.Fprintf(out, "No jobs match %q.\n", strings.TrimSpace(query))
		}
		return nil
	}
	fmt.Fprintln(out, jobsTable(matched, applied))
	fmt.Fprintf(out, "%d of %d jobs\n", len(matched), len(jobs))
	return nil
}
