package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/browse"
	"github.com/amishk599/jobboard/internal/model"
)

var cancelYes bool

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "Manage your applications",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications, newest first",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsList,
}

var applicationsCancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Withdraw an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsCancel,
}

func init() {
	applicationsCancelCmd.Flags().BoolVarP(&cancelYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(applicationsCmd)
	applicationsCmd.AddCommand(applicationsListCmd, applicationsCancelCmd)
}

func runApplicationsList(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)
	cfg := loadConfig(logger)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	apps, err := st.Applications()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(apps) == 0 {
		fmt.Fprintln(out, "No applications yet.")
		return nil
	}
	fmt.Fprintln(out, applicationsTable(apps, time.Now()))
	return nil
}

func runApplicationsCancel(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)
	cfg := loadConfig(logger)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	apps, err := st.Applications()
	if err != nil {
		return err
	}
	var app *model.Application
	for i := range apps {
		if matchesID(apps[i].JobID, args[0]) {
			app = &apps[i]
			break
		}
	}
	if app == nil {
		return fmt.Errorf("no application for job %q", args[0])
	}

	if !cancelYes {
		ok, err := browse.RunConfirm(fmt.Sprintf("Withdraw your application to %s at %s?", app.JobTitle, app.Company))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Kept your application.")
			return nil
		}
	}

	if _, err := st.CancelApplication(app.JobID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Withdrew your application to %s\n", app.JobTitle)
	return nil
}
