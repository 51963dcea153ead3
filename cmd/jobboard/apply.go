package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/apply"
	"github.com/amishk599/jobboard/internal/model"
)

var applyForm apply.Form

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a job",
	Long: "Records an application for a job. Every field is required, the email must be\n" +
		"valid, the contact number needs at least 10 digits or separators and the\n" +
		"motivation at least 50 characters.",
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyForm.Name, "name", "", "full name")
	applyCmd.Flags().StringVar(&applyForm.Email, "email", "", "email address")
	applyCmd.Flags().StringVar(&applyForm.Phone, "phone", "", "contact number")
	applyCmd.Flags().StringVar(&applyForm.WhyHireYou, "why", "", "why should they hire you")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	logger := setupLogger(os.Stderr, debug)
	cfg := loadConfig(logger)

	// Validate before touching the network so typos fail fast.
	if err := applyForm.Validate(); err != nil {
		var verr *apply.ValidationError
		if errors.As(err, &verr) {
			for _, field := range []string{"name", "email", "phone", "why"} {
				if msg, ok := verr.Fields[field]; ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "  --%s: %s\n", field, msg)
				}
			}
		}
		return errors.New("application not submitted")
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	job, err := findJob(cmd.Context(), cfg, st, logger, args[0])
	if err != nil {
		return err
	}

	app, err := apply.Submit(st, job, applyForm, time.Now())
	if errors.Is(err, model.ErrAlreadyApplied) {
		return fmt.Errorf("you already applied to %s at %s", job.Title, job.Company)
	}
	if err != nil {
		return err
	}
	logger.Debug("application recorded", "id", app.ID, "job_id", app.JobID)
	fmt.Fprintf(cmd.OutOrStdout(), "Application submitted for %s at %s\n", app.JobTitle, app.Company)
	return nil
}
