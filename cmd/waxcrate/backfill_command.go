package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"waxcrate/internal/backfill"
	"waxcrate/internal/logging"
)

func newBackfillCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun   bool
		full     bool
		testN    int
		limitN   int
		yes      bool
		userID   string
		recordID string
	)

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Refresh stored records from Discogs",
		Long: `Refresh the reconciled fields of stored records from Discogs.

A dry run (the default unless --full or --test is given) writes two CSV
reports instead of modifying the database. Live runs update records and
rebuild the relational credit tables; user-owned fields are preserved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(userID) == "" && recordID == "" {
				return fmt.Errorf("--user-id is required (or --record-id for a single record)")
			}

			limit := 0
			live := false
			switch {
			case full:
				live = true
			case testN > 0:
				live = true
				limit = testN
			case dryRun:
			default:
				dryRun = true
			}
			if limitN > 0 {
				limit = limitN
			}
			if live && !yes {
				if err := confirm(cmd, limit); err != nil {
					return err
				}
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			svc, err := ctx.lookupService()
			if err != nil {
				return err
			}
			// A dry run must not mutate the database, so even the
			// category seeding waits for a live run.
			if !dryRun {
				table, err := ctx.categoryTable()
				if err != nil {
					return err
				}
				if _, err := st.SeedCategories(cmd.Context(), table); err != nil {
					return err
				}
			}

			runner, err := backfill.NewRunner(st, svc, logging.WithComponent(logger, "backfill"), backfill.Options{
				DryRun:          dryRun,
				Limit:           limit,
				UserID:          userID,
				RecordID:        recordID,
				RequestInterval: time.Duration(cfg.Backfill.RequestInterval) * time.Millisecond,
				CSVDir:          cfg.Backfill.CSVDir,
				LockPath:        cfg.LockPath(),
			})
			if err != nil {
				return err
			}

			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Dry run complete: %d records compared\n", summary.Processed)
				fmt.Fprintf(out, "  comparison: %s\n", summary.ComparisonPath)
				fmt.Fprintf(out, "  full data:  %s\n", summary.FullDataPath)
			} else {
				fmt.Fprintf(out, "Updated %d of %d records\n", summary.Updated, summary.Processed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compare without writing, producing CSV reports")
	cmd.Flags().BoolVar(&full, "full", false, "Update every selected record")
	cmd.Flags().IntVar(&testN, "test", 0, "Update only the first N records")
	cmd.Flags().IntVar(&limitN, "limit", 0, "Cap the number of records processed in any mode")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&userID, "user-id", "", "Collection owner id")
	cmd.Flags().StringVar(&recordID, "record-id", "", "Restrict the run to one record id")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "full", "test")
	cmd.MarkFlagsMutuallyExclusive("test", "limit")

	return cmd
}

// confirm asks before a live run. Non-interactive invocations must pass
// --yes explicitly.
func confirm(cmd *cobra.Command, limit int) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("refusing to update records non-interactively; pass --yes to proceed")
	}

	scope := "ALL selected records"
	if limit > 0 {
		scope = fmt.Sprintf("the first %d records", limit)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "This will update %s in the database. Continue? [y/N] ", scope)

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		return fmt.Errorf("aborted")
	}
	return nil
}
