package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"waxcrate/internal/logging"
	"waxcrate/internal/projection"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var (
		userID string
		dryRun bool
		testN  int
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Project stored credit structures into the relational tables",
		Long: `Walk every stored record and project its categorized musicians
structure into the contributors, categories and contributions tables.
Safe to re-run; existing rows are updated in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(userID) == "" {
				return fmt.Errorf("--user-id is required")
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.WithComponent(logger, "migrate")

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			table, err := ctx.categoryTable()
			if err != nil {
				return err
			}
			if !dryRun {
				seeded, err := st.SeedCategories(cmd.Context(), table)
				if err != nil {
					return err
				}
				if seeded > 0 {
					logger.Info("categories seeded", "inserted", seeded)
				}
			}

			records, err := st.ListRecords(cmd.Context(), userID, 0)
			if err != nil {
				return err
			}

			var (
				migrated      int
				skipped       int
				credits       int
				contributors  int
				contributions int
			)
			for _, record := range records {
				if len(record.Musicians) == 0 {
					skipped++
					continue
				}
				if testN > 0 && migrated >= testN {
					break
				}
				if dryRun {
					migrated++
					credits += record.Musicians.Count()
					continue
				}
				result, err := projection.Project(cmd.Context(), st, record.Musicians, record.ID, record.UserID, logger)
				if err != nil {
					return fmt.Errorf("record %s (%s - %s): %w", record.ID, record.Artist, record.Album, err)
				}
				migrated++
				contributors += result.ContributorsCreated
				contributions += result.ContributionsWritten
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Dry run: %d records carrying %d credits would be migrated (%d without credits skipped)\n",
					migrated, credits, skipped)
				return nil
			}
			fmt.Fprintf(out, "Migrated %d records (%d without credits skipped)\n", migrated, skipped)
			fmt.Fprintf(out, "Contributors created: %d, contributions written: %d\n", contributors, contributions)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "Collection owner id")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Count what would be migrated without writing")
	cmd.Flags().IntVar(&testN, "test", 0, "Migrate only the first N records with credits")
	return cmd
}
