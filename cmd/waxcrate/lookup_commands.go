package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"waxcrate/internal/projection"
	"waxcrate/internal/release"
	"waxcrate/internal/store"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "Identify a pressing via Discogs",
	}

	lookupCmd.AddCommand(newLookupBarcodeCommand(ctx))
	lookupCmd.AddCommand(newLookupURLCommand(ctx))
	lookupCmd.AddCommand(newLookupReleaseCommand(ctx))

	return lookupCmd
}

func newLookupBarcodeCommand(ctx *commandContext) *cobra.Command {
	opts := &lookupOptions{}
	cmd := &cobra.Command{
		Use:   "barcode <code>",
		Short: "Look up a pressing by barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.lookupService()
			if err != nil {
				return err
			}
			formatted, err := svc.ByBarcode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return finishLookup(cmd, ctx, formatted, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func newLookupURLCommand(ctx *commandContext) *cobra.Command {
	opts := &lookupOptions{}
	cmd := &cobra.Command{
		Use:   "url <discogs-url>",
		Short: "Look up a pressing by Discogs release or master URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.lookupService()
			if err != nil {
				return err
			}
			formatted, err := svc.ByURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return finishLookup(cmd, ctx, formatted, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func newLookupReleaseCommand(ctx *commandContext) *cobra.Command {
	opts := &lookupOptions{}
	cmd := &cobra.Command{
		Use:   "release <id>",
		Short: "Look up a pressing by Discogs release id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid release id %q", args[0])
			}
			svc, err := ctx.lookupService()
			if err != nil {
				return err
			}
			formatted, err := svc.ByReleaseID(cmd.Context(), id, release.AddedFromManual)
			if err != nil {
				return err
			}
			return finishLookup(cmd, ctx, formatted, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

type lookupOptions struct {
	save    bool
	jsonOut bool
	userID  string
}

func (o *lookupOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.save, "save", false, "Save the result to the collection")
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "Print the result as JSON instead of a table")
	cmd.Flags().StringVar(&o.userID, "user-id", "", "Collection owner id (required with --save)")
}

func finishLookup(cmd *cobra.Command, ctx *commandContext, formatted release.Formatted, opts *lookupOptions) error {
	out := cmd.OutOrStdout()
	if opts.jsonOut {
		encoded, err := json.MarshalIndent(formatted, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(out, string(encoded))
	} else {
		printFormatted(out, formatted)
	}

	if !opts.save {
		return nil
	}
	if strings.TrimSpace(opts.userID) == "" {
		return fmt.Errorf("--save requires --user-id")
	}

	st, err := ctx.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	table, err := ctx.categoryTable()
	if err != nil {
		return err
	}
	if _, err := st.SeedCategories(cmd.Context(), table); err != nil {
		return err
	}

	record := store.NewRecord(opts.userID, formatted)
	if err := st.SaveRecord(cmd.Context(), record); err != nil {
		return err
	}
	result, err := projection.Project(cmd.Context(), st, formatted.Musicians, record.ID, record.UserID, logger)
	if err != nil {
		return err
	}

	// Keep stdout parseable when --json was asked for.
	saveOut := out
	if opts.jsonOut {
		saveOut = cmd.ErrOrStderr()
	}
	fmt.Fprintf(saveOut, "Saved record %s (%d contributors, %d contributions)\n",
		record.ID, result.ContributorsCreated, result.ContributionsWritten)
	return nil
}

func printFormatted(out io.Writer, formatted release.Formatted) {
	rows := [][]string{
		{"Artist", formatted.Artist},
		{"Album", formatted.Album},
		{"Year", intCell(formatted.Year)},
		{"Country", formatted.Country},
		{"Label", formatted.Label},
		{"Catalog #", formatted.CatalogNumber},
		{"Released", formatted.Current.ReleaseDate},
		{"Formats", strings.Join(formatted.Current.Formats, ", ")},
		{"Genres", strings.Join(formatted.Genres, ", ")},
		{"Styles", strings.Join(formatted.Styles, ", ")},
		{"Barcode", formatted.Barcode},
		{"Master", formatted.MasterURL},
		{"Original", formatted.OriginalReleaseURL},
		{"Current", formatted.CurrentReleaseURL},
	}
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows))

	if len(formatted.Musicians) == 0 {
		fmt.Fprintln(out, "No credits found.")
		return
	}
	fmt.Fprintln(out, "\nCredits:")
	headings := make([]string, 0, len(formatted.Musicians))
	for heading := range formatted.Musicians {
		headings = append(headings, heading)
	}
	sort.Strings(headings)
	for _, heading := range headings {
		bucket := formatted.Musicians[heading]
		subheadings := make([]string, 0, len(bucket))
		for subheading := range bucket {
			subheadings = append(subheadings, subheading)
		}
		sort.Strings(subheadings)
		for _, subheading := range subheadings {
			fmt.Fprintf(out, "  %s / %s\n", heading, subheading)
			for _, entry := range bucket[subheading] {
				fmt.Fprintf(out, "    %s\n", entry)
			}
		}
	}
}

func intCell(value int) string {
	if value == 0 {
		return ""
	}
	return strconv.Itoa(value)
}
