package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check TARGET",
		Short: "Report content stored more than once in a target collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}
			store, target, err := openTargetIndex(runCtx, cfg, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			dupes, err := store.FindDuplicates(runCtx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(dupes) == 0 {
				fmt.Fprintf(out, "No duplicates found in %s.\n", target)
				return nil
			}

			fmt.Fprintf(out, "Found %d hash(es) with duplicate files in %s:\n", len(dupes), target)
			rows := make([][]string, 0, len(dupes))
			for _, dupe := range dupes {
				records, err := store.GetByHash(runCtx, dupe.Hash)
				if err != nil {
					return err
				}
				for i, rec := range records {
					hash, count := "", ""
					if i == 0 {
						hash = shortHash(dupe.Hash)
						count = strconv.Itoa(dupe.Count)
					}
					rows = append(rows, []string{hash, count, rec.FilePath})
				}
			}
			fmt.Fprintln(out, renderTable(out, []string{"Hash", "Copies", "Path"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
			return nil
		},
	}
}

func shortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12] + "..."
}
