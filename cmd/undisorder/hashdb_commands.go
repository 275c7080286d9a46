package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHashDBCommand(ctx *commandContext) *cobra.Command {
	hashdbCmd := &cobra.Command{
		Use:   "hashdb",
		Short: "Maintain the deduplication index of a target collection",
	}
	hashdbCmd.AddCommand(newHashDBRebuildCommand(ctx))
	hashdbCmd.AddCommand(newHashDBStatsCommand(ctx))
	return hashdbCmd
}

func newHashDBRebuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild TARGET",
		Short: "Rehash every file of TARGET and replace its index entries",
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
			unlock, err := lockIndex(cfg)
			if err != nil {
				return err
			}
			defer unlock()

			store, target, err := openTargetIndex(runCtx, cfg, args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rebuilding hash index for %s ...\n", target)
			count, err := store.Rebuild(runCtx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Indexed %d file(s).\n", count)
			return nil
		},
	}
}

func newHashDBStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats TARGET",
		Short: "Show index counts for TARGET",
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

			files, err := store.Count(runCtx)
			if err != nil {
				return err
			}
			imports, err := store.ImportCount(runCtx)
			if err != nil {
				return err
			}
			dupes, err := store.FindDuplicates(runCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Target", store.Target()},
				{"Index", store.Path()},
				{"Files", strconv.Itoa(files)},
				{"Import records", strconv.Itoa(imports)},
				{"Duplicated hashes", strconv.Itoa(len(dupes))},
			}
			fmt.Fprintf(out, "Index statistics for %s\n", target)
			fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}
