package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"undisorder/internal/config"
	"undisorder/internal/hasher"
	"undisorder/internal/scanner"
)

func newDupesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dupes SOURCE",
		Short: "List byte-identical files in a source directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cfg)
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source: %w", err)
			}
			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanning %s ...\n", source)
			result, err := scanner.Scan(runCtx, source)
			if err != nil {
				return err
			}
			files := result.All()
			fmt.Fprintf(out, "Found %d files (%d photos, %d videos, %d audio)\n",
				len(files), len(result.Photos), len(result.Videos), len(result.Audios))
			if len(files) == 0 {
				fmt.Fprintln(out, "No files found.")
				return nil
			}

			groups, err := hasher.FindDuplicates(runCtx, files, logger)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Fprintln(out, "No duplicates found.")
				return nil
			}

			fmt.Fprintf(out, "\nFound %d duplicate group(s):\n\n", len(groups))
			for i, group := range groups {
				fmt.Fprintf(out, "  Group %d (%d files, %s):\n", i+1, len(group.Paths), scanner.FormatSize(group.Size))
				for _, path := range group.Paths {
					fmt.Fprintf(out, "    %s\n", path)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
