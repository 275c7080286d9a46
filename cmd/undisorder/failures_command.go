package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"undisorder/internal/importer"
)

func newFailuresCommand(ctx *commandContext) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "failures",
		Short: "Show batches that failed during earlier imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			records, err := importer.ReadFailures(cfg.Paths.FailureLog)
			if err != nil {
				return fmt.Errorf("read failure log: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No failed batches recorded.")
				return nil
			}
			if last > 0 && len(records) > last {
				records = records[len(records)-last:]
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
					rec.MediaType,
					rec.SourceDir,
					strconv.Itoa(len(rec.Files)),
					rec.ErrorType,
					truncate(rec.ErrorMessage, 60),
				})
			}
			fmt.Fprintf(out, "Failure log: %s\n", cfg.Paths.FailureLog)
			fmt.Fprintln(out, renderTable(out,
				[]string{"Time", "Media", "Source dir", "Files", "Type", "Error"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&last, "last", "n", 20, "Show only the most recent N entries (0 for all)")
	return cmd
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}
