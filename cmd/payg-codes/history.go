package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent verification attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			attempts, err := e.db.RecentAttempts(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(attempts) == 0 {
				fmt.Fprintln(out, "No attempts recorded.")
				return nil
			}
			for _, a := range attempts {
				counter := "-"
				if a.Counter != nil {
					counter = fmt.Sprintf("%d", *a.Counter)
				}
				fmt.Fprintf(out, "%s  %-16s %s\n", formatTime(a.CreatedAt), a.Outcome, counter)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of attempts to show")
	return cmd
}
