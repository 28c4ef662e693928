package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format(timeLayout)
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the device's entitlement state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			state, err := e.db.LoadEntitlementState(ctx)
			if err != nil {
				return err
			}
			used, err := e.db.GetUsedCodes(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			remaining := time.Duration(0)
			if state.ExpiresAt.After(now) {
				remaining = state.ExpiresAt.Sub(now).Truncate(time.Second)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Device:          %s\n", state.DeviceID)
			fmt.Fprintf(out, "Enabled:         %t\n", e.cfg.PAYG.Enabled)
			fmt.Fprintf(out, "Expires:         %s\n", formatTime(state.ExpiresAt))
			fmt.Fprintf(out, "Remaining:       %s\n", remaining)
			fmt.Fprintf(out, "Codes redeemed:  %d\n", len(used))
			fmt.Fprintf(out, "Highest counter: %d\n", state.HighestCounter)
			fmt.Fprintf(out, "Failed attempts: %d\n", state.FailedAttempts)
			fmt.Fprintf(out, "Lockouts:        %d\n", state.Lockouts)
			if state.LockoutUntil.After(now) {
				fmt.Fprintf(out, "Locked out until %s\n", formatTime(state.LockoutUntil))
			}
			return nil
		},
	}
}
