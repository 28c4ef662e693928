package main

import (
	"fmt"

	"github.com/akyairhashvil/payg-unlock/internal/entitlement"
	"github.com/spf13/cobra"
)

func newUnlockResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock-reset",
		Short: "Clear an active lockout and the failed-attempt count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			secret, err := resolveSecret(cmd, e.cfg)
			if err != nil {
				return err
			}
			mgr := entitlement.New(e.db, secret, entitlement.PolicyFromConfig(e.cfg.PAYG), e.log)
			if err := mgr.Init(ctx); err != nil {
				return err
			}
			if err := mgr.ClearLockout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Lockout cleared.")
			return nil
		},
	}
}
