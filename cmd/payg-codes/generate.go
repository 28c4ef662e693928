package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/config"
	"github.com/akyairhashvil/payg-unlock/internal/entitlement"
	"github.com/akyairhashvil/payg-unlock/internal/util"
	"github.com/akyairhashvil/payg-unlock/internal/voucher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const maxGenerateCount = 1000

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		from    int64
		count   int
		pdfPath string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate unlock codes for this device",
		Long: `Generate prints count unlock codes starting at counter --from. By default
it continues after the highest code already redeemed. With --pdf the codes
are also written to a voucher sheet; pass "-" to use the vouchers directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 || count > maxGenerateCount {
				return fmt.Errorf("--count must be between 1 and %d", maxGenerateCount)
			}
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
			state, err := e.db.LoadEntitlementState(ctx)
			if err != nil {
				return err
			}
			start := from
			if start < 0 {
				start = state.HighestCounter + 1
			}
			key, err := util.DeriveDeviceKey(secret, state.DeviceID)
			if err != nil {
				return err
			}
			codes, err := entitlement.GenerateCodes(key, start, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Device %s\n", state.DeviceID)
			for _, c := range codes {
				fmt.Fprintf(out, "%6d  %s\n", c.Counter, c.Value)
			}
			if lookAhead := int64(e.cfg.PAYG.LookAhead); start > state.HighestCounter+lookAhead {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: codes start beyond the device's look-ahead window (%d)\n", lookAhead)
			}

			if pdfPath == "" {
				return nil
			}
			path := pdfPath
			if path == "-" {
				path = filepath.Join(util.VoucherDir(config.AppName), voucher.FileName(state.DeviceID, start))
			}
			sheet := voucher.Sheet{
				DeviceID:      state.DeviceID,
				Codes:         codes,
				CreditPerCode: e.cfg.PAYG.CreditPerCode,
				GeneratedAt:   time.Now(),
			}
			if err := voucher.WriteFile(path, sheet); err != nil {
				return fmt.Errorf("write voucher: %w", err)
			}
			e.log.Info("voucher written", zap.String("path", path), zap.Int("codes", len(codes)))
			fmt.Fprintf(out, "Voucher sheet written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().Int64Var(&from, "from", -1, "first HOTP counter (default: after the highest redeemed code)")
	cmd.Flags().IntVar(&count, "count", 10, "number of codes to generate")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write a PDF voucher sheet to this path")
	return cmd
}
