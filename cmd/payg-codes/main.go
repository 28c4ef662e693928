// Command payg-codes is the operator tool for pay-as-you-go devices: it
// issues unlock codes, prints voucher sheets and inspects or resets the
// device's entitlement state.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akyairhashvil/payg-unlock/internal/config"
	"github.com/akyairhashvil/payg-unlock/internal/database"
	"github.com/akyairhashvil/payg-unlock/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	dataDir string
	verbose bool
}

// env is what every subcommand needs once flags are parsed.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	closeLog func() error
	db       *database.Database
}

func (o *rootOptions) open(ctx context.Context) (*env, error) {
	if err := os.MkdirAll(o.dataDir, 0o755); err != nil {
		return nil, err
	}
	cfg, err := config.Load(o.dataDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	log, closeLog, err := util.NewLogger("", level)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	return &env{cfg: cfg, log: log, closeLog: closeLog, db: db}, nil
}

func (e *env) Close() {
	util.LogError(e.log, "close database", e.db.Close())
	_ = e.closeLog()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "payg-codes",
		Short: "Issue and audit pay-as-you-go unlock codes",
		Long: `payg-codes generates unlock codes for this device, exports them as
printable voucher sheets, and shows or resets the entitlement state that
the payg-unlock lock screen enforces.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", util.DataDir(config.AppName), "directory holding config.yaml and the database")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newGenerateCmd(opts),
		newStatusCmd(opts),
		newHistoryCmd(opts),
		newUnlockResetCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
