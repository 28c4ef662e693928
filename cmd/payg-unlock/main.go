package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/config"
	"github.com/akyairhashvil/payg-unlock/internal/database"
	"github.com/akyairhashvil/payg-unlock/internal/entitlement"
	"github.com/akyairhashvil/payg-unlock/internal/tui"
	"github.com/akyairhashvil/payg-unlock/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitUnlocked = 0
	exitError    = 1
	exitLocked   = 2
)

func main() {
	code, err := run(context.Background(), util.DataDir(config.AppName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, dataDir string) (int, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return exitError, err
	}
	cfg, err := config.Load(dataDir)
	if err != nil {
		return exitError, fmt.Errorf("load config: %w", err)
	}
	if !cfg.PAYG.Enabled {
		fmt.Println("Pay-as-you-go is disabled on this device.")
		return exitUnlocked, nil
	}
	if cfg.PAYG.Secret == "" {
		return exitError, config.ErrMissingSecret
	}
	if err := util.ValidateMasterSecret(cfg.PAYG.Secret); err != nil {
		return exitError, err
	}

	log, closeLog, err := util.NewLogger(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return exitError, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closeLog() }()
	tui.SetTheme(cfg.Theme)

	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return exitError, err
	}
	defer func() { util.LogError(log, "close database", db.Close()) }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	mgr := entitlement.New(db, cfg.PAYG.Secret, entitlement.PolicyFromConfig(cfg.PAYG), log)
	initDone := mgr.Start(ctx)

	model := tui.NewLockModel(mgr, log, cfg.PAYG.VerifyTimeout)
	p := tea.NewProgram(model, tea.WithAltScreen())

	initErr := make(chan error, 1)
	go func() {
		if err := <-initDone; err != nil {
			initErr <- err
			p.Quit()
		}
	}()

	final, err := p.Run()
	if err != nil {
		return exitError, err
	}
	select {
	case err := <-initErr:
		return exitError, err
	default:
	}

	log.Info("lock screen closed", zap.Duration("time_remaining", mgr.TimeRemaining()))
	return exitCode(final, mgr.TimeRemaining()), nil
}

// exitCode reports success when a code was accepted or credit remains.
func exitCode(final tea.Model, remaining time.Duration) int {
	if m, ok := final.(tui.LockModel); ok && m.Unlocked() {
		return exitUnlocked
	}
	if remaining > 0 {
		return exitUnlocked
	}
	return exitLocked
}
