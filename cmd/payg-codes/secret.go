package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/akyairhashvil/payg-unlock/internal/config"
	"github.com/akyairhashvil/payg-unlock/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// resolveSecret returns the configured master secret, prompting for it when
// none is configured and stdin is a terminal.
func resolveSecret(cmd *cobra.Command, cfg *config.Config) (string, error) {
	secret := cfg.PAYG.Secret
	if secret == "" {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", config.ErrMissingSecret
		}
		var err error
		secret, err = promptForSecret(cmd, fd, "Master secret: ")
		if err != nil {
			return "", err
		}
	}
	if err := util.ValidateMasterSecret(secret); err != nil {
		return "", err
	}
	return secret, nil
}

func promptForSecret(cmd *cobra.Command, fd int, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	return strings.TrimSpace(string(pass)), err
}
