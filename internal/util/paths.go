package util

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDir is where the database, log and optional config.yaml live:
// $XDG_DATA_HOME/<app>, else ~/.local/share/<app>.
func DataDir(app string) string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, ".local", "share", app)
}

// VoucherDir is the default destination for printed code sheets.
func VoucherDir(app string) string {
	return filepath.Join(DocumentsDir(), strings.ToUpper(app), "vouchers")
}

func DocumentsDir() string {
	return userDir("XDG_DOCUMENTS_DIR", "Documents")
}

// userDir resolves an XDG user directory from the environment, then
// ~/.config/user-dirs.dirs, then ~/<fallback>.
func userDir(key, fallback string) string {
	if base := strings.TrimSpace(os.Getenv(key)); base != "" {
		return expandHome(base)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	if data, err := os.ReadFile(filepath.Join(home, ".config", "user-dirs.dirs")); err == nil {
		if dir := parseUserDir(string(data), key); dir != "" {
			return expandHome(dir)
		}
	}
	return filepath.Join(home, fallback)
}

func parseUserDir(data, key string) string {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if value, ok := strings.CutPrefix(line, key+"="); ok {
			return strings.Trim(value, "\"")
		}
	}
	return ""
}

func expandHome(path string) string {
	if !strings.Contains(path, "$HOME") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return strings.ReplaceAll(path, "$HOME", "")
	}
	return strings.ReplaceAll(path, "$HOME", home)
}
