package util

import (
	"crypto/sha256"
	"encoding/base32"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/crypto/hkdf"
)

const (
	deviceKeyInfo  = "payg-unlock hotp v1"
	deviceKeyBytes = 20
	minSecretLen   = 16
)

var ErrEmptyDeviceID = errors.New("device id is empty")

// DeriveDeviceKey expands the operator's master secret into the base32 HOTP
// key for one device. The same master yields unrelated keys per device.
func DeriveDeviceKey(master, deviceID string) (string, error) {
	if err := ValidateMasterSecret(master); err != nil {
		return "", err
	}
	if strings.TrimSpace(deviceID) == "" {
		return "", ErrEmptyDeviceID
	}
	r := hkdf.New(sha256.New, []byte(master), []byte(deviceID), []byte(deviceKeyInfo))
	key := make([]byte, deviceKeyBytes)
	if _, err := io.ReadFull(r, key); err != nil {
		return "", fmt.Errorf("derive device key: %w", err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(key), nil
}

func ValidateMasterSecret(secret string) error {
	if len(secret) < minSecretLen {
		return fmt.Errorf("secret must be at least %d characters", minSecretLen)
	}
	var hasLetter, hasDigit bool
	for _, r := range secret {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("secret must contain letters and digits")
	}
	return nil
}
