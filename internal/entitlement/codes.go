package entitlement

import (
	"fmt"

	"github.com/akyairhashvil/payg-unlock/internal/config"
	"github.com/akyairhashvil/payg-unlock/internal/models"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

var hotpOpts = hotp.ValidateOpts{
	Digits:    otp.DigitsEight,
	Algorithm: otp.AlgorithmSHA1,
}

// ValidateFormat reports whether code has the shape of an unlock code:
// exactly eight ASCII digits.
func ValidateFormat(code string) bool {
	if len(code) != config.CodeDigits {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// GenerateCodes returns count consecutive codes starting at counter from.
func GenerateCodes(deviceKey string, from int64, count int) ([]models.Code, error) {
	if from < 0 {
		return nil, fmt.Errorf("counter must not be negative, got %d", from)
	}
	codes := make([]models.Code, 0, count)
	for c := from; c < from+int64(count); c++ {
		value, err := hotp.GenerateCodeCustom(deviceKey, uint64(c), hotpOpts)
		if err != nil {
			return nil, fmt.Errorf("generate code %d: %w", c, err)
		}
		codes = append(codes, models.Code{Counter: c, Value: value})
	}
	return codes, nil
}

type matchResult int

const (
	noMatch matchResult = iota
	matchFresh
	matchUsed
)

// matchCode searches counters [0, limit] for code, preferring a counter that
// has not been redeemed yet.
func matchCode(deviceKey, code string, limit int64, used map[int64]bool) (int64, matchResult, error) {
	usedCounter := int64(-1)
	for c := int64(0); c <= limit; c++ {
		ok, err := hotp.ValidateCustom(code, uint64(c), deviceKey, hotpOpts)
		if err != nil {
			return 0, noMatch, err
		}
		if !ok {
			continue
		}
		if !used[c] {
			return c, matchFresh, nil
		}
		if usedCounter < 0 {
			usedCounter = c
		}
	}
	if usedCounter >= 0 {
		return usedCounter, matchUsed, nil
	}
	return 0, noMatch, nil
}
