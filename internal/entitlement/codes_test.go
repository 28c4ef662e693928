package entitlement

import (
	"testing"

	"github.com/akyairhashvil/payg-unlock/internal/util"
)

func TestValidateFormat(t *testing.T) {
	cases := []struct {
		code  string
		valid bool
	}{
		{"12345678", true},
		{"00000000", true},
		{"1234567", false},
		{"123456789", false},
		{"1234567a", false},
		{"", false},
		{"１２３４５６７８", false},
	}
	for _, tc := range cases {
		if got := ValidateFormat(tc.code); got != tc.valid {
			t.Fatalf("ValidateFormat(%q) = %v, want %v", tc.code, got, tc.valid)
		}
	}
}

func TestGenerateCodesMatchWithinWindow(t *testing.T) {
	key, err := util.DeriveDeviceKey(testMaster, "device-1")
	if err != nil {
		t.Fatalf("DeriveDeviceKey failed: %v", err)
	}
	codes, err := GenerateCodes(key, 10, 3)
	if err != nil {
		t.Fatalf("GenerateCodes failed: %v", err)
	}
	if len(codes) != 3 || codes[0].Counter != 10 || codes[2].Counter != 12 {
		t.Fatalf("unexpected codes: %+v", codes)
	}
	for _, c := range codes {
		if !ValidateFormat(c.Value) {
			t.Fatalf("generated code %q has wrong format", c.Value)
		}
	}

	counter, match, err := matchCode(key, codes[1].Value, 20, nil)
	if err != nil || match != matchFresh || counter != 11 {
		t.Fatalf("matchCode = %d, %v, %v", counter, match, err)
	}
	_, match, err = matchCode(key, codes[1].Value, 10, nil)
	if err != nil || match != noMatch {
		t.Fatalf("expected no match below counter 11, got %v, %v", match, err)
	}
	counter, match, err = matchCode(key, codes[1].Value, 20, map[int64]bool{11: true})
	if err != nil || match != matchUsed || counter != 11 {
		t.Fatalf("expected used match, got %d, %v, %v", counter, match, err)
	}
}

func TestGenerateCodesRejectsNegativeCounter(t *testing.T) {
	if _, err := GenerateCodes("JBSWY3DPEHPK3PXP", -1, 1); err == nil {
		t.Fatalf("expected error for negative counter")
	}
}

func TestEventString(t *testing.T) {
	if EventInitialized.String() != "initialized" || EventExpiryTimeChanged.String() != "expiry-time-changed" {
		t.Fatalf("unexpected event names")
	}
	if Event(0).String() != "unknown" {
		t.Fatalf("expected unknown for zero event")
	}
}
