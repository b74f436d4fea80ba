// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"6 bytes", 6, 12},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateVoucherID(t *testing.T) {
	id, err := GenerateVoucherID()
	if err != nil {
		t.Fatalf("GenerateVoucherID() error = %v", err)
	}
	if !strings.HasPrefix(id, "V-") {
		t.Errorf("GenerateVoucherID() = %q, want V- prefix", id)
	}
	if len(id) != len("V-")+12 {
		t.Errorf("GenerateVoucherID() length = %d, want %d", len(id), len("V-")+12)
	}

	id2, _ := GenerateVoucherID()
	if id == id2 {
		t.Error("GenerateVoucherID() produced duplicate IDs")
	}
}

func TestGenerateHubID(t *testing.T) {
	id, err := GenerateHubID()
	if err != nil {
		t.Fatalf("GenerateHubID() error = %v", err)
	}
	if !strings.HasPrefix(id, "hub-") {
		t.Errorf("GenerateHubID() = %q, want hub- prefix", id)
	}
}

func TestGenerateAdminToken(t *testing.T) {
	token, err := GenerateAdminToken()
	if err != nil {
		t.Fatalf("GenerateAdminToken() error = %v", err)
	}

	if !strings.HasPrefix(token, TokenPrefix) {
		t.Errorf("GenerateAdminToken() = %q, want %s prefix", token, TokenPrefix)
	}

	// Should be URL-safe (no padding)
	if strings.Contains(token, "=") {
		t.Error("GenerateAdminToken() contains padding characters")
	}

	token2, _ := GenerateAdminToken()
	if token == token2 {
		t.Error("GenerateAdminToken() produced duplicate tokens")
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		expected  string
		wantErr   bool
	}{
		{"match", "commonkind", "commonkind", false},
		{"mismatch", "wrong", "commonkind", true},
		{"empty submitted", "", "commonkind", true},
		{"case sensitive", "CommonKind", "commonkind", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword(tt.submitted, tt.expected)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckSecret(t *testing.T) {
	if err := CheckSecret("reset-secret", "reset-secret"); err != nil {
		t.Errorf("CheckSecret() with matching secret: %v", err)
	}
	if err := CheckSecret("wrong", "reset-secret"); err == nil {
		t.Error("CheckSecret() accepted a wrong secret")
	}
	// An unconfigured secret must never validate, even against an
	// empty submission.
	if err := CheckSecret("", ""); err == nil {
		t.Error("CheckSecret() accepted an empty configured secret")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer adm_abc123", "adm_abc123"},
		{"lowercase scheme", "bearer adm_abc123", "adm_abc123"},
		{"missing scheme", "adm_abc123", ""},
		{"empty header", "", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BearerToken(tt.header); got != tt.want {
				t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
