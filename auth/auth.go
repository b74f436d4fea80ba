// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPassword = errors.New("invalid admin password")
	ErrInvalidSecret   = errors.New("invalid admin secret")
	ErrInvalidToken    = errors.New("invalid or expired token")
)

// TokenPrefix marks admin bearer tokens so they are recognizable in
// logs and local storage without revealing anything.
const TokenPrefix = "adm_"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateVoucherID creates a voucher ID in the V-xxxxxxxx form the
// web client renders as a manual entry code.
func GenerateVoucherID() (string, error) {
	id, err := GenerateID(6)
	if err != nil {
		return "", err
	}
	return "V-" + id, nil
}

// GenerateHubID creates an ID for an admin-created hub.
func GenerateHubID() (string, error) {
	id, err := GenerateID(6)
	if err != nil {
		return "", err
	}
	return "hub-" + id, nil
}

// GenerateAdminToken creates a random secure bearer token.
func GenerateAdminToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate admin token: %w", err)
	}
	// URL-safe base64 without padding
	return TokenPrefix + strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// CheckPassword compares a submitted password against the shared admin
// password in constant time.
func CheckPassword(submitted, expected string) error {
	if !hmac.Equal([]byte(submitted), []byte(expected)) {
		return ErrInvalidPassword
	}
	return nil
}

// CheckSecret compares the machine reset secret in constant time.
// A separate secret from the human admin password so the scheduled
// reset job never holds a login credential.
func CheckSecret(submitted, expected string) error {
	if expected == "" || !hmac.Equal([]byte(submitted), []byte(expected)) {
		return ErrInvalidSecret
	}
	return nil
}

// BearerToken extracts the token from an Authorization header value.
// Returns an empty string if the header is not a bearer scheme.
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
