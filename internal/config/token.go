// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for alice.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/jeranaias/alice-tui/internal/util"
)

// =============================================================================
// TOKEN STORE
// =============================================================================

// The bearer token is stored encrypted at rest under a key derived from a
// machine identifier, so a copied token file is useless on another host.
// File layout: salt (16 bytes) || nonce (24 bytes) || AEAD ciphertext.

const tokenSaltSize = 16

// scrypt parameters: interactive-grade, the threat model is a lifted file,
// not an online oracle.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// machineSecret builds the key-derivation input from stable host identity.
func machineSecret() []byte {
	host, err := os.Hostname()
	if err != nil {
		host = "alice"
	}
	return []byte(host + ":" + strconv.Itoa(os.Getuid()))
}

// deriveKey stretches the machine secret with the per-file salt.
func deriveKey(salt []byte) ([]byte, error) {
	return scrypt.Key(machineSecret(), salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
}

// SaveToken encrypts and stores the bearer token.
func SaveToken(token string) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := TokenPath()
	if err != nil {
		return err
	}

	salt := make([]byte, tokenSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	key, err := deriveKey(salt)
	if err != nil {
		return fmt.Errorf("failed to derive token key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	blob := make([]byte, 0, tokenSaltSize+len(nonce)+len(token)+aead.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = aead.Seal(blob, nonce, []byte(token), nil)

	return util.AtomicWriteFile(path, blob, 0o600)
}

// LoadToken decrypts the stored bearer token. A missing file returns the
// empty token with no error; a corrupt or foreign file returns an error.
func LoadToken() (string, error) {
	path, err := TokenPath()
	if err != nil {
		return "", err
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}

	if len(blob) < tokenSaltSize+chacha20poly1305.NonceSizeX {
		return "", errors.New("token file is truncated")
	}
	salt := blob[:tokenSaltSize]
	nonce := blob[tokenSaltSize : tokenSaltSize+chacha20poly1305.NonceSizeX]
	ciphertext := blob[tokenSaltSize+chacha20poly1305.NonceSizeX:]

	key, err := deriveKey(salt)
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}

	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.New("token file cannot be decrypted on this machine")
	}
	return string(plain), nil
}

// ClearToken removes the stored token. Missing files are fine.
func ClearToken() error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
