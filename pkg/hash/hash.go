// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package hash computes the BLAKE2b-256 digests used as code and idl
// identifiers, and normalizes user-supplied code ids.
package hash

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/gear-tech/sails-program-verifier/pkg/errors"
)

// Bytes returns the BLAKE2b-256 digest of data as lower-case hex.
func Bytes(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Text returns the BLAKE2b-256 digest of s as lower-case hex.
func Text(s string) string {
	return Bytes([]byte(s))
}

// ValidateCodeID normalizes a user-supplied code id: an optional 0x prefix
// is stripped and the remainder must be exactly 64 hex characters. The
// returned id is lower-case without a prefix.
func ValidateCodeID(id string) (string, error) {
	trimmed := strings.TrimPrefix(id, "0x")
	if len(trimmed) != 64 {
		return "", errors.NewError().
			WithCode(errors.CodeInvalidCodeId).
			WithMessagef("Invalid code id: %s", id)
	}
	if _, err := hex.DecodeString(trimmed); err != nil {
		return "", errors.NewError().
			WithCode(errors.CodeInvalidCodeId).
			WithMessagef("Invalid code id: %s", id).
			WithError(err)
	}
	return strings.ToLower(trimmed), nil
}
