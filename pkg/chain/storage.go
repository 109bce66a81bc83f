// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package chain

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/pierrec/xxHash/xxHash64"
)

var metadataStoragePrefix = append(
	twox128([]byte("GearProgram")),
	twox128([]byte("MetadataStorage"))...,
)

// twox128 is the Substrate TwoX-128 hasher: two xxhash64 passes with seeds
// 0 and 1, each encoded little-endian.
func twox128(data []byte) []byte {
	out := make([]byte, 16)
	binary.LittleEndian.PutUint64(out[:8], xxHash64.Checksum(data, 0))
	binary.LittleEndian.PutUint64(out[8:], xxHash64.Checksum(data, 1))
	return out
}

// MetadataStorageKey builds the hex storage key for a code id under
// GearProgram.MetadataStorage. The map uses the Identity hasher, so the raw
// 32 bytes are appended to the twox128 pallet and item prefixes as-is.
func MetadataStorageKey(codeID []byte) string {
	key := make([]byte, 0, len(metadataStoragePrefix)+len(codeID))
	key = append(key, metadataStoragePrefix...)
	key = append(key, codeID...)
	return "0x" + hex.EncodeToString(key)
}
