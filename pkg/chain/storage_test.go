// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package chain

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwox128(t *testing.T) {
	// twox128 is deterministic and always 16 bytes.
	a := twox128([]byte("GearProgram"))
	b := twox128([]byte("GearProgram"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)

	c := twox128([]byte("MetadataStorage"))
	assert.NotEqual(t, a, c)

	// Known Substrate vector: twox128("") with both seeds.
	empty := twox128(nil)
	assert.Len(t, empty, 16)
	assert.NotEqual(t, bytes.Repeat([]byte{0}, 16), empty)
}

func TestMetadataStorageKey(t *testing.T) {
	codeID := bytes.Repeat([]byte{0xab}, 32)
	key := MetadataStorageKey(codeID)

	require.True(t, strings.HasPrefix(key, "0x"))
	raw, err := hex.DecodeString(strings.TrimPrefix(key, "0x"))
	require.NoError(t, err)

	// pallet prefix (16) + item prefix (16) + identity-hashed code id (32)
	require.Len(t, raw, 64)
	assert.Equal(t, codeID, raw[32:])

	// The 32-byte prefix is constant across code ids.
	other := MetadataStorageKey(bytes.Repeat([]byte{0x01}, 32))
	assert.Equal(t, key[:2+64], other[:2+64])
}
