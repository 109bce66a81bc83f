// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gear-tech/sails-program-verifier/pkg/errors"
)

// BLAKE2b-256 of the empty input, from the reference test vectors.
const emptyDigest = "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"

func TestBytes(t *testing.T) {
	assert.Equal(t, emptyDigest, Bytes(nil))
	assert.Equal(t, emptyDigest, Bytes([]byte{}))

	digest := Bytes([]byte("some wasm blob"))
	assert.Len(t, digest, 64)
	assert.Equal(t, strings.ToLower(digest), digest)
	assert.Equal(t, digest, Bytes([]byte("some wasm blob")))
	assert.NotEqual(t, digest, Bytes([]byte("some other blob")))
}

func TestText(t *testing.T) {
	assert.Equal(t, emptyDigest, Text(""))
	assert.Equal(t, Bytes([]byte("constructor New;")), Text("constructor New;"))
}

func TestValidateCodeID(t *testing.T) {
	valid := strings.Repeat("ab", 32)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "plain lower-case id",
			input: valid,
			want:  valid,
		},
		{
			name:  "0x prefix is stripped",
			input: "0x" + valid,
			want:  valid,
		},
		{
			name:  "upper-case is normalized",
			input: strings.ToUpper(valid),
			want:  valid,
		},
		{
			name:    "too short",
			input:   valid[:63],
			wantErr: true,
		},
		{
			name:    "too long",
			input:   valid + "a",
			wantErr: true,
		},
		{
			name:    "non-hex characters",
			input:   strings.Repeat("zz", 32),
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "prefix only",
			input:   "0x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCodeID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.CodeInvalidCodeId))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Validation is idempotent on its own output.
			again, err := ValidateCodeID(got)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}
