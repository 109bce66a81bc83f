// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package errors

import (
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorChaining(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := NewError().
		WithCode(CodeChainError).
		WithMessage("node unreachable").
		WithError(inner)

	assert.Equal(t, CodeChainError, err.Code)
	assert.Contains(t, err.Error(), "node unreachable")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, inner, goerrors.Unwrap(err))
	assert.NotEmpty(t, err.GetTopStackString())
}

func TestWrapError(t *testing.T) {
	err := WrapError(fmt.Errorf("boom"), "failed to save", CodeDatabaseError)
	assert.Equal(t, CodeDatabaseError, CodeOf(err))
	assert.Equal(t, "failed to save", err.Message)
}

func TestWithMessagef(t *testing.T) {
	err := NewError().WithCode(CodeInvalidCodeId).WithMessagef("Invalid code id: %s", "0xzz")
	assert.Equal(t, "Invalid code id: 0xzz", err.Message)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, 0, CodeOf(nil))
	assert.Equal(t, 0, CodeOf(fmt.Errorf("plain")))
	assert.Equal(t, CodeNotFound, CodeOf(WrapMessage("missing", CodeNotFound)))
}

func TestIsBadRequest(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{CodeBadRequest, true},
		{CodeUnsupportedVersion, true},
		{CodeUnsupportedNetwork, true},
		{CodeInvalidCodeId, true},
		{CodeNotFound, false},
		{CodeDatabaseError, false},
		{CodeBuildError, false},
	}
	for _, tt := range tests {
		err := WrapMessage("x", tt.code)
		assert.Equal(t, tt.want, IsBadRequest(err), "code %d", tt.code)
	}
	assert.False(t, IsBadRequest(fmt.Errorf("plain")))
}

func TestIsNotFound(t *testing.T) {
	require.True(t, IsNotFound(WrapMessage("missing", CodeNotFound)))
	require.False(t, IsNotFound(WrapMessage("bad", CodeBadRequest)))
}
