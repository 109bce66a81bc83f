// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package errors

/*
   Error code convention: [x][yyy]
   4xxx request validation, 5xxx internal/storage, 6xxx external
   collaborators (docker daemon, chain nodes), 7xxx initialization.
*/

const (
	CodeBadRequest         int = 4001
	CodeNotFound           int = 4004
	CodeUnsupportedVersion int = 4010
	CodeUnsupportedNetwork int = 4011
	CodeInvalidCodeId      int = 4012

	CodeInternalError int = 5000
	CodeDatabaseError int = 5002

	CodeDockerError int = 6001
	CodeChainError  int = 6002
	CodeBuildError  int = 6003

	CodeInitializeError int = 7001
	CodeLackOfConfig    int = 7002
)

// CodeOf extracts the numeric code from an *Error; 0 for foreign errors.
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 0
}

func IsCode(err error, code int) bool {
	return CodeOf(err) == code
}

func IsBadRequest(err error) bool {
	switch CodeOf(err) {
	case CodeBadRequest, CodeUnsupportedVersion, CodeUnsupportedNetwork, CodeInvalidCodeId:
		return true
	}
	return false
}

func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}
