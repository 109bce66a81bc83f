// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

const (
	ResultVerified = "verified"
	ResultFailed   = "failed"
)

var (
	// VerificationsTotal counts finished verifications by result label.
	VerificationsTotal = NewCounterVec(
		"verifications_total", "Finished verification jobs", []string{"result"})

	// InProgress tracks the number of builds currently running.
	InProgress = NewGaugeVec(
		"verifications_in_progress", "Verification jobs currently building", nil)
)
