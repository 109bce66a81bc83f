// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package version

// Version is the release string reported by GET /version.
// Overridden at build time with -ldflags "-X .../pkg/version.Version=...".
var Version = "0.2.0"
