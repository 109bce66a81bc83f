// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package main

import (
	"context"

	"github.com/gear-tech/sails-program-verifier/pkg/bootstrap"
	"github.com/gear-tech/sails-program-verifier/pkg/logger/log"
)

func main() {
	if err := bootstrap.Run(context.Background()); err != nil {
		log.Fatalf("verifier exited: %v", err)
	}
}
