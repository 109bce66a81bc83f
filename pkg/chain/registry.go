// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package chain

import (
	"sync"

	"github.com/gear-tech/sails-program-verifier/pkg/database/model"
	"github.com/gear-tech/sails-program-verifier/pkg/errors"
)

// Registry maps networks to their probes. Networks without a configured
// endpoint are simply absent.
type Registry struct {
	mu     sync.RWMutex
	probes map[model.Network]Probe
}

func NewRegistry() *Registry {
	return &Registry{probes: map[model.Network]Probe{}}
}

func (r *Registry) Set(network model.Network, probe Probe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes[network] = probe
}

func (r *Registry) Get(network model.Network) (Probe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	probe, ok := r.probes[network]
	if !ok {
		return nil, errors.NewError().
			WithCode(errors.CodeUnsupportedNetwork).
			WithMessagef("no node configured for network %s", network)
	}
	return probe, nil
}

func (r *Registry) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.probes) == 0
}
