// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package processor schedules pending verifications and drives each one
// through claim, chain check, build and result recording.
package processor

import (
	"context"
	"sync/atomic"
	"time"

	goerrors "errors"

	"github.com/gear-tech/sails-program-verifier/pkg/builder"
	"github.com/gear-tech/sails-program-verifier/pkg/chain"
	"github.com/gear-tech/sails-program-verifier/pkg/database"
	"github.com/gear-tech/sails-program-verifier/pkg/database/model"
	"github.com/gear-tech/sails-program-verifier/pkg/errors"
	"github.com/gear-tech/sails-program-verifier/pkg/hash"
	"github.com/gear-tech/sails-program-verifier/pkg/logger/log"
	"github.com/gear-tech/sails-program-verifier/pkg/metrics"
)

const (
	reasonUnsupportedNetwork = "Unsupported network"
	reasonCodeNotOnChain     = "Code doesn't exist on chain"
	reasonBuildFailedPrefix  = "Failed to build project. "
	reasonCodeIDMismatch     = "Code ID mismatch"
)

type Processor struct {
	verifications database.VerificationFacadeInterface
	codes         database.CodeFacadeInterface
	idls          database.IdlFacadeInterface
	builder       builder.Interface
	chains        *chain.Registry

	inProgress    atomic.Int64
	maxInProgress int64
	checkInterval time.Duration
}

func New(
	verifications database.VerificationFacadeInterface,
	codes database.CodeFacadeInterface,
	idls database.IdlFacadeInterface,
	bld builder.Interface,
	chains *chain.Registry,
	maxInProgress int64,
	checkInterval time.Duration,
) *Processor {
	return &Processor{
		verifications: verifications,
		codes:         codes,
		idls:          idls,
		builder:       bld,
		chains:        chains,
		maxInProgress: maxInProgress,
		checkInterval: checkInterval,
	}
}

// Run polls for pending verifications until ctx is cancelled. A tick that
// arrives while a previous dispatch is still filling slots simply finds
// fewer free slots, the in-progress counter keeps the cap exact.
func (p *Processor) Run(ctx context.Context) {
	log.Infof("Processor started: interval=%s, max in progress=%d", p.checkInterval, p.maxInProgress)

	p.dispatchPending(ctx)

	ticker := time.NewTicker(p.checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Infof("Processor stopped")
			return
		case <-ticker.C:
			p.dispatchPending(ctx)
		}
	}
}

func (p *Processor) dispatchPending(ctx context.Context) {
	free := p.maxInProgress - p.inProgress.Load()
	if free <= 0 {
		return
	}

	pending, err := p.verifications.ListPending(ctx, int(free))
	if err != nil {
		log.Errorf("Failed to list pending verifications: %v", err)
		return
	}

	for _, v := range pending {
		p.inProgress.Add(1)
		metrics.InProgress.Inc()
		go func(v *model.Verification) {
			defer func() {
				p.inProgress.Add(-1)
				metrics.InProgress.Dec()
			}()
			p.process(ctx, v)
		}(v)
	}
}

// process runs one verification end to end. Store failures are logged and
// leave the row in_progress; the startup reset requeues such jobs.
func (p *Processor) process(ctx context.Context, v *model.Verification) {
	log.Infof("Processing verification %s (code %s)", v.ID, v.CodeID)

	if err := p.verifications.UpdateStatus(ctx, v.ID, model.StatusInProgress, nil); err != nil {
		log.Errorf("Failed to claim verification %s: %v", v.ID, err)
		return
	}

	// The code may have been verified by an earlier job while this one
	// waited in the queue.
	existing, err := p.codes.Get(ctx, v.CodeID)
	if err != nil {
		log.Errorf("Failed to look up code %s: %v", v.CodeID, err)
		return
	}
	if existing != nil {
		p.finish(ctx, v, model.StatusVerified, nil)
		return
	}

	// Another job for the same code is building right now. Requeue this one
	// so it can short-circuit on the next pass.
	duplicate, err := p.verifications.AnyInProgressForCode(ctx, v.CodeID, v.ID)
	if err != nil {
		log.Errorf("Failed to check in-flight duplicates for %s: %v", v.CodeID, err)
		return
	}
	if duplicate {
		log.Infof("Verification %s deferred, code %s already building", v.ID, v.CodeID)
		if err := p.verifications.UpdateStatus(ctx, v.ID, model.StatusPending, nil); err != nil {
			log.Errorf("Failed to requeue verification %s: %v", v.ID, err)
		}
		return
	}

	probe, err := p.chains.Get(v.Network)
	if err != nil {
		p.fail(ctx, v, reasonUnsupportedNetwork)
		return
	}
	exists, err := probe.CodeExists(ctx, v.CodeID)
	if err != nil {
		log.Errorf("Chain probe failed for %s: %v", v.CodeID, err)
		exists = false
	}
	if !exists {
		p.fail(ctx, v, reasonCodeNotOnChain)
		return
	}

	artifacts, err := p.builder.Build(ctx, v)
	p.builder.Cleanup(ctx, v.ID)
	if err != nil {
		p.fail(ctx, v, reasonBuildFailedPrefix+causeOf(err))
		return
	}

	if artifacts.CodeID != v.CodeID {
		log.Warnf("Verification %s built %s, expected %s", v.ID, artifacts.CodeID, v.CodeID)
		p.fail(ctx, v, reasonCodeIDMismatch)
		return
	}

	code := &model.Code{
		ID:       v.CodeID,
		Name:     artifacts.Name,
		RepoLink: v.RepoLink,
	}
	if artifacts.Idl != nil {
		idlHash := hash.Text(*artifacts.Idl)
		if err := p.idls.Save(ctx, &model.Idl{ID: idlHash, Content: *artifacts.Idl}); err != nil {
			log.Errorf("Failed to save idl for %s: %v", v.ID, err)
			return
		}
		code.IdlHash = &idlHash
	}
	if err := p.codes.Create(ctx, code); err != nil {
		log.Errorf("Failed to save code %s: %v", v.CodeID, err)
		return
	}

	p.finish(ctx, v, model.StatusVerified, nil)
}

func (p *Processor) fail(ctx context.Context, v *model.Verification, reason string) {
	log.Warnf("Verification %s failed: %s", v.ID, reason)
	p.finish(ctx, v, model.StatusFailed, &reason)
}

func (p *Processor) finish(ctx context.Context, v *model.Verification, status model.VerificationStatus, reason *string) {
	if err := p.verifications.UpdateStatus(ctx, v.ID, status, reason); err != nil {
		log.Errorf("Failed to set verification %s to %s: %v", v.ID, status, err)
		return
	}
	switch status {
	case model.StatusVerified:
		metrics.VerificationsTotal.Inc(metrics.ResultVerified)
		log.Infof("Verification %s succeeded", v.ID)
	case model.StatusFailed:
		metrics.VerificationsTotal.Inc(metrics.ResultFailed)
	}
}

// causeOf extracts the human-readable message carried by coded errors, so
// failure reasons stay free of stack noise.
func causeOf(err error) string {
	var coded *errors.Error
	if goerrors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	return err.Error()
}
