// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"

	goerrors "errors"

	"gorm.io/gorm"

	"github.com/gear-tech/sails-program-verifier/pkg/database/model"
	"github.com/gear-tech/sails-program-verifier/pkg/errors"
)

type VerificationFacadeInterface interface {
	Create(ctx context.Context, v *model.Verification) error
	Get(ctx context.Context, id string) (*model.Verification, error)
	UpdateStatus(ctx context.Context, id string, status model.VerificationStatus, failedReason *string) error
	ListPending(ctx context.Context, limit int) ([]*model.Verification, error)
	ResetInProgress(ctx context.Context) (int64, error)
	AnyInProgressForCode(ctx context.Context, codeID, exceptID string) (bool, error)
}

type VerificationFacade struct {
	BaseFacade
}

func NewVerificationFacade() *VerificationFacade {
	return &VerificationFacade{}
}

func NewVerificationFacadeWithDB(db *gorm.DB) *VerificationFacade {
	return &VerificationFacade{BaseFacade{db: db}}
}

func (f *VerificationFacade) Create(ctx context.Context, v *model.Verification) error {
	if err := f.getDB().WithContext(ctx).Create(v).Error; err != nil {
		return errors.WrapError(err, "failed to create verification", errors.CodeDatabaseError)
	}
	return nil
}

// Get returns (nil, nil) when no verification with the id exists.
func (f *VerificationFacade) Get(ctx context.Context, id string) (*model.Verification, error) {
	v := &model.Verification{}
	err := f.getDB().WithContext(ctx).Where("id = ?", id).First(v).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapError(err, "failed to get verification", errors.CodeDatabaseError)
	}
	return v, nil
}

// UpdateStatus moves a verification to the given status. failed_reason is
// written on every call so that leaving a terminal state always clears the
// previous reason.
func (f *VerificationFacade) UpdateStatus(ctx context.Context, id string, status model.VerificationStatus, failedReason *string) error {
	err := f.getDB().WithContext(ctx).
		Model(&model.Verification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"failed_reason": failedReason,
		}).Error
	if err != nil {
		return errors.WrapError(err, "failed to update verification status", errors.CodeDatabaseError)
	}
	return nil
}

// ListPending returns up to limit pending verifications, oldest first.
func (f *VerificationFacade) ListPending(ctx context.Context, limit int) ([]*model.Verification, error) {
	if limit <= 0 {
		return nil, nil
	}
	var items []*model.Verification
	err := f.getDB().WithContext(ctx).
		Where("status = ?", model.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, errors.WrapError(err, "failed to list pending verifications", errors.CodeDatabaseError)
	}
	return items, nil
}

// ResetInProgress demotes every in_progress verification back to pending.
// Called once at startup, before the scheduler runs, to recover jobs that
// were in flight when the previous process died.
func (f *VerificationFacade) ResetInProgress(ctx context.Context) (int64, error) {
	res := f.getDB().WithContext(ctx).
		Model(&model.Verification{}).
		Where("status = ?", model.StatusInProgress).
		Updates(map[string]interface{}{
			"status":        model.StatusPending,
			"failed_reason": nil,
		})
	if res.Error != nil {
		return 0, errors.WrapError(res.Error, "failed to reset in-progress verifications", errors.CodeDatabaseError)
	}
	return res.RowsAffected, nil
}

// AnyInProgressForCode reports whether another verification for the same
// code id is currently in progress.
func (f *VerificationFacade) AnyInProgressForCode(ctx context.Context, codeID, exceptID string) (bool, error) {
	var count int64
	err := f.getDB().WithContext(ctx).
		Model(&model.Verification{}).
		Where("code_id = ? AND status = ? AND id <> ?", codeID, model.StatusInProgress, exceptID).
		Count(&count).Error
	if err != nil {
		return false, errors.WrapError(err, "failed to count in-progress verifications", errors.CodeDatabaseError)
	}
	return count > 0, nil
}
