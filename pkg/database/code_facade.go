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

type CodeFacadeInterface interface {
	Create(ctx context.Context, code *model.Code) error
	Get(ctx context.Context, id string) (*model.Code, error)
	GetMany(ctx context.Context, ids []string) ([]*model.Code, error)
}

type CodeFacade struct {
	BaseFacade
}

func NewCodeFacade() *CodeFacade {
	return &CodeFacade{}
}

func NewCodeFacadeWithDB(db *gorm.DB) *CodeFacade {
	return &CodeFacade{BaseFacade{db: db}}
}

func (f *CodeFacade) Create(ctx context.Context, code *model.Code) error {
	if err := f.getDB().WithContext(ctx).Create(code).Error; err != nil {
		return errors.WrapError(err, "failed to create code", errors.CodeDatabaseError)
	}
	return nil
}

// Get returns (nil, nil) when the code id has not been verified.
func (f *CodeFacade) Get(ctx context.Context, id string) (*model.Code, error) {
	code := &model.Code{}
	err := f.getDB().WithContext(ctx).Where("id = ?", id).First(code).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapError(err, "failed to get code", errors.CodeDatabaseError)
	}
	return code, nil
}

// GetMany returns the codes that exist among ids. Missing ids are simply
// absent from the result.
func (f *CodeFacade) GetMany(ctx context.Context, ids []string) ([]*model.Code, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var codes []*model.Code
	err := f.getDB().WithContext(ctx).Where("id IN ?", ids).Find(&codes).Error
	if err != nil {
		return nil, errors.WrapError(err, "failed to get codes", errors.CodeDatabaseError)
	}
	return codes, nil
}
