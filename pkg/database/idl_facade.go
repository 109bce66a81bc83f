// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"

	goerrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gear-tech/sails-program-verifier/pkg/database/model"
	"github.com/gear-tech/sails-program-verifier/pkg/errors"
)

type IdlFacadeInterface interface {
	Save(ctx context.Context, idl *model.Idl) error
	Get(ctx context.Context, id string) (*model.Idl, error)
}

type IdlFacade struct {
	BaseFacade
}

func NewIdlFacade() *IdlFacade {
	return &IdlFacade{}
}

func NewIdlFacadeWithDB(db *gorm.DB) *IdlFacade {
	return &IdlFacade{BaseFacade{db: db}}
}

// Save inserts the idl if its content hash is new. The id is derived from
// the content, so an existing row already holds identical content and the
// conflict is ignored.
func (f *IdlFacade) Save(ctx context.Context, idl *model.Idl) error {
	err := f.getDB().WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(idl).Error
	if err != nil {
		return errors.WrapError(err, "failed to save idl", errors.CodeDatabaseError)
	}
	return nil
}

// Get returns (nil, nil) when no idl with the id exists.
func (f *IdlFacade) Get(ctx context.Context, id string) (*model.Idl, error) {
	idl := &model.Idl{}
	err := f.getDB().WithContext(ctx).Where("id = ?", id).First(idl).Error
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapError(err, "failed to get idl", errors.CodeDatabaseError)
	}
	return idl, nil
}
