// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"gorm.io/gorm"

	"github.com/gear-tech/sails-program-verifier/pkg/sql"
)

// BaseFacade carries the gorm handle shared by the table facades. With a nil
// db it falls through to the default registered connection, so production
// code constructs facades with no arguments while tests inject an in-memory
// database.
type BaseFacade struct {
	db *gorm.DB
}

func (b *BaseFacade) getDB() *gorm.DB {
	if b.db != nil {
		return b.db
	}
	return sql.GetDefaultDB()
}
