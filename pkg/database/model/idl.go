// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

const TableNameIdl = "idl"

// Idl is an interface definition keyed by the BLAKE2b-256 hash of its
// content. Identical IDLs produced by different codes share a single row.
type Idl struct {
	ID      string `gorm:"column:id;primaryKey;size:64" json:"id"`
	Content string `gorm:"column:content;not null" json:"content"`
}

// TableName Idl's table name
func (*Idl) TableName() string {
	return TableNameIdl
}
