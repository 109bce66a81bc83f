// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

const TableNameCode = "code"

// Code is a successfully verified on-chain code. Its primary key is the
// BLAKE2b-256 hash of the built wasm, lower-case hex without a 0x prefix.
// Existence of a row is the source of truth for "already verified".
type Code struct {
	ID       string  `gorm:"column:id;primaryKey;size:64" json:"id"`
	IdlHash  *string `gorm:"column:idl_hash;size:64" json:"idl_hash,omitempty"`
	Name     string  `gorm:"column:name;not null" json:"name"`
	RepoLink string  `gorm:"column:repo_link;not null" json:"repo_link"`
}

// TableName Code's table name
func (*Code) TableName() string {
	return TableNameCode
}
