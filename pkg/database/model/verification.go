// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/gear-tech/sails-program-verifier/pkg/errors"
)

const TableNameVerification = "verification"

// VerificationStatus mirrors the `verificationstatus` SQL enum. Transitions
// form a DAG: pending -> in_progress -> {verified | failed}, with
// in_progress -> pending permitted only during startup recovery.
type VerificationStatus string

const (
	StatusPending    VerificationStatus = "pending"
	StatusInProgress VerificationStatus = "in_progress"
	StatusVerified   VerificationStatus = "verified"
	StatusFailed     VerificationStatus = "failed"
)

func (s VerificationStatus) Value() (driver.Value, error) {
	switch s {
	case StatusPending, StatusInProgress, StatusVerified, StatusFailed:
		return string(s), nil
	}
	return nil, fmt.Errorf("unrecognized verification status %q", string(s))
}

func (s *VerificationStatus) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into VerificationStatus", value)
	}
	switch VerificationStatus(raw) {
	case StatusPending, StatusInProgress, StatusVerified, StatusFailed:
		*s = VerificationStatus(raw)
		return nil
	}
	return fmt.Errorf("unrecognized verification status %q", raw)
}

// Network mirrors the `network` SQL enum.
type Network string

const (
	NetworkVaraMainnet Network = "vara_mainnet"
	NetworkVaraTestnet Network = "vara_testnet"
)

func (n Network) Value() (driver.Value, error) {
	switch n {
	case NetworkVaraMainnet, NetworkVaraTestnet:
		return string(n), nil
	}
	return nil, fmt.Errorf("unrecognized network %q", string(n))
}

func (n *Network) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Network", value)
	}
	switch Network(raw) {
	case NetworkVaraMainnet, NetworkVaraTestnet:
		*n = Network(raw)
		return nil
	}
	return fmt.Errorf("unrecognized network %q", raw)
}

func ParseNetwork(s string) (Network, error) {
	switch Network(s) {
	case NetworkVaraMainnet, NetworkVaraTestnet:
		return Network(s), nil
	}
	return "", errors.NewError().
		WithCode(errors.CodeUnsupportedNetwork).
		WithMessagef("Unrecognized network name. Available options: %s, %s",
			NetworkVaraMainnet, NetworkVaraTestnet)
}

// Verification mapped from table <verification>
type Verification struct {
	ID           string             `gorm:"column:id;primaryKey;size:15" json:"id"`
	RepoLink     string             `gorm:"column:repo_link;not null" json:"repo_link"`
	CodeID       string             `gorm:"column:code_id;not null;size:64;index" json:"code_id"`
	ProjectName  *string            `gorm:"column:project_name" json:"project_name,omitempty"`
	ManifestPath *string            `gorm:"column:manifest_path" json:"manifest_path,omitempty"`
	BasePath     *string            `gorm:"column:base_path" json:"base_path,omitempty"`
	BuildIdl     bool               `gorm:"column:build_idl;not null" json:"build_idl"`
	Version      string             `gorm:"column:version;not null;size:32" json:"version"`
	Status       VerificationStatus `gorm:"column:status;not null;type:verificationstatus" json:"status"`
	Network      Network            `gorm:"column:network;not null;type:network" json:"network"`
	FailedReason *string            `gorm:"column:failed_reason" json:"failed_reason,omitempty"`
	CreatedAt    time.Time          `gorm:"column:created_at;not null" json:"created_at"`
}

// TableName Verification's table name
func (*Verification) TableName() string {
	return TableNameVerification
}
