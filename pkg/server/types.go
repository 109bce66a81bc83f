// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package server

import (
	"encoding/json"
	"fmt"

	"github.com/gear-tech/sails-program-verifier/pkg/database/model"
)

// Project selects what to build inside the repository. On the wire it is
// either the string "Root" or a single-key object, e.g.
// {"Package": "my-program"} or {"ManifestPath": "program/Cargo.toml"}.
// An absent project means Root.
type Project struct {
	Package      *string
	ManifestPath *string
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag == "Root" {
			return nil
		}
		return fmt.Errorf("unknown project variant %q", tag)
	}

	var obj struct {
		Package      *string `json:"Package"`
		ManifestPath *string `json:"ManifestPath"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Package != nil && obj.ManifestPath != nil {
		return fmt.Errorf("project accepts either Package or ManifestPath, not both")
	}
	p.Package = obj.Package
	p.ManifestPath = obj.ManifestPath
	return nil
}

type VerifyRequest struct {
	RepoLink string   `json:"repo_link" binding:"required"`
	Version  string   `json:"version" binding:"required"`
	Project  *Project `json:"project"`
	BasePath *string  `json:"base_path"`
	Network  string   `json:"network" binding:"required"`
	CodeID   string   `json:"code_id" binding:"required"`
	BuildIdl *bool    `json:"build_idl"`
}

type VerifyResponse struct {
	ID string `json:"id"`
}

// StatusResponse echoes the stored request alongside the verification
// outcome. created_at is unix milliseconds.
type StatusResponse struct {
	Status       string  `json:"status"`
	FailedReason *string `json:"failed_reason"`
	CodeID       string  `json:"code_id"`
	RepoLink     string  `json:"repo_link"`
	ProjectName  *string `json:"project_name"`
	BasePath     *string `json:"base_path"`
	Version      string  `json:"version"`
	ManifestPath *string `json:"manifest_path"`
	CreatedAt    int64   `json:"created_at"`
}

// CodesResponseEntry pairs a requested id, in its original spelling, with
// the code found for it, or null.
type CodesResponseEntry struct {
	ID   string      `json:"id"`
	Code *model.Code `json:"code"`
}

type errorResponse struct {
	Error string `json:"error"`
}
