// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package builder turns a verification request into build artifacts by
// running the sandboxed builder image against a per-job workspace.
package builder

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gear-tech/sails-program-verifier/pkg/database/model"
	"github.com/gear-tech/sails-program-verifier/pkg/docker"
	"github.com/gear-tech/sails-program-verifier/pkg/errors"
	"github.com/gear-tech/sails-program-verifier/pkg/hash"
	"github.com/gear-tech/sails-program-verifier/pkg/logger/log"
)

// Artifacts is what a successful build yields: the hash of the built wasm,
// the program name taken from the artifact file stem, and the idl content
// when one was produced.
type Artifacts struct {
	CodeID string
	Name   string
	Idl    *string
}

// Runtime is the container surface the builder needs.
type Runtime interface {
	RunBuild(ctx context.Context, spec *docker.BuildSpec) (int64, error)
	RemoveContainer(ctx context.Context, name string) error
}

// Interface is implemented by Builder and faked in scheduler tests.
type Interface interface {
	Build(ctx context.Context, v *model.Verification) (*Artifacts, error)
	Cleanup(ctx context.Context, id string)
}

type Builder struct {
	runtime Runtime
	root    string
}

func New(runtime Runtime, root string) *Builder {
	return &Builder{runtime: runtime, root: root}
}

// Build prepares the workspace, runs the builder container to completion
// and harvests the artifacts it left behind.
func (b *Builder) Build(ctx context.Context, v *model.Verification) (*Artifacts, error) {
	workspace := filepath.Join(b.root, v.ID)
	// The workspace must start empty or stale artifacts would be harvested.
	if err := os.RemoveAll(workspace); err != nil {
		return nil, errors.WrapError(err, "failed to clear build workspace", errors.CodeBuildError)
	}
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, errors.WrapError(err, "failed to create build workspace", errors.CodeBuildError)
	}

	exitCode, err := b.runtime.RunBuild(ctx, &docker.BuildSpec{
		Name:      v.ID,
		Version:   v.Version,
		Workspace: workspace,
		Env:       buildEnv(v),
	})
	if err != nil {
		return nil, err
	}
	if exitCode != 0 {
		log.Warnf("Build container for %s exited with code %d", v.ID, exitCode)
	}

	wasmPath, err := findByExt(workspace, ".opt.wasm")
	if err != nil {
		return nil, err
	}
	if wasmPath == "" {
		return nil, errors.WrapMessage("Failed to build wasm.", errors.CodeBuildError)
	}
	wasm, err := os.ReadFile(wasmPath)
	if err != nil {
		return nil, errors.WrapError(err, "Failed to build wasm.", errors.CodeBuildError)
	}

	artifacts := &Artifacts{
		CodeID: hash.Bytes(wasm),
		Name:   strings.TrimSuffix(filepath.Base(wasmPath), ".opt.wasm"),
	}

	if v.BuildIdl {
		idlPath, err := findByExt(workspace, ".idl")
		if err != nil {
			return nil, err
		}
		if idlPath == "" {
			return nil, errors.WrapMessage("Failed to build idl file.", errors.CodeBuildError)
		}
		content, err := os.ReadFile(idlPath)
		if err != nil {
			// The build itself succeeded, record the code without an idl.
			log.Warnf("Failed to read idl file for %s: %v", v.ID, err)
		} else {
			idl := string(content)
			artifacts.Idl = &idl
		}
	}
	return artifacts, nil
}

// Cleanup removes the job workspace and its container. Both are best
// effort, a leftover is reclaimed by the startup prune anyway.
func (b *Builder) Cleanup(ctx context.Context, id string) {
	if err := os.RemoveAll(filepath.Join(b.root, id)); err != nil {
		log.Warnf("Failed to remove workspace of %s: %v", id, err)
	}
	if err := b.runtime.RemoveContainer(ctx, id); err != nil {
		log.Warnf("Failed to remove container of %s: %v", id, err)
	}
}

func buildEnv(v *model.Verification) []string {
	env := []string{
		"REPO_URL=" + v.RepoLink,
		"PROJECT_NAME=" + deref(v.ProjectName),
		"MANIFEST_PATH=" + deref(v.ManifestPath),
		"BASE_PATH=" + deref(v.BasePath),
	}
	if v.BuildIdl {
		env = append(env, "BUILD_IDL=true")
	}
	return env
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// findByExt returns the first regular file in dir whose name ends with ext,
// or "" when none exists.
func findByExt(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.WrapError(err, "failed to read build workspace", errors.CodeBuildError)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ext) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", nil
}
