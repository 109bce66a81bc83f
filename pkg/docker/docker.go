// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package docker wraps the Engine API calls the build pipeline needs:
// image lifecycle, container runs and log capture.
package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/gear-tech/sails-program-verifier/pkg/config"
	"github.com/gear-tech/sails-program-verifier/pkg/errors"
	"github.com/gear-tech/sails-program-verifier/pkg/logger/log"
)

// BuildSpec describes one container build run.
type BuildSpec struct {
	// Name doubles as the container name and the log file stem.
	Name string
	// Version selects the builder image tag.
	Version string
	// Workspace is the host directory bind-mounted at config.MountPath.
	Workspace string
	Env       []string
}

type Runtime struct {
	cli     *client.Client
	auth    string
	logsDir string
}

func NewRuntime(registryUser, registryPassword, logsDir string) (*Runtime, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, errors.WrapError(err, "failed to create docker client", errors.CodeDockerError)
	}

	auth := ""
	if registryUser != "" {
		encoded, err := registry.EncodeAuthConfig(registry.AuthConfig{
			Username: registryUser,
			Password: registryPassword,
		})
		if err != nil {
			return nil, errors.WrapError(err, "failed to encode registry auth", errors.CodeDockerError)
		}
		auth = encoded
	}

	return &Runtime{cli: cli, auth: auth, logsDir: logsDir}, nil
}

// PruneAllContainers force-removes every container, running or not. The
// daemon is dedicated to this service, so anything present is a leftover
// from a previous run.
func (r *Runtime) PruneAllContainers(ctx context.Context) error {
	containers, err := r.cli.ContainerList(ctx, types.ContainerListOptions{All: true})
	if err != nil {
		return errors.WrapError(err, "failed to list containers", errors.CodeDockerError)
	}
	for _, c := range containers {
		if err := r.cli.ContainerRemove(ctx, c.ID, types.ContainerRemoveOptions{Force: true}); err != nil {
			return errors.WrapError(err, fmt.Sprintf("failed to remove container %s", c.ID), errors.CodeDockerError)
		}
		log.Infof("Removed leftover container %s", c.ID[:12])
	}
	return nil
}

// EnsureImage pulls the builder image for the version unless it is already
// present locally.
func (r *Runtime) EnsureImage(ctx context.Context, version string) error {
	ref := config.ImageName + ":" + version

	images, err := r.cli.ImageList(ctx, types.ImageListOptions{
		Filters: filters.NewArgs(filters.Arg("reference", ref)),
	})
	if err != nil {
		return errors.WrapError(err, "failed to list images", errors.CodeDockerError)
	}
	if len(images) > 0 {
		log.Debugf("Image %s already present", ref)
		return nil
	}

	log.Infof("Pulling image %s", ref)
	reader, err := r.cli.ImagePull(ctx, ref, types.ImagePullOptions{RegistryAuth: r.auth})
	if err != nil {
		return errors.WrapError(err, fmt.Sprintf("failed to pull image %s", ref), errors.CodeDockerError)
	}
	defer reader.Close()

	// The pull completes only once the progress stream is drained.
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return errors.WrapError(err, fmt.Sprintf("failed to pull image %s", ref), errors.CodeDockerError)
	}
	return nil
}

// RemoveDanglingImages prunes untagged image layers left behind by pulls.
func (r *Runtime) RemoveDanglingImages(ctx context.Context) error {
	report, err := r.cli.ImagesPrune(ctx, filters.NewArgs(filters.Arg("dangling", "true")))
	if err != nil {
		return errors.WrapError(err, "failed to prune dangling images", errors.CodeDockerError)
	}
	if n := len(report.ImagesDeleted); n > 0 {
		log.Infof("Pruned %d dangling images, reclaimed %d bytes", n, report.SpaceReclaimed)
	}
	return nil
}

// RunBuild creates and starts a build container, waits for it to stop and
// writes its demultiplexed output to logs/<name>.log. It returns the
// container exit code.
func (r *Runtime) RunBuild(ctx context.Context, spec *BuildSpec) (int64, error) {
	ref := config.ImageName + ":" + spec.Version

	created, err := r.cli.ContainerCreate(ctx,
		&container.Config{
			Image: ref,
			Env:   spec.Env,
		},
		&container.HostConfig{
			Binds: []string{spec.Workspace + ":" + config.MountPath + ":rw"},
		},
		nil, nil, spec.Name)
	if err != nil {
		return 0, errors.WrapError(err, "failed to create build container", errors.CodeDockerError)
	}

	if err := r.cli.ContainerStart(ctx, created.ID, types.ContainerStartOptions{}); err != nil {
		return 0, errors.WrapError(err, "failed to start build container", errors.CodeDockerError)
	}

	statusCh, errCh := r.cli.ContainerWait(ctx, created.ID, container.WaitConditionNotRunning)
	var exitCode int64
	select {
	case err := <-errCh:
		if err != nil {
			return 0, errors.WrapError(err, "failed while waiting for build container", errors.CodeDockerError)
		}
	case status := <-statusCh:
		exitCode = status.StatusCode
	}

	if err := r.captureLogs(ctx, created.ID, spec.Name); err != nil {
		// Logs are diagnostics, their loss must not fail the build.
		log.Warnf("Failed to capture logs of container %s: %v", spec.Name, err)
	}
	return exitCode, nil
}

// RemoveContainer force-removes the named container. A missing container is
// not an error.
func (r *Runtime) RemoveContainer(ctx context.Context, name string) error {
	err := r.cli.ContainerRemove(ctx, name, types.ContainerRemoveOptions{Force: true})
	if err != nil && !client.IsErrNotFound(err) {
		return errors.WrapError(err, fmt.Sprintf("failed to remove container %s", name), errors.CodeDockerError)
	}
	return nil
}

func (r *Runtime) captureLogs(ctx context.Context, containerID, name string) error {
	reader, err := r.cli.ContainerLogs(ctx, containerID, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return err
	}
	defer reader.Close()

	file, err := os.Create(filepath.Join(r.logsDir, name+".log"))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = stdcopy.StdCopy(file, file, reader)
	return err
}
