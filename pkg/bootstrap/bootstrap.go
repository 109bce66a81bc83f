// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package bootstrap wires the service together and owns the startup order:
// docker cleanup, image preparation, database, recovery, scheduler, HTTP.
package bootstrap

import (
	"context"
	"os"

	"github.com/gear-tech/sails-program-verifier/pkg/builder"
	"github.com/gear-tech/sails-program-verifier/pkg/chain"
	"github.com/gear-tech/sails-program-verifier/pkg/config"
	"github.com/gear-tech/sails-program-verifier/pkg/database"
	"github.com/gear-tech/sails-program-verifier/pkg/database/model"
	"github.com/gear-tech/sails-program-verifier/pkg/docker"
	"github.com/gear-tech/sails-program-verifier/pkg/errors"
	"github.com/gear-tech/sails-program-verifier/pkg/logger/log"
	"github.com/gear-tech/sails-program-verifier/pkg/processor"
	"github.com/gear-tech/sails-program-verifier/pkg/server"
	"github.com/gear-tech/sails-program-verifier/pkg/sql"
)

func Run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Log != nil {
		if err := log.InitGlobalLogger(cfg.Log); err != nil {
			return errors.WrapError(err, "invalid log config", errors.CodeLackOfConfig)
		}
	}

	runtime, err := docker.NewRuntime(cfg.Docker.RegistryUser, cfg.Docker.RegistryPassword, cfg.Builds.GetLogsDir())
	if err != nil {
		return err
	}

	// Anything still in the docker daemon or logs dir belongs to a previous
	// run; in-flight rows are recovered below via the status reset.
	if err := runtime.PruneAllContainers(ctx); err != nil {
		return err
	}
	for _, v := range config.AvailableVersions {
		if err := runtime.EnsureImage(ctx, v); err != nil {
			return err
		}
	}
	if err := runtime.RemoveDanglingImages(ctx); err != nil {
		return err
	}
	if err := recreateDir(cfg.Builds.GetLogsDir()); err != nil {
		return errors.WrapError(err, "failed to prepare logs directory", errors.CodeInitializeError)
	}

	if _, err := sql.InitDefault(cfg.DatabaseURL, cfg.Scheduler.GetDBMaxOpenConns()); err != nil {
		return errors.WrapError(err, "failed to connect to database", errors.CodeInitializeError)
	}

	verifications := database.NewVerificationFacade()
	codes := database.NewCodeFacade()
	idls := database.NewIdlFacade()

	requeued, err := verifications.ResetInProgress(ctx)
	if err != nil {
		return err
	}
	if requeued > 0 {
		log.Infof("Requeued %d interrupted verifications", requeued)
	}

	chains, err := buildChainRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	bld := builder.New(runtime, cfg.Builds.GetRoot())
	proc := processor.New(
		verifications, codes, idls, bld, chains,
		cfg.Scheduler.GetMaxInProgress(), cfg.Scheduler.GetCheckInterval())
	go proc.Run(ctx)

	return server.New(server.NewHandler(verifications, codes, idls), cfg.GetHttpPort()).Run()
}

func buildChainRegistry(ctx context.Context, cfg *config.Config) (*chain.Registry, error) {
	chains := chain.NewRegistry()
	if url := cfg.Networks.MainnetURL; url != "" {
		client, err := chain.Dial(ctx, url)
		if err != nil {
			return nil, err
		}
		chains.Set(model.NetworkVaraMainnet, client)
	}
	if url := cfg.Networks.TestnetURL; url != "" {
		client, err := chain.Dial(ctx, url)
		if err != nil {
			return nil, err
		}
		chains.Set(model.NetworkVaraTestnet, client)
	}
	if chains.IsEmpty() {
		return nil, errors.WrapMessage("no network node urls configured", errors.CodeLackOfConfig)
	}
	return chains, nil
}

func recreateDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	return os.MkdirAll(path, 0o755)
}
