// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package server exposes the verification HTTP API.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gear-tech/sails-program-verifier/pkg/logger/log"
)

type Server struct {
	engine *gin.Engine
	port   int
}

func New(handler *Handler, port int) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	registerRoutes(engine, handler)

	return &Server{engine: engine, port: port}
}

func registerRoutes(engine *gin.Engine, handler *Handler) {
	engine.POST("/verify", handler.Verify)
	engine.GET("/verify/status", handler.Status)
	engine.GET("/code", handler.Code)
	engine.GET("/codes", handler.Codes)
	engine.GET("/idl", handler.Idl)
	engine.GET("/version", handler.Version)
	engine.GET("/supported_versions", handler.SupportedVersions)

	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.port)
	log.Infof("HTTP server listening on %s", addr)
	return s.engine.Run(addr)
}
