// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gear-tech/sails-program-verifier/pkg/config"
	"github.com/gear-tech/sails-program-verifier/pkg/database"
	"github.com/gear-tech/sails-program-verifier/pkg/database/model"
	"github.com/gear-tech/sails-program-verifier/pkg/errors"
	"github.com/gear-tech/sails-program-verifier/pkg/hash"
	"github.com/gear-tech/sails-program-verifier/pkg/logger/log"
	"github.com/gear-tech/sails-program-verifier/pkg/utils"
	"github.com/gear-tech/sails-program-verifier/pkg/version"
)

type Handler struct {
	verifications database.VerificationFacadeInterface
	codes         database.CodeFacadeInterface
	idls          database.IdlFacadeInterface
}

func NewHandler(
	verifications database.VerificationFacadeInterface,
	codes database.CodeFacadeInterface,
	idls database.IdlFacadeInterface,
) *Handler {
	return &Handler{
		verifications: verifications,
		codes:         codes,
		idls:          idls,
	}
}

// Verify accepts a verification request and enqueues it as pending.
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if !config.IsVersionSupported(req.Version) {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: "Unsupported version: " + req.Version,
		})
		return
	}

	network, err := model.ParseNetwork(req.Network)
	if err != nil {
		abortWithError(c, err)
		return
	}

	codeID, err := hash.ValidateCodeID(req.CodeID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var projectName, manifestPath *string
	if req.Project != nil {
		projectName = req.Project.Package
		manifestPath = req.Project.ManifestPath
	}

	buildIdl := true
	if req.BuildIdl != nil {
		buildIdl = *req.BuildIdl
	}

	v := &model.Verification{
		ID:           utils.GenerateID(),
		RepoLink:     req.RepoLink,
		CodeID:       codeID,
		ProjectName:  projectName,
		ManifestPath: manifestPath,
		BasePath:     req.BasePath,
		BuildIdl:     buildIdl,
		Version:      req.Version,
		Status:       model.StatusPending,
		Network:      network,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.verifications.Create(c.Request.Context(), v); err != nil {
		abortWithError(c, err)
		return
	}

	log.Infof("Accepted verification %s for code %s", v.ID, v.CodeID)
	c.JSON(http.StatusOK, VerifyResponse{ID: v.ID})
}

// Status returns the stored request and its current outcome.
func (h *Handler) Status(c *gin.Context) {
	v, err := h.verifications.Get(c.Request.Context(), c.Query("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if v == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:       string(v.Status),
		FailedReason: v.FailedReason,
		CodeID:       v.CodeID,
		RepoLink:     v.RepoLink,
		ProjectName:  v.ProjectName,
		BasePath:     v.BasePath,
		Version:      v.Version,
		ManifestPath: v.ManifestPath,
		CreatedAt:    v.CreatedAt.UnixMilli(),
	})
}

// Code returns a verified code by id.
func (h *Handler) Code(c *gin.Context) {
	codeID, err := hash.ValidateCodeID(c.Query("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	code, err := h.codes.Get(c.Request.Context(), codeID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if code == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, code)
}

// Codes resolves a batch of ids. Each requested id appears in the result
// exactly once, spelled as the caller sent it; unverified and malformed ids
// map to a null code.
func (h *Handler) Codes(c *gin.Context) {
	var requested []string
	for _, chunk := range c.QueryArray("ids") {
		for _, id := range strings.Split(chunk, ",") {
			if id = strings.TrimSpace(id); id != "" {
				requested = append(requested, id)
			}
		}
	}

	result := make([]CodesResponseEntry, 0, len(requested))
	originalSpelling := map[string]string{}
	var validated []string
	for _, id := range requested {
		codeID, err := hash.ValidateCodeID(id)
		if err != nil {
			result = append(result, CodesResponseEntry{ID: id})
			continue
		}
		originalSpelling[codeID] = id
		validated = append(validated, codeID)
	}

	codes, err := h.codes.GetMany(c.Request.Context(), validated)
	if err != nil {
		abortWithError(c, err)
		return
	}

	found := map[string]bool{}
	for _, code := range codes {
		found[code.ID] = true
		result = append(result, CodesResponseEntry{
			ID:   originalSpelling[code.ID],
			Code: code,
		})
	}
	for _, codeID := range validated {
		if !found[codeID] {
			result = append(result, CodesResponseEntry{ID: originalSpelling[codeID]})
		}
	}

	c.JSON(http.StatusOK, result)
}

// Idl returns idl content by its hash.
func (h *Handler) Idl(c *gin.Context) {
	id, err := hash.ValidateCodeID(c.Query("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	idl, err := h.idls.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if idl == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, idl)
}

func (h *Handler) Version(c *gin.Context) {
	c.String(http.StatusOK, version.Version)
}

func (h *Handler) SupportedVersions(c *gin.Context) {
	c.JSON(http.StatusOK, config.AvailableVersions)
}

// abortWithError maps coded errors to HTTP statuses. Internal details are
// logged, not leaked.
func abortWithError(c *gin.Context, err error) {
	if errors.IsBadRequest(err) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: messageOf(err)})
		return
	}
	if errors.IsNotFound(err) {
		c.Status(http.StatusNotFound)
		return
	}
	log.Errorf("Request %s failed: %v", c.FullPath(), err)
	c.Status(http.StatusInternalServerError)
}

func messageOf(err error) string {
	if e, ok := err.(*errors.Error); ok && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
