// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gear-tech/sails-program-verifier/pkg/database"
	"github.com/gear-tech/sails-program-verifier/pkg/database/model"
	"github.com/gear-tech/sails-program-verifier/pkg/hash"
)

type testEnv struct {
	engine        *gin.Engine
	verifications *database.VerificationFacade
	codes         *database.CodeFacade
	idls          *database.IdlFacade
}

func newTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	db := database.NewTestDB(t)

	env := &testEnv{
		verifications: database.NewVerificationFacadeWithDB(db),
		codes:         database.NewCodeFacadeWithDB(db),
		idls:          database.NewIdlFacadeWithDB(db),
	}
	env.engine = gin.New()
	registerRoutes(env.engine, NewHandler(env.verifications, env.codes, env.idls))
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func validCodeID() string {
	return hash.Text("some wasm")
}

func TestVerify(t *testing.T) {
	env := newTestEnv(t)
	codeID := validCodeID()

	rec := env.do(t, http.MethodPost, "/verify", `{
		"repo_link": "https://github.com/example/program",
		"version": "0.8.0",
		"project": {"Package": "my-program"},
		"base_path": "programs",
		"network": "vara_testnet",
		"code_id": "0x`+strings.ToUpper(codeID)+`"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.ID, 15)

	v, err := env.verifications.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, model.StatusPending, v.Status)
	assert.Equal(t, codeID, v.CodeID, "code id is normalized")
	assert.Equal(t, model.NetworkVaraTestnet, v.Network)
	require.NotNil(t, v.ProjectName)
	assert.Equal(t, "my-program", *v.ProjectName)
	assert.Nil(t, v.ManifestPath)
	require.NotNil(t, v.BasePath)
	assert.Equal(t, "programs", *v.BasePath)
	assert.True(t, v.BuildIdl, "build_idl defaults to true")
}

func TestVerify_ProjectVariants(t *testing.T) {
	tests := []struct {
		name         string
		project      string
		projectName  *string
		manifestPath *string
	}{
		{name: "absent project means root", project: ""},
		{name: "explicit root", project: `"project": "Root",`},
		{
			name:        "package",
			project:     `"project": {"Package": "counter"},`,
			projectName: strPtr("counter"),
		},
		{
			name:         "manifest path",
			project:      `"project": {"ManifestPath": "counter/Cargo.toml"},`,
			manifestPath: strPtr("counter/Cargo.toml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(t, http.MethodPost, "/verify", `{
				"repo_link": "https://github.com/example/program",
				"version": "0.8.0",
				`+tt.project+`
				"network": "vara_mainnet",
				"code_id": "`+validCodeID()+`",
				"build_idl": false
			}`)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp VerifyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			v, err := env.verifications.Get(context.Background(), resp.ID)
			require.NoError(t, err)
			require.NotNil(t, v)
			assert.Equal(t, tt.projectName, v.ProjectName)
			assert.Equal(t, tt.manifestPath, v.ManifestPath)
			assert.False(t, v.BuildIdl)
		})
	}
}

func TestVerify_Rejections(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{
			name: "unsupported version",
			body: `{"repo_link":"r","version":"9.9.9","network":"vara_testnet","code_id":"` + validCodeID() + `"}`,
		},
		{
			name: "unknown network",
			body: `{"repo_link":"r","version":"0.8.0","network":"solana","code_id":"` + validCodeID() + `"}`,
		},
		{
			name: "malformed code id",
			body: `{"repo_link":"r","version":"0.8.0","network":"vara_testnet","code_id":"0xzz"}`,
		},
		{
			name: "both package and manifest path",
			body: `{"repo_link":"r","version":"0.8.0","network":"vara_testnet","code_id":"` + validCodeID() + `","project":{"Package":"a","ManifestPath":"b"}}`,
		},
		{
			name: "missing repo link",
			body: `{"version":"0.8.0","network":"vara_testnet","code_id":"` + validCodeID() + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/verify", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	createdAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	reason := "Code ID mismatch"
	require.NoError(t, env.verifications.Create(context.Background(), &model.Verification{
		ID:           "verif000000001a",
		RepoLink:     "https://github.com/example/program",
		CodeID:       validCodeID(),
		ProjectName:  strPtr("counter"),
		Version:      "0.7.3",
		Status:       model.StatusFailed,
		Network:      model.NetworkVaraMainnet,
		FailedReason: &reason,
		CreatedAt:    createdAt,
	}))

	rec := env.do(t, http.MethodGet, "/verify/status?id=verif000000001a", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	require.NotNil(t, resp.FailedReason)
	assert.Equal(t, reason, *resp.FailedReason)
	assert.Equal(t, validCodeID(), resp.CodeID)
	assert.Equal(t, "https://github.com/example/program", resp.RepoLink)
	require.NotNil(t, resp.ProjectName)
	assert.Equal(t, "counter", *resp.ProjectName)
	assert.Equal(t, "0.7.3", resp.Version)
	assert.Equal(t, createdAt.UnixMilli(), resp.CreatedAt)
}

func TestStatus_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/verify/status?id=nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCode(t *testing.T) {
	env := newTestEnv(t)
	codeID := validCodeID()
	require.NoError(t, env.codes.Create(context.Background(), &model.Code{
		ID: codeID, Name: "counter", RepoLink: "r",
	}))

	rec := env.do(t, http.MethodGet, "/code?id=0x"+codeID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var code model.Code
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &code))
	assert.Equal(t, "counter", code.Name)

	rec = env.do(t, http.MethodGet, "/code?id="+hash.Text("unknown"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/code?id=0xzz", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCodes(t *testing.T) {
	env := newTestEnv(t)
	known := validCodeID()
	unknown := hash.Text("unknown")
	require.NoError(t, env.codes.Create(context.Background(), &model.Code{
		ID: known, Name: "counter", RepoLink: "r",
	}))

	// Requested with 0x prefix; the response echoes the original spelling.
	rec := env.do(t, http.MethodGet, "/codes?ids=0x"+known+","+unknown+",garbage", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []CodesResponseEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 3)

	byID := map[string]*model.Code{}
	for _, e := range entries {
		byID[e.ID] = e.Code
	}
	require.Contains(t, byID, "0x"+known)
	require.NotNil(t, byID["0x"+known])
	assert.Equal(t, "counter", byID["0x"+known].Name)
	require.Contains(t, byID, unknown)
	assert.Nil(t, byID[unknown])
	require.Contains(t, byID, "garbage")
	assert.Nil(t, byID["garbage"])
}

func TestIdl(t *testing.T) {
	env := newTestEnv(t)
	content := "constructor New;"
	idlHash := hash.Text(content)
	require.NoError(t, env.idls.Save(context.Background(), &model.Idl{
		ID: idlHash, Content: content,
	}))

	rec := env.do(t, http.MethodGet, "/idl?id="+idlHash, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var idl model.Idl
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &idl))
	assert.Equal(t, content, idl.Content)

	rec = env.do(t, http.MethodGet, "/idl?id="+hash.Text("other"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/idl?id=short", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVersionAndSupportedVersions(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/supported_versions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var versions []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &versions))
	assert.Contains(t, versions, "0.8.0")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func strPtr(s string) *string { return &s }
