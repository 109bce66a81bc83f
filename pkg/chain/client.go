// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package chain probes Vara nodes for the existence of uploaded code.
package chain

import (
	"context"
	"encoding/hex"

	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/gear-tech/sails-program-verifier/pkg/errors"
)

// Probe answers whether a code id exists on a chain.
type Probe interface {
	CodeExists(ctx context.Context, codeID string) (bool, error)
}

// Client speaks JSON-RPC to a single node endpoint (ws, wss or http).
type Client struct {
	rpc *gethrpc.Client
	url string
}

func Dial(ctx context.Context, url string) (*Client, error) {
	rpcClient, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.NewError().
			WithCode(errors.CodeChainError).
			WithMessagef("failed to connect to node %s", url).
			WithError(err)
	}
	return &Client{rpc: rpcClient, url: url}, nil
}

func (c *Client) Close() {
	c.rpc.Close()
}

// CodeExists checks the MetadataStorage map for the code id. A code id that
// does not decode as hex cannot exist on chain, so it reports false rather
// than an error.
func (c *Client) CodeExists(ctx context.Context, codeID string) (bool, error) {
	raw, err := hex.DecodeString(codeID)
	if err != nil {
		return false, nil
	}

	var result *string
	err = c.rpc.CallContext(ctx, &result, "state_getStorage", MetadataStorageKey(raw))
	if err != nil {
		return false, errors.NewError().
			WithCode(errors.CodeChainError).
			WithMessagef("state_getStorage failed against %s", c.url).
			WithError(err)
	}
	return result != nil, nil
}
