// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultRequestTimeout = 60 * time.Second

// RPCClient talks to a ledger gateway over HTTP. The gateway owns the
// ledger-specific transaction format; this client only moves opaque
// payloads and signature blobs across the wire.
type RPCClient struct {
	baseUrl    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRPCClient creates a ledger RPC client for the given gateway base URL
func NewRPCClient(
	baseUrl string,
	logger *slog.Logger,
) *RPCClient {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &RPCClient{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
		logger: logger.With("component", "ledger"),
	}
}

type prepareRequest struct {
	Account string `json:"account"`
	Payload []byte `json:"payload"`
}

type prepareResponse struct {
	Payload []byte `json:"payload"`
}

type submitRequest struct {
	Payload    []byte   `json:"payload"`
	Signatures [][]byte `json:"signatures"`
}

type submitResponse struct {
	Hash    string `json:"hash"`
	Result  string `json:"result"`
	Success bool   `json:"success"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Prepare normalizes a transaction payload against the group's ledger
// account, fixing sequence numbers and fees
func (c *RPCClient) Prepare(
	ctx context.Context,
	account string,
	payload []byte,
) ([]byte, error) {
	var resp prepareResponse
	err := c.post(
		ctx,
		"/v1/tx/prepare",
		prepareRequest{Account: account, Payload: payload},
		&resp,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrepareFailed, err)
	}
	return resp.Payload, nil
}

// SubmitSigned submits a prepared payload with its collected signatures
// and blocks until the gateway reports a terminal result
func (c *RPCClient) SubmitSigned(
	ctx context.Context,
	payload []byte,
	signatures [][]byte,
) (*SubmitResult, error) {
	var resp submitResponse
	err := c.post(
		ctx,
		"/v1/tx/submit",
		submitRequest{Payload: payload, Signatures: signatures},
		&resp,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	return &SubmitResult{
		Hash:    resp.Hash,
		Result:  resp.Result,
		Success: resp.Success,
	}, nil
}

func (c *RPCClient) post(
	ctx context.Context,
	path string,
	reqBody any,
	respBody any,
) error {
	buf, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseUrl+path,
		bytes.NewReader(buf),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil &&
			errResp.Message != "" {
			return fmt.Errorf(
				"gateway returned %d: %s",
				resp.StatusCode,
				errResp.Message,
			)
		}
		return fmt.Errorf("gateway returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(respBody)
}
