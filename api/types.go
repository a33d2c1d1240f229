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
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package api

import (
	"context"

	quorum "github.com/blinklabs-io/quorum"
	"github.com/blinklabs-io/quorum/database/models"
)

// Coordinator is the surface the API server needs from the coordination
// engine
type Coordinator interface {
	CreateProposal(
		ctx context.Context,
		groupId string,
		proposedBy string,
		payload []byte,
		description string,
	) (*quorum.ProposalView, error)
	Sign(
		ctx context.Context,
		proposalId string,
		signerId string,
		signerAddress string,
		signatureBlob []byte,
	) (*quorum.SignResult, error)
	Execute(
		ctx context.Context,
		proposalId string,
	) (*quorum.ExecuteResult, error)
	Get(
		ctx context.Context,
		proposalId string,
	) (*quorum.ProposalView, error)
	ListByGroup(
		ctx context.Context,
		groupId string,
		statusFilter models.ProposalStatus,
	) ([]*quorum.ProposalView, error)
}

// RootResponse is returned from GET /
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

// ErrorResponse is the REST error format
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// CreateProposalRequest is the body for POST /v1/groups/{groupId}/proposals
type CreateProposalRequest struct {
	ProposedBy  string `json:"proposedBy"`
	Payload     []byte `json:"payload"`
	Description string `json:"description,omitempty"`
}

// SignProposalRequest is the body for POST /v1/proposals/{proposalId}/signatures
type SignProposalRequest struct {
	SignerId      string `json:"signerId"`
	SignerAddress string `json:"signerAddress"`
	SignatureBlob []byte `json:"signatureBlob"`
}
