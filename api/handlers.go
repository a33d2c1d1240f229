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
	"encoding/json"
	"net/http"

	quorum "github.com/blinklabs-io/quorum"
	"github.com/blinklabs-io/quorum/database/models"
	"github.com/blinklabs-io/quorum/internal/version"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError maps a coordinator error to the REST error format
func writeError(w http.ResponseWriter, err error) {
	kind := quorum.Kind(err)
	status := http.StatusInternalServerError
	switch kind {
	case quorum.KindNotFound:
		status = http.StatusNotFound
	case quorum.KindNotAMember, quorum.KindCredentialInvalid:
		status = http.StatusForbidden
	case quorum.KindAlreadySigned, quorum.KindNotReady:
		status = http.StatusConflict
	case quorum.KindInvalidState:
		status = http.StatusBadRequest
	case quorum.KindExpired:
		status = http.StatusGone
	case quorum.KindLedgerPrepareFailed, quorum.KindLedgerSubmitFailed:
		status = http.StatusBadGateway
	case quorum.KindTimeout:
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      string(kind),
		Message:    err.Error(),
	})
}

// handleRoot handles GET / and returns API metadata
func (a *Api) handleRoot(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:    "quorum",
		Version: version.GetVersionString(),
	})
}

// handleHealth handles GET /health
func (a *Api) handleHealth(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
	})
}

// handleCreateProposal handles POST /v1/groups/{groupId}/proposals
func (a *Api) handleCreateProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Error:      "bad_request",
			Message:    "invalid request body",
		})
		return
	}
	view, err := a.coordinator.CreateProposal(
		r.Context(),
		r.PathValue("groupId"),
		req.ProposedBy,
		req.Payload,
		req.Description,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// handleListProposals handles GET /v1/groups/{groupId}/proposals
func (a *Api) handleListProposals(
	w http.ResponseWriter,
	r *http.Request,
) {
	statusFilter := models.ProposalStatus(
		r.URL.Query().Get("status"),
	)
	views, err := a.coordinator.ListByGroup(
		r.Context(),
		r.PathValue("groupId"),
		statusFilter,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// handleGetProposal handles GET /v1/proposals/{proposalId}
func (a *Api) handleGetProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	view, err := a.coordinator.Get(
		r.Context(),
		r.PathValue("proposalId"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleSignProposal handles POST /v1/proposals/{proposalId}/signatures
func (a *Api) handleSignProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req SignProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Error:      "bad_request",
			Message:    "invalid request body",
		})
		return
	}
	result, err := a.coordinator.Sign(
		r.Context(),
		r.PathValue("proposalId"),
		req.SignerId,
		req.SignerAddress,
		req.SignatureBlob,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleExecuteProposal handles POST /v1/proposals/{proposalId}/execute
func (a *Api) handleExecuteProposal(
	w http.ResponseWriter,
	r *http.Request,
) {
	result, err := a.coordinator.Execute(
		r.Context(),
		r.PathValue("proposalId"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
