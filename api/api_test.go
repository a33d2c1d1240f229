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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	quorum "github.com/blinklabs-io/quorum"
	"github.com/blinklabs-io/quorum/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCoordinator implements Coordinator for testing
type mockCoordinator struct {
	view       *quorum.ProposalView
	views      []*quorum.ProposalView
	signResult *quorum.SignResult
	execResult *quorum.ExecuteResult
	createErr  error
	getErr     error
	listErr    error
	signErr    error
	execErr    error
}

func (m *mockCoordinator) CreateProposal(
	_ context.Context,
	_ string,
	_ string,
	_ []byte,
	_ string,
) (*quorum.ProposalView, error) {
	return m.view, m.createErr
}

func (m *mockCoordinator) Sign(
	_ context.Context,
	_ string,
	_ string,
	_ string,
	_ []byte,
) (*quorum.SignResult, error) {
	return m.signResult, m.signErr
}

func (m *mockCoordinator) Execute(
	_ context.Context,
	_ string,
) (*quorum.ExecuteResult, error) {
	return m.execResult, m.execErr
}

func (m *mockCoordinator) Get(
	_ context.Context,
	_ string,
) (*quorum.ProposalView, error) {
	return m.view, m.getErr
}

func (m *mockCoordinator) ListByGroup(
	_ context.Context,
	_ string,
	_ models.ProposalStatus,
) ([]*quorum.ProposalView, error) {
	return m.views, m.listErr
}

func newTestApi(coordinator Coordinator) *Api {
	return New(
		Config{ListenAddress: ":0"},
		coordinator,
		nil,
	)
}

func TestStartStop(t *testing.T) {
	a := newTestApi(&mockCoordinator{})

	err := a.Start(t.Context())
	require.NoError(t, err)

	// Starting again should error
	err = a.Start(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already started")

	stopCtx, stopCancel := context.WithTimeout(
		context.Background(),
		5*time.Second,
	)
	defer stopCancel()
	require.NoError(t, a.Stop(stopCtx))

	a.mu.Lock()
	assert.Nil(t, a.httpServer)
	a.mu.Unlock()
}

func TestHandleHealth(t *testing.T) {
	a := newTestApi(&mockCoordinator{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	a.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.IsHealthy)
}

func TestHandleCreateProposal(t *testing.T) {
	mock := &mockCoordinator{
		view: &quorum.ProposalView{
			Id:                 "prop-1",
			GroupId:            "group-1",
			Status:             models.ProposalStatusPending,
			RequiredSignatures: 3,
		},
	}
	a := newTestApi(mock)

	body := `{"proposedBy":"member-1","payload":"eyJhIjoxfQ=="}`
	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/groups/group-1/proposals",
		strings.NewReader(body),
	)
	req.SetPathValue("groupId", "group-1")
	w := httptest.NewRecorder()
	a.handleCreateProposal(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp quorum.ProposalView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "prop-1", resp.Id)
	assert.Equal(t, 3, resp.RequiredSignatures)
}

func TestHandleCreateProposalBadBody(t *testing.T) {
	a := newTestApi(&mockCoordinator{})

	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/groups/group-1/proposals",
		strings.NewReader("{not json"),
	)
	req.SetPathValue("groupId", "group-1")
	w := httptest.NewRecorder()
	a.handleCreateProposal(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSignProposal(t *testing.T) {
	mock := &mockCoordinator{
		signResult: &quorum.SignResult{
			Accepted:           true,
			TotalSignatures:    2,
			RequiredSignatures: 3,
		},
	}
	a := newTestApi(mock)

	body := `{"signerId":"member-2","signerAddress":"rAddr","signatureBlob":"c2ln"}`
	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/proposals/prop-1/signatures",
		strings.NewReader(body),
	)
	req.SetPathValue("proposalId", "prop-1")
	w := httptest.NewRecorder()
	a.handleSignProposal(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp quorum.SignResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Accepted)
	assert.Equal(t, 2, resp.TotalSignatures)
}

func TestHandleExecuteProposal(t *testing.T) {
	mock := &mockCoordinator{
		execResult: &quorum.ExecuteResult{
			Success:         true,
			TransactionHash: "ABC123",
		},
	}
	a := newTestApi(mock)

	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/proposals/prop-1/execute",
		nil,
	)
	req.SetPathValue("proposalId", "prop-1")
	w := httptest.NewRecorder()
	a.handleExecuteProposal(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp quorum.ExecuteResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ABC123", resp.TransactionHash)
}

func TestErrorStatusMapping(t *testing.T) {
	testDefs := []struct {
		kind   quorum.ErrorKind
		status int
	}{
		{quorum.KindNotFound, http.StatusNotFound},
		{quorum.KindNotAMember, http.StatusForbidden},
		{quorum.KindCredentialInvalid, http.StatusForbidden},
		{quorum.KindAlreadySigned, http.StatusConflict},
		{quorum.KindNotReady, http.StatusConflict},
		{quorum.KindInvalidState, http.StatusBadRequest},
		{quorum.KindExpired, http.StatusGone},
		{quorum.KindLedgerPrepareFailed, http.StatusBadGateway},
		{quorum.KindLedgerSubmitFailed, http.StatusBadGateway},
		{quorum.KindTimeout, http.StatusGatewayTimeout},
	}
	for _, testDef := range testDefs {
		t.Run(string(testDef.kind), func(t *testing.T) {
			mock := &mockCoordinator{
				getErr: &quorum.Error{
					Kind:    testDef.kind,
					Message: "test error",
				},
			}
			a := newTestApi(mock)

			req := httptest.NewRequest(
				http.MethodGet,
				"/v1/proposals/prop-1",
				nil,
			)
			req.SetPathValue("proposalId", "prop-1")
			w := httptest.NewRecorder()
			a.handleGetProposal(w, req)

			assert.Equal(t, testDef.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, testDef.status, resp.StatusCode)
			assert.Equal(t, string(testDef.kind), resp.Error)
		})
	}
}
