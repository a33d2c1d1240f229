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

package quorum

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/blinklabs-io/quorum/database/models"
	"github.com/blinklabs-io/quorum/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signAll(t *testing.T, env *testEnv, proposalId string) {
	t.Helper()
	for _, memberId := range env.memberIds {
		_, err := env.coordinator.Sign(
			context.Background(),
			proposalId,
			memberId,
			"rAddr",
			[]byte("sig-"+memberId),
		)
		require.NoError(t, err)
	}
}

func TestExecuteUnknownProposal(t *testing.T) {
	env := setupTestEnv(t, 2)

	_, err := env.coordinator.Execute(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, Kind(err))
}

// TestExecuteBeforeQuorum verifies a PENDING proposal cannot be executed
func TestExecuteBeforeQuorum(t *testing.T) {
	env := setupTestEnv(t, 2)
	ctx := context.Background()
	view := createTestProposal(t, env)

	_, err := env.coordinator.Execute(ctx, view.Id)
	require.Error(t, err)
	assert.Equal(t, KindNotReady, Kind(err))
	assert.Equal(t, 0, env.ledger.submitted())

	// The proposal is untouched and can still collect signatures
	fetched, err := env.coordinator.Get(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, fetched.Status)
}

func TestExecuteTwice(t *testing.T) {
	env := setupTestEnv(t, 2)
	ctx := context.Background()
	view := createTestProposal(t, env)
	signAll(t, env, view.Id)

	result, err := env.coordinator.Execute(ctx, view.Id)
	require.NoError(t, err)
	assert.True(t, result.Success)

	// A second execution attempt finds the proposal past
	// READY_TO_EXECUTE and is rejected without another submission
	_, err = env.coordinator.Execute(ctx, view.Id)
	require.Error(t, err)
	assert.Equal(t, KindNotReady, Kind(err))
	assert.Equal(t, 1, env.ledger.submitted())
}

// TestExecuteLedgerRejection covers the ledger accepting the submission
// but reporting an unsuccessful engine result
func TestExecuteLedgerRejection(t *testing.T) {
	env := setupTestEnv(t, 2)
	env.ledger.submitFunc = func(
		_ context.Context,
		_ []byte,
		_ [][]byte,
	) (*ledger.SubmitResult, error) {
		return &ledger.SubmitResult{
			Hash:    "DEADBEEF",
			Result:  "tecUNFUNDED_PAYMENT",
			Success: false,
		}, nil
	}
	ctx := context.Background()
	view := createTestProposal(t, env)
	signAll(t, env, view.Id)

	result, err := env.coordinator.Execute(ctx, view.Id)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "tecUNFUNDED_PAYMENT")
	// No hash is recorded for a rejected transaction
	assert.Empty(t, result.TransactionHash)

	fetched, err := env.coordinator.Get(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusFailed, fetched.Status)
	assert.Empty(t, fetched.TransactionHash)
	assert.Contains(t, fetched.ErrorMessage, "tecUNFUNDED_PAYMENT")
}

// TestExecuteSubmitError covers a transport-level submission failure;
// the outcome is terminal rather than leaving the proposal EXECUTING
func TestExecuteSubmitError(t *testing.T) {
	env := setupTestEnv(t, 2)
	env.ledger.submitFunc = func(
		_ context.Context,
		_ []byte,
		_ [][]byte,
	) (*ledger.SubmitResult, error) {
		return nil, fmt.Errorf("%w: connection refused", ledger.ErrSubmitFailed)
	}
	ctx := context.Background()
	view := createTestProposal(t, env)
	signAll(t, env, view.Id)

	_, err := env.coordinator.Execute(ctx, view.Id)
	require.Error(t, err)
	assert.Equal(t, KindLedgerSubmitFailed, Kind(err))

	fetched, err := env.coordinator.Get(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusFailed, fetched.Status)
	assert.Contains(t, fetched.ErrorMessage, "connection refused")
}

// TestExecuteSubmitTimeout verifies that a submission deadline produces a
// timeout-classified failure with a durable reconciliation hint instead
// of a proposal stuck in EXECUTING
func TestExecuteSubmitTimeout(t *testing.T) {
	env := setupTestEnv(t, 2, WithSubmitTimeout(50*time.Millisecond))
	env.ledger.submitFunc = func(
		ctx context.Context,
		_ []byte,
		_ [][]byte,
	) (*ledger.SubmitResult, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	ctx := context.Background()
	view := createTestProposal(t, env)
	signAll(t, env, view.Id)

	_, err := env.coordinator.Execute(ctx, view.Id)
	require.Error(t, err)
	assert.Equal(t, KindTimeout, Kind(err))

	fetched, err := env.coordinator.Get(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusFailed, fetched.Status)
	assert.Contains(t, fetched.ErrorMessage, "reconcile")
}
