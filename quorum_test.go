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
	"sync"
	"testing"
	"time"

	"github.com/blinklabs-io/quorum/database"
	"github.com/blinklabs-io/quorum/database/models"
	"github.com/blinklabs-io/quorum/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedgerClient is a ledger.Client whose behavior can be overridden
// per test. The defaults prepare by prefixing the payload and submit
// successfully with a fixed hash.
type fakeLedgerClient struct {
	prepareFunc func(
		ctx context.Context,
		account string,
		payload []byte,
	) ([]byte, error)
	submitFunc func(
		ctx context.Context,
		payload []byte,
		signatures [][]byte,
	) (*ledger.SubmitResult, error)
	mutex       sync.Mutex
	submitCalls int
	lastSigs    [][]byte
}

func (f *fakeLedgerClient) Prepare(
	ctx context.Context,
	account string,
	payload []byte,
) ([]byte, error) {
	if f.prepareFunc != nil {
		return f.prepareFunc(ctx, account, payload)
	}
	return append([]byte("prepared:"), payload...), nil
}

func (f *fakeLedgerClient) SubmitSigned(
	ctx context.Context,
	payload []byte,
	signatures [][]byte,
) (*ledger.SubmitResult, error) {
	f.mutex.Lock()
	f.submitCalls++
	f.lastSigs = signatures
	f.mutex.Unlock()
	if f.submitFunc != nil {
		return f.submitFunc(ctx, payload, signatures)
	}
	return &ledger.SubmitResult{
		Hash:    "FAKEHASH000",
		Result:  "tesSUCCESS",
		Success: true,
	}, nil
}

func (f *fakeLedgerClient) submitted() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.submitCalls
}

func (f *fakeLedgerClient) lastSignatures() [][]byte {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.lastSigs
}

type testEnv struct {
	coordinator *Coordinator
	db          *database.Database
	ledger      *fakeLedgerClient
	groupId     string
	memberIds   []string
}

// addTestMember registers an active member with a valid credential
func addTestMember(
	t *testing.T,
	db *database.Database,
	groupId string,
) string {
	t.Helper()
	memberId := uuid.NewString()
	now := time.Now().UTC()
	require.NoError(t, db.AddGroupMember(&models.GroupMember{
		GroupID:        groupId,
		MemberID:       memberId,
		SigningAddress: "rMember" + memberId[:8],
		Status:         models.MemberStatusActive,
		CreatedAt:      now,
	}))
	require.NoError(t, db.AddCredential(&models.Credential{
		ID:             uuid.NewString(),
		SubjectID:      memberId,
		GroupID:        groupId,
		CredentialType: models.CredentialTypeGroupMember,
		IssuedAt:       now,
		ExpiresAt:      now.Add(time.Hour),
	}))
	return memberId
}

// setupTestEnv creates a coordinator backed by an in-memory store and a
// seeded group with the given number of active, credentialed members
func setupTestEnv(
	t *testing.T,
	memberCount int,
	opts ...ConfigOptionFunc,
) *testEnv {
	t.Helper()
	return setupTestEnvWithDataDir(t, "", memberCount, opts...)
}

// setupTestEnvWithDataDir is setupTestEnv with a file-based store, which
// the concurrency tests need for its WAL journal and busy timeout
func setupTestEnvWithDataDir(
	t *testing.T,
	dataDir string,
	memberCount int,
	opts ...ConfigOptionFunc,
) *testEnv {
	t.Helper()
	db, err := database.New(&database.Config{DataDir: dataDir})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	groupId := uuid.NewString()
	require.NoError(t, db.AddGroup(&models.Group{
		ID:            groupId,
		Title:         "test group",
		LedgerAddress: "rGroupAccount" + groupId[:8],
		CreatedAt:     time.Now().UTC(),
	}))
	memberIds := make([]string, 0, memberCount)
	for range memberCount {
		memberIds = append(memberIds, addTestMember(t, db, groupId))
	}
	ledgerClient := &fakeLedgerClient{}
	allOpts := append(
		[]ConfigOptionFunc{
			WithDatabase(db),
			WithLedgerClient(ledgerClient),
			WithSweepInterval(0),
		},
		opts...,
	)
	coordinator, err := New(NewConfig(allOpts...))
	require.NoError(t, err)
	t.Cleanup(func() {
		coordinator.Stop() //nolint:errcheck
	})
	return &testEnv{
		coordinator: coordinator,
		db:          db,
		ledger:      ledgerClient,
		groupId:     groupId,
		memberIds:   memberIds,
	}
}

// TestProposalLifecycle walks a three-member group through the full
// happy path: create, collect three signatures, execute.
func TestProposalLifecycle(t *testing.T) {
	env := setupTestEnv(t, 3)
	ctx := context.Background()

	view, err := env.coordinator.CreateProposal(
		ctx,
		env.groupId,
		env.memberIds[0],
		[]byte(`{"amount":"100"}`),
		"pay the vendor",
	)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, view.Status)
	assert.Equal(t, 3, view.RequiredSignatures)
	assert.False(t, view.CanExecute)
	// Payload was normalized by the ledger at creation
	assert.Equal(
		t,
		[]byte(`prepared:{"amount":"100"}`),
		view.TransactionPayload,
	)

	for i, memberId := range env.memberIds {
		result, err := env.coordinator.Sign(
			ctx,
			view.Id,
			memberId,
			"rMember"+memberId[:8],
			[]byte(fmt.Sprintf("sig-%d", i)),
		)
		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, i+1, result.TotalSignatures)
		assert.Equal(t, 3, result.RequiredSignatures)
		assert.Equal(t, i == 2, result.ReadyToExecute)
	}

	view, err = env.coordinator.Get(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusReadyToExecute, view.Status)
	assert.True(t, view.CanExecute)
	assert.Equal(t, 3, view.TotalSignatures)

	execResult, err := env.coordinator.Execute(ctx, view.Id)
	require.NoError(t, err)
	assert.True(t, execResult.Success)
	assert.Equal(t, "FAKEHASH000", execResult.TransactionHash)
	assert.Equal(t, 1, env.ledger.submitted())
	assert.Len(t, env.ledger.lastSignatures(), 3)

	view, err = env.coordinator.Get(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusExecuted, view.Status)
	assert.Equal(t, "FAKEHASH000", view.TransactionHash)
	assert.False(t, view.CanExecute)
	require.NotNil(t, view.ExecutedAt)
}

func TestCreateProposalUnknownGroup(t *testing.T) {
	env := setupTestEnv(t, 3)

	_, err := env.coordinator.CreateProposal(
		context.Background(),
		uuid.NewString(),
		env.memberIds[0],
		[]byte(`{}`),
		"",
	)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, Kind(err))
}

func TestCreateProposalNonMember(t *testing.T) {
	env := setupTestEnv(t, 3)

	_, err := env.coordinator.CreateProposal(
		context.Background(),
		env.groupId,
		uuid.NewString(),
		[]byte(`{}`),
		"",
	)
	require.Error(t, err)
	assert.Equal(t, KindNotAMember, Kind(err))
}

// TestCreateProposalPrepareFailure verifies that a failed ledger prepare
// leaves no partial proposal behind
func TestCreateProposalPrepareFailure(t *testing.T) {
	env := setupTestEnv(t, 3)
	env.ledger.prepareFunc = func(
		_ context.Context,
		_ string,
		_ []byte,
	) ([]byte, error) {
		return nil, fmt.Errorf("%w: no funded account", ledger.ErrPrepareFailed)
	}

	_, err := env.coordinator.CreateProposal(
		context.Background(),
		env.groupId,
		env.memberIds[0],
		[]byte(`{}`),
		"",
	)
	require.Error(t, err)
	assert.Equal(t, KindLedgerPrepareFailed, Kind(err))

	views, err := env.coordinator.ListByGroup(
		context.Background(),
		env.groupId,
		"",
	)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListByGroup(t *testing.T) {
	env := setupTestEnv(t, 2)
	ctx := context.Background()

	first, err := env.coordinator.CreateProposal(
		ctx,
		env.groupId,
		env.memberIds[0],
		[]byte(`{"n":1}`),
		"first",
	)
	require.NoError(t, err)
	_, err = env.coordinator.CreateProposal(
		ctx,
		env.groupId,
		env.memberIds[1],
		[]byte(`{"n":2}`),
		"second",
	)
	require.NoError(t, err)

	views, err := env.coordinator.ListByGroup(ctx, env.groupId, "")
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = env.coordinator.ListByGroup(
		ctx,
		env.groupId,
		models.ProposalStatusPending,
	)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = env.coordinator.ListByGroup(
		ctx,
		env.groupId,
		models.ProposalStatusExecuted,
	)
	require.NoError(t, err)
	assert.Empty(t, views)

	// Unknown status filter
	_, err = env.coordinator.ListByGroup(ctx, env.groupId, "BOGUS")
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, Kind(err))

	// Sanity check the view round-trips the original proposal
	fetched, err := env.coordinator.Get(ctx, first.Id)
	require.NoError(t, err)
	assert.Equal(t, "first", fetched.Description)
}

func TestGetUnknownProposal(t *testing.T) {
	env := setupTestEnv(t, 1)

	_, err := env.coordinator.Get(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, Kind(err))
}
