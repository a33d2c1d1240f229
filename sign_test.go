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
	"testing"
	"time"

	"github.com/blinklabs-io/quorum/database/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProposal(t *testing.T, env *testEnv) *ProposalView {
	t.Helper()
	view, err := env.coordinator.CreateProposal(
		context.Background(),
		env.groupId,
		env.memberIds[0],
		[]byte(`{"amount":"50"}`),
		"",
	)
	require.NoError(t, err)
	return view
}

func TestSignUnknownProposal(t *testing.T) {
	env := setupTestEnv(t, 3)

	_, err := env.coordinator.Sign(
		context.Background(),
		uuid.NewString(),
		env.memberIds[0],
		"rAddr",
		[]byte("sig"),
	)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, Kind(err))
}

func TestSignNonMember(t *testing.T) {
	env := setupTestEnv(t, 3)
	view := createTestProposal(t, env)

	_, err := env.coordinator.Sign(
		context.Background(),
		view.Id,
		uuid.NewString(),
		"rOutsider",
		[]byte("sig"),
	)
	require.Error(t, err)
	assert.Equal(t, KindNotAMember, Kind(err))

	// Nothing was recorded
	fetched, err := env.coordinator.Get(context.Background(), view.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.TotalSignatures)
}

func TestSignWithoutValidCredential(t *testing.T) {
	env := setupTestEnv(t, 2)
	ctx := context.Background()

	// Add an active member whose only credential has expired
	memberId := uuid.NewString()
	now := time.Now().UTC()
	require.NoError(t, env.db.AddGroupMember(&models.GroupMember{
		GroupID:        env.groupId,
		MemberID:       memberId,
		SigningAddress: "rLapsed",
		Status:         models.MemberStatusActive,
		CreatedAt:      now,
	}))
	require.NoError(t, env.db.AddCredential(&models.Credential{
		ID:             uuid.NewString(),
		SubjectID:      memberId,
		GroupID:        env.groupId,
		CredentialType: models.CredentialTypeGroupMember,
		IssuedAt:       now.Add(-48 * time.Hour),
		ExpiresAt:      now.Add(-time.Hour),
	}))

	view := createTestProposal(t, env)
	_, err := env.coordinator.Sign(
		ctx,
		view.Id,
		memberId,
		"rLapsed",
		[]byte("sig"),
	)
	require.Error(t, err)
	assert.Equal(t, KindCredentialInvalid, Kind(err))
}

func TestSignDuplicate(t *testing.T) {
	env := setupTestEnv(t, 3)
	ctx := context.Background()
	view := createTestProposal(t, env)

	_, err := env.coordinator.Sign(
		ctx,
		view.Id,
		env.memberIds[0],
		"rAddr",
		[]byte("sig"),
	)
	require.NoError(t, err)

	_, err = env.coordinator.Sign(
		ctx,
		view.Id,
		env.memberIds[0],
		"rAddr",
		[]byte("sig"),
	)
	require.Error(t, err)
	assert.Equal(t, KindAlreadySigned, Kind(err))

	fetched, err := env.coordinator.Get(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.TotalSignatures)
}

// TestSignAfterQuorum verifies two things at once: the signature
// threshold is frozen at creation regardless of later membership
// changes, and a proposal past PENDING no longer accepts signatures.
func TestSignAfterQuorum(t *testing.T) {
	env := setupTestEnv(t, 2)
	ctx := context.Background()
	view := createTestProposal(t, env)
	assert.Equal(t, 2, view.RequiredSignatures)

	// A member joining after creation does not raise the threshold
	lateMember := addTestMember(t, env.db, env.groupId)

	for _, memberId := range env.memberIds {
		result, err := env.coordinator.Sign(
			ctx,
			view.Id,
			memberId,
			"rAddr",
			[]byte("sig-"+memberId),
		)
		require.NoError(t, err)
		assert.Equal(t, 2, result.RequiredSignatures)
	}

	fetched, err := env.coordinator.Get(ctx, view.Id)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusReadyToExecute, fetched.Status)

	_, err = env.coordinator.Sign(
		ctx,
		view.Id,
		lateMember,
		"rLate",
		[]byte("sig-late"),
	)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, Kind(err))
}
