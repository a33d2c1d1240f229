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

package sqlite

import (
	"testing"
	"time"

	"github.com/blinklabs-io/quorum/database/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignature(proposalId, signerId string) *models.Signature {
	return &models.Signature{
		ID:            uuid.NewString(),
		ProposalID:    proposalId,
		SignerID:      signerId,
		SignerAddress: "rSigner" + signerId[:8],
		SignatureBlob: []byte("signed-blob-" + signerId),
		CreatedAt:     time.Now().UTC(),
	}
}

func TestAddSignatureDuplicate(t *testing.T) {
	store := setupTestStore(t)

	proposalId := uuid.NewString()
	signerId := uuid.NewString()
	require.NoError(t, store.AddSignature(
		testSignature(proposalId, signerId), nil,
	))

	// Same signer again on the same proposal
	err := store.AddSignature(testSignature(proposalId, signerId), nil)
	require.ErrorIs(t, err, models.ErrSignatureExists)

	// Same signer on a different proposal is fine
	require.NoError(t, store.AddSignature(
		testSignature(uuid.NewString(), signerId), nil,
	))

	count, err := store.CountSignaturesByProposal(proposalId, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetSignatureBySigner(t *testing.T) {
	store := setupTestStore(t)

	proposalId := uuid.NewString()
	signerId := uuid.NewString()

	// No signature yet
	sig, err := store.GetSignatureBySigner(proposalId, signerId, nil)
	require.NoError(t, err)
	assert.Nil(t, sig)

	require.NoError(t, store.AddSignature(
		testSignature(proposalId, signerId), nil,
	))

	sig, err = store.GetSignatureBySigner(proposalId, signerId, nil)
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, signerId, sig.SignerID)
}

func TestGetSignaturesByProposalOrder(t *testing.T) {
	store := setupTestStore(t)

	proposalId := uuid.NewString()
	now := time.Now().UTC()
	var signerIds []string
	// Insert out of order to verify acceptance ordering
	for _, offset := range []time.Duration{
		2 * time.Minute, 0, time.Minute,
	} {
		sig := testSignature(proposalId, uuid.NewString())
		sig.CreatedAt = now.Add(offset)
		require.NoError(t, store.AddSignature(sig, nil))
		signerIds = append(signerIds, sig.SignerID)
	}

	signatures, err := store.GetSignaturesByProposal(proposalId, nil)
	require.NoError(t, err)
	require.Len(t, signatures, 3)
	// Earliest first
	assert.Equal(t, signerIds[1], signatures[0].SignerID)
	assert.Equal(t, signerIds[2], signatures[1].SignerID)
	assert.Equal(t, signerIds[0], signatures[2].SignerID)

	count, err := store.CountSignaturesByProposal(proposalId, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
