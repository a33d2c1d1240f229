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
	"errors"
	"fmt"
	"time"

	"github.com/blinklabs-io/quorum/database/models"
	"github.com/google/uuid"
)

// SignResult reports the outcome of an accepted signature
type SignResult struct {
	Accepted           bool `json:"accepted"`
	TotalSignatures    int  `json:"totalSignatures"`
	RequiredSignatures int  `json:"requiredSignatures"`
	ReadyToExecute     bool `json:"readyToExecute"`
}

// Sign records one member's signature over a proposal's transaction
// payload. The signature blob is produced by the caller's own signing
// step; the coordinator never handles key material.
//
// Preconditions are checked in order and short-circuit on first failure:
// proposal exists, not expired, still PENDING, signer is an active
// member, signer holds a valid credential, signer has not already signed.
// The pre-check for a duplicate is advisory only; the store's unique
// index is what decides concurrent races, so the loser of two
// simultaneous calls receives AlreadySigned even if its pre-check passed.
func (c *Coordinator) Sign(
	ctx context.Context,
	proposalId string,
	signerId string,
	signerAddress string,
	signatureBlob []byte,
) (*SignResult, error) {
	proposal, err := c.config.db.GetProposal(proposalId)
	if err != nil {
		if errors.Is(err, models.ErrProposalNotFound) {
			return nil, newError(
				KindNotFound,
				fmt.Sprintf("proposal %s not found", proposalId),
			)
		}
		return nil, err
	}
	now := time.Now().UTC()
	if proposal.Status == models.ProposalStatusExpired ||
		(!now.Before(proposal.ExpiresAt) && expirable(proposal.Status)) {
		// Expiry discovered lazily by whichever caller touches the
		// proposal first
		if err := c.markExpired(proposal); err != nil {
			return nil, err
		}
		return nil, newError(
			KindExpired,
			fmt.Sprintf("proposal %s has expired", proposalId),
		)
	}
	if proposal.Status != models.ProposalStatusPending {
		return nil, newError(
			KindInvalidState,
			fmt.Sprintf(
				"proposal %s is %s, not %s",
				proposalId,
				proposal.Status,
				models.ProposalStatusPending,
			),
		)
	}
	members, err := c.config.membership.ActiveMembers(ctx, proposal.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group membership: %w", err)
	}
	if !memberInSet(members, signerId) {
		return nil, newError(
			KindNotAMember,
			fmt.Sprintf(
				"%s is not an active member of group %s",
				signerId,
				proposal.GroupID,
			),
		)
	}
	hasCredential, err := c.config.credentials.HasValidCredential(
		ctx,
		signerId,
		proposal.GroupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check credential: %w", err)
	}
	if !hasCredential {
		return nil, newError(
			KindCredentialInvalid,
			fmt.Sprintf(
				"%s does not hold a valid membership credential for group %s",
				signerId,
				proposal.GroupID,
			),
		)
	}
	existing, err := c.config.db.GetSignatureBySigner(proposalId, signerId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError(
			KindAlreadySigned,
			fmt.Sprintf("%s has already signed proposal %s", signerId, proposalId),
		)
	}
	signature := &models.Signature{
		ID:            uuid.NewString(),
		ProposalID:    proposalId,
		SignerID:      signerId,
		SignerAddress: signerAddress,
		SignatureBlob: signatureBlob,
		CreatedAt:     now,
	}
	if err := c.config.db.AddSignature(signature); err != nil {
		if errors.Is(err, models.ErrSignatureExists) {
			// Lost a race with a concurrent call for the same signer
			return nil, newError(
				KindAlreadySigned,
				fmt.Sprintf(
					"%s has already signed proposal %s",
					signerId,
					proposalId,
				),
			)
		}
		return nil, err
	}
	count, err := c.config.db.CountSignaturesByProposal(proposalId)
	if err != nil {
		return nil, err
	}
	ready := count >= int64(proposal.RequiredSignatures)
	if ready {
		// Only one of the signers racing past the quorum boundary wins
		// this transition; the others see ready without publishing
		won, err := c.config.db.CompareAndSetProposalStatus(
			proposalId,
			models.ProposalStatusPending,
			models.ProposalStatusReadyToExecute,
		)
		if err != nil {
			return nil, err
		}
		if won {
			c.logger.Info(
				"proposal reached quorum",
				"proposal_id", proposalId,
				"signatures", count,
			)
			if c.metrics != nil {
				c.metrics.proposalsReady.Inc()
			}
			c.publishEvent(ProposalReadyEventType, ProposalReadyEvent{
				ProposalId: proposalId,
				GroupId:    proposal.GroupID,
			})
		}
	}
	if c.metrics != nil {
		c.metrics.signaturesAccepted.Inc()
	}
	c.publishEvent(ProposalSignedEventType, ProposalSignedEvent{
		ProposalId:         proposalId,
		SignerId:           signerId,
		TotalSignatures:    int(count),
		RequiredSignatures: proposal.RequiredSignatures,
	})
	return &SignResult{
		Accepted:           true,
		TotalSignatures:    int(count),
		RequiredSignatures: proposal.RequiredSignatures,
		ReadyToExecute:     ready,
	}, nil
}
