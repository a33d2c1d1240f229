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

// SignatureView is a read-only projection of a recorded signature. The
// signature blob itself is omitted; it is only consumed by Execute.
type SignatureView struct {
	Id            string    `json:"id"`
	SignerId      string    `json:"signerId"`
	SignerAddress string    `json:"signerAddress"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProposalView is a read-only projection of a proposal and its signatures
type ProposalView struct {
	Id                 string                `json:"id"`
	GroupId            string                `json:"groupId"`
	ProposedBy         string                `json:"proposedBy"`
	TransactionPayload []byte                `json:"transactionPayload"`
	Description        string                `json:"description,omitempty"`
	Status             models.ProposalStatus `json:"status"`
	RequiredSignatures int                   `json:"requiredSignatures"`
	TotalSignatures    int                   `json:"totalSignatures"`
	CanExecute         bool                  `json:"canExecute"`
	TransactionHash    string                `json:"transactionHash,omitempty"`
	ErrorMessage       string                `json:"errorMessage,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	ExpiresAt          time.Time             `json:"expiresAt"`
	ExecutedAt         *time.Time            `json:"executedAt,omitempty"`
	Signatures         []SignatureView       `json:"signatures"`
}

// CreateProposal creates a new proposal for a group. The proposer must be
// an active group member. The transaction payload is normalized by the
// ledger at creation time so that sequence numbers and fees are fixed
// before any signatures are collected, and the active-member count is
// frozen as the required signature threshold.
//
// No partial state is persisted on failure; a failed prepare call leaves
// nothing behind and is safe to retry.
func (c *Coordinator) CreateProposal(
	ctx context.Context,
	groupId string,
	proposedBy string,
	payload []byte,
	description string,
) (*ProposalView, error) {
	group, err := c.config.db.GetGroup(groupId)
	if err != nil {
		if errors.Is(err, models.ErrGroupNotFound) {
			return nil, newError(
				KindNotFound,
				fmt.Sprintf("group %s not found", groupId),
			)
		}
		return nil, fmt.Errorf("failed to look up group: %w", err)
	}
	members, err := c.config.membership.ActiveMembers(ctx, groupId)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group membership: %w", err)
	}
	if !memberInSet(members, proposedBy) {
		return nil, newError(
			KindNotAMember,
			fmt.Sprintf(
				"%s is not an active member of group %s",
				proposedBy,
				groupId,
			),
		)
	}
	// Normalize the payload against the group's ledger account. Prepare is
	// idempotent, so a timeout here is safe to retry.
	prepareCtx, prepareCancel := context.WithTimeout(
		ctx,
		c.config.prepareTimeout,
	)
	defer prepareCancel()
	prepared, err := c.config.ledgerClient.Prepare(
		prepareCtx,
		group.LedgerAddress,
		payload,
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{
				Kind:      KindTimeout,
				Message:   "ledger prepare timed out",
				RetrySafe: true,
				cause:     err,
			}
		}
		return nil, wrapError(
			KindLedgerPrepareFailed,
			"failed to prepare transaction",
			err,
		)
	}
	now := time.Now().UTC()
	proposal := &models.Proposal{
		ID:                 uuid.NewString(),
		GroupID:            groupId,
		ProposedBy:         proposedBy,
		TransactionPayload: prepared,
		Description:        description,
		Status:             models.ProposalStatusPending,
		RequiredSignatures: len(members),
		CreatedAt:          now,
		ExpiresAt:          now.Add(c.config.proposalTTL),
	}
	if err := c.config.db.AddProposal(proposal); err != nil {
		return nil, err
	}
	c.logger.Info(
		"proposal created",
		"proposal_id", proposal.ID,
		"group_id", groupId,
		"required_signatures", proposal.RequiredSignatures,
	)
	if c.metrics != nil {
		c.metrics.proposalsCreated.Inc()
	}
	c.publishEvent(ProposalCreatedEventType, ProposalCreatedEvent{
		ProposalId:         proposal.ID,
		GroupId:            groupId,
		ProposedBy:         proposedBy,
		RequiredSignatures: proposal.RequiredSignatures,
		ExpiresAt:          proposal.ExpiresAt,
	})
	return c.buildView(proposal, nil), nil
}

// Get returns a read-only projection of a proposal and its signatures
func (c *Coordinator) Get(
	_ context.Context,
	proposalId string,
) (*ProposalView, error) {
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
	signatures, err := c.config.db.GetSignaturesByProposal(proposalId)
	if err != nil {
		return nil, err
	}
	return c.buildView(proposal, signatures), nil
}

// ListByGroup returns a group's proposals, newest first, optionally
// filtered by status
func (c *Coordinator) ListByGroup(
	_ context.Context,
	groupId string,
	statusFilter models.ProposalStatus,
) ([]*ProposalView, error) {
	if statusFilter != "" && !statusFilter.Valid() {
		return nil, newError(
			KindInvalidState,
			fmt.Sprintf("unknown status filter: %s", statusFilter),
		)
	}
	proposals, err := c.config.db.GetProposalsByGroup(groupId, statusFilter)
	if err != nil {
		return nil, err
	}
	views := make([]*ProposalView, 0, len(proposals))
	for _, proposal := range proposals {
		signatures, err := c.config.db.GetSignaturesByProposal(proposal.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, c.buildView(proposal, signatures))
	}
	return views, nil
}

func (c *Coordinator) buildView(
	proposal *models.Proposal,
	signatures []*models.Signature,
) *ProposalView {
	sigViews := make([]SignatureView, 0, len(signatures))
	for _, signature := range signatures {
		sigViews = append(sigViews, SignatureView{
			Id:            signature.ID,
			SignerId:      signature.SignerID,
			SignerAddress: signature.SignerAddress,
			CreatedAt:     signature.CreatedAt,
		})
	}
	return &ProposalView{
		Id:                 proposal.ID,
		GroupId:            proposal.GroupID,
		ProposedBy:         proposal.ProposedBy,
		TransactionPayload: proposal.TransactionPayload,
		Description:        proposal.Description,
		Status:             proposal.Status,
		RequiredSignatures: proposal.RequiredSignatures,
		TotalSignatures:    len(signatures),
		CanExecute:         proposal.Status == models.ProposalStatusReadyToExecute,
		TransactionHash:    proposal.TransactionHash,
		ErrorMessage:       proposal.ErrorMessage,
		CreatedAt:          proposal.CreatedAt,
		ExpiresAt:          proposal.ExpiresAt,
		ExecutedAt:         proposal.ExecutedAt,
		Signatures:         sigViews,
	}
}

func memberInSet(members []Member, memberId string) bool {
	for _, member := range members {
		if member.Id == memberId {
			return true
		}
	}
	return false
}
