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

package database

import (
	"fmt"
	"time"

	"github.com/blinklabs-io/quorum/database/models"
)

// AddProposal persists a new proposal
func (d *Database) AddProposal(proposal *models.Proposal) error {
	if err := d.metadata.AddProposal(proposal, nil); err != nil {
		return fmt.Errorf("failed to add proposal: %w", err)
	}
	return nil
}

// GetProposal retrieves a proposal by ID
func (d *Database) GetProposal(
	proposalId string,
) (*models.Proposal, error) {
	return d.metadata.GetProposal(proposalId, nil)
}

// GetProposalsByGroup retrieves a group's proposals, newest first,
// optionally filtered by status
func (d *Database) GetProposalsByGroup(
	groupId string,
	status models.ProposalStatus,
) ([]*models.Proposal, error) {
	return d.metadata.GetProposalsByGroup(groupId, status, nil)
}

// GetStaleProposals retrieves non-terminal proposals past their expiry
func (d *Database) GetStaleProposals(
	now time.Time,
) ([]*models.Proposal, error) {
	return d.metadata.GetStaleProposals(now, nil)
}

// CompareAndSetProposalStatus performs a conditional status transition,
// reporting whether this caller won the transition
func (d *Database) CompareAndSetProposalStatus(
	proposalId string,
	expected models.ProposalStatus,
	newStatus models.ProposalStatus,
) (bool, error) {
	won, err := d.metadata.CompareAndSetProposalStatus(
		proposalId,
		expected,
		newStatus,
		nil,
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to transition proposal %s from %s to %s: %w",
			proposalId,
			expected,
			newStatus,
			err,
		)
	}
	return won, nil
}

// FinalizeProposal records the terminal outcome of an execution attempt
func (d *Database) FinalizeProposal(
	proposalId string,
	newStatus models.ProposalStatus,
	transactionHash string,
	errorMessage string,
	executedAt time.Time,
) (bool, error) {
	won, err := d.metadata.FinalizeProposal(
		proposalId,
		newStatus,
		transactionHash,
		errorMessage,
		executedAt,
		nil,
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to finalize proposal %s: %w",
			proposalId,
			err,
		)
	}
	return won, nil
}
