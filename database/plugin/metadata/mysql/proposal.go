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

package mysql

import (
	"errors"
	"time"

	"github.com/blinklabs-io/quorum/database/models"
	"gorm.io/gorm"
)

// AddProposal persists a new proposal
func (d *MetadataStoreMysql) AddProposal(
	proposal *models.Proposal,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(proposal); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetProposal retrieves a proposal by ID. Returns
// models.ErrProposalNotFound if no such proposal exists.
func (d *MetadataStoreMysql) GetProposal(
	proposalId string,
	txn *gorm.DB,
) (*models.Proposal, error) {
	var proposal models.Proposal
	db := d.resolveDB(txn)
	if result := db.Where(
		"id = ?",
		proposalId,
	).First(&proposal); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrProposalNotFound
		}
		return nil, result.Error
	}
	return &proposal, nil
}

// GetProposalsByGroup retrieves all proposals for a group, newest first,
// optionally filtered by status (empty status matches all).
func (d *MetadataStoreMysql) GetProposalsByGroup(
	groupId string,
	status models.ProposalStatus,
	txn *gorm.DB,
) ([]*models.Proposal, error) {
	var proposals []*models.Proposal
	db := d.resolveDB(txn).Where("group_id = ?", groupId)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if result := db.Order(
		"created_at DESC, id DESC",
	).Find(&proposals); result.Error != nil {
		return nil, result.Error
	}
	return proposals, nil
}

// GetStaleProposals retrieves non-terminal proposals whose expiry has
// passed. Used by the periodic expiry sweep.
func (d *MetadataStoreMysql) GetStaleProposals(
	now time.Time,
	txn *gorm.DB,
) ([]*models.Proposal, error) {
	var proposals []*models.Proposal
	db := d.resolveDB(txn)
	if result := db.Where(
		"status IN ? AND expires_at <= ?",
		[]models.ProposalStatus{
			models.ProposalStatusPending,
			models.ProposalStatusReadyToExecute,
		},
		now,
	).Find(&proposals); result.Error != nil {
		return nil, result.Error
	}
	return proposals, nil
}

// CompareAndSetProposalStatus transitions a proposal's status only if the
// current status matches the expected one. The returned bool reports
// whether the conditional update won; a false return with nil error means
// another caller transitioned the proposal first.
func (d *MetadataStoreMysql) CompareAndSetProposalStatus(
	proposalId string,
	expected models.ProposalStatus,
	newStatus models.ProposalStatus,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.Proposal{}).
		Where("id = ? AND status = ?", proposalId, expected).
		Update("status", newStatus)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FinalizeProposal records the terminal outcome of an execution attempt.
// The update is guarded on the proposal still being EXECUTING so a
// delayed finalization cannot clobber a proposal finalized elsewhere.
func (d *MetadataStoreMysql) FinalizeProposal(
	proposalId string,
	newStatus models.ProposalStatus,
	transactionHash string,
	errorMessage string,
	executedAt time.Time,
	txn *gorm.DB,
) (bool, error) {
	db := d.resolveDB(txn)
	result := db.Model(&models.Proposal{}).
		Where(
			"id = ? AND status = ?",
			proposalId,
			models.ProposalStatusExecuting,
		).
		Updates(map[string]any{
			"status":           newStatus,
			"transaction_hash": transactionHash,
			"error_message":    errorMessage,
			"executed_at":      executedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
