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
	"errors"

	"github.com/blinklabs-io/quorum/database/models"
	"gorm.io/gorm"
)

// AddSignature persists a new signature. The composite unique index on
// (proposal_id, signer_id) makes this safe under concurrent inserts for
// the same signer; the loser receives models.ErrSignatureExists.
func (d *MetadataStoreSqlite) AddSignature(
	signature *models.Signature,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(signature); result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return models.ErrSignatureExists
		}
		return result.Error
	}
	return nil
}

// GetSignatureBySigner retrieves a signer's signature on a proposal, or
// nil when the signer has not signed
func (d *MetadataStoreSqlite) GetSignatureBySigner(
	proposalId string,
	signerId string,
	txn *gorm.DB,
) (*models.Signature, error) {
	var signature models.Signature
	db := d.resolveDB(txn)
	if result := db.Where(
		"proposal_id = ? AND signer_id = ?",
		proposalId,
		signerId,
	).First(&signature); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &signature, nil
}

// GetSignaturesByProposal retrieves all signatures for a proposal in
// acceptance order (earliest first, ID as tiebreaker for determinism).
func (d *MetadataStoreSqlite) GetSignaturesByProposal(
	proposalId string,
	txn *gorm.DB,
) ([]*models.Signature, error) {
	var signatures []*models.Signature
	db := d.resolveDB(txn)
	if result := db.Where(
		"proposal_id = ?",
		proposalId,
	).Order(
		"created_at ASC, id ASC",
	).Find(&signatures); result.Error != nil {
		return nil, result.Error
	}
	return signatures, nil
}

// CountSignaturesByProposal returns the number of signatures recorded for
// a proposal
func (d *MetadataStoreSqlite) CountSignaturesByProposal(
	proposalId string,
	txn *gorm.DB,
) (int64, error) {
	var count int64
	db := d.resolveDB(txn)
	if result := db.Model(&models.Signature{}).Where(
		"proposal_id = ?",
		proposalId,
	).Count(&count); result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
