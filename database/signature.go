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
	"errors"
	"fmt"

	"github.com/blinklabs-io/quorum/database/models"
)

// AddSignature persists a new signature. Returns
// models.ErrSignatureExists unwrapped so callers can match on it.
func (d *Database) AddSignature(signature *models.Signature) error {
	if err := d.metadata.AddSignature(signature, nil); err != nil {
		if errors.Is(err, models.ErrSignatureExists) {
			return err
		}
		return fmt.Errorf("failed to add signature: %w", err)
	}
	return nil
}

// GetSignatureBySigner retrieves a signer's signature on a proposal, or
// nil when the signer has not signed
func (d *Database) GetSignatureBySigner(
	proposalId string,
	signerId string,
) (*models.Signature, error) {
	return d.metadata.GetSignatureBySigner(proposalId, signerId, nil)
}

// GetSignaturesByProposal retrieves a proposal's signatures in acceptance
// order
func (d *Database) GetSignaturesByProposal(
	proposalId string,
) ([]*models.Signature, error) {
	return d.metadata.GetSignaturesByProposal(proposalId, nil)
}

// CountSignaturesByProposal returns the number of signatures recorded for
// a proposal
func (d *Database) CountSignaturesByProposal(
	proposalId string,
) (int64, error) {
	return d.metadata.CountSignaturesByProposal(proposalId, nil)
}
