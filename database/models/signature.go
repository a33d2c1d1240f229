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

package models

import (
	"errors"
	"time"
)

// ErrSignatureExists is returned when a signature already exists for the
// same (proposal, signer) pair. The composite unique index is what makes
// duplicate detection safe under concurrent inserts.
var ErrSignatureExists = errors.New("signature already exists for signer")

// Signature is one member's signature over a proposal's transaction
// payload. Rows are never mutated or deleted; they are retained for audit
// after the proposal reaches a terminal state.
type Signature struct {
	ID            string    `gorm:"primaryKey;size:36"`
	ProposalID    string    `gorm:"uniqueIndex:idx_signature_proposal_signer,priority:1;size:36;not null"`
	SignerID      string    `gorm:"uniqueIndex:idx_signature_proposal_signer,priority:2;size:36;not null"`
	SignerAddress string    `gorm:"size:128;not null"`
	SignatureBlob []byte    `gorm:"not null"`
	CreatedAt     time.Time `gorm:"index;not null"`
}

// TableName returns the table name
func (Signature) TableName() string {
	return "signature"
}
