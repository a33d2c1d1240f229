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

var ErrProposalNotFound = errors.New("proposal not found")

// ProposalStatus is the lifecycle state of a proposal. Status only ever
// moves forward: PENDING -> {READY_TO_EXECUTE, EXPIRED},
// READY_TO_EXECUTE -> {EXECUTING, EXPIRED}, EXECUTING -> {EXECUTED, FAILED}.
type ProposalStatus string

const (
	ProposalStatusPending        ProposalStatus = "PENDING"
	ProposalStatusReadyToExecute ProposalStatus = "READY_TO_EXECUTE"
	ProposalStatusExecuting      ProposalStatus = "EXECUTING"
	ProposalStatusExecuted       ProposalStatus = "EXECUTED"
	ProposalStatusFailed         ProposalStatus = "FAILED"
	ProposalStatusExpired        ProposalStatus = "EXPIRED"
)

// Valid returns true if the status is a known proposal status
func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusReadyToExecute,
		ProposalStatusExecuting, ProposalStatusExecuted,
		ProposalStatusFailed, ProposalStatusExpired:
		return true
	default:
		return false
	}
}

// Terminal returns true if no further transitions are possible from the status
func (s ProposalStatus) Terminal() bool {
	switch s {
	case ProposalStatusExecuted, ProposalStatusFailed, ProposalStatusExpired:
		return true
	default:
		return false
	}
}

// Proposal represents a pending multi-party transaction awaiting signatures.
// TransactionPayload holds the ledger-normalized payload as an opaque blob;
// it is immutable once the proposal is created. RequiredSignatures is frozen
// at creation time and is not affected by later membership changes.
type Proposal struct {
	ID                 string         `gorm:"primaryKey;size:36"`
	GroupID            string         `gorm:"index;size:36;not null"`
	ProposedBy         string         `gorm:"size:36;not null"`
	TransactionPayload []byte         `gorm:"not null"`
	Description        string         `gorm:"size:1024"`
	Status             ProposalStatus `gorm:"index;size:20;not null"`
	RequiredSignatures int            `gorm:"not null"`
	TransactionHash    string         `gorm:"size:128"`
	ErrorMessage       string         `gorm:"size:1024"`
	CreatedAt          time.Time      `gorm:"index;not null"`
	ExpiresAt          time.Time      `gorm:"index;not null"`
	ExecutedAt         *time.Time
}

// TableName returns the table name
func (Proposal) TableName() string {
	return "proposal"
}
