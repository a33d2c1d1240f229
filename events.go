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
	"time"

	"github.com/blinklabs-io/quorum/event"
)

const (
	// ProposalCreatedEventType is emitted after a proposal is persisted
	ProposalCreatedEventType = event.EventType("proposal.created")
	// ProposalSignedEventType is emitted after a signature is accepted
	ProposalSignedEventType = event.EventType("proposal.signed")
	// ProposalReadyEventType is emitted by the caller that wins the
	// quorum transition to READY_TO_EXECUTE
	ProposalReadyEventType = event.EventType("proposal.ready")
	// ProposalExecutedEventType is emitted after a successful ledger
	// submission
	ProposalExecutedEventType = event.EventType("proposal.executed")
	// ProposalFailedEventType is emitted after a failed execution attempt
	ProposalFailedEventType = event.EventType("proposal.failed")
	// ProposalExpiredEventType is emitted when a proposal is marked
	// expired, whether lazily or by the sweep
	ProposalExpiredEventType = event.EventType("proposal.expired")
)

// ProposalCreatedEvent is the payload for ProposalCreatedEventType
type ProposalCreatedEvent struct {
	ProposalId         string
	GroupId            string
	ProposedBy         string
	RequiredSignatures int
	ExpiresAt          time.Time
}

// ProposalSignedEvent is the payload for ProposalSignedEventType
type ProposalSignedEvent struct {
	ProposalId         string
	SignerId           string
	TotalSignatures    int
	RequiredSignatures int
}

// ProposalReadyEvent is the payload for ProposalReadyEventType
type ProposalReadyEvent struct {
	ProposalId string
	GroupId    string
}

// ProposalExecutedEvent is the payload for ProposalExecutedEventType
type ProposalExecutedEvent struct {
	ProposalId      string
	GroupId         string
	TransactionHash string
}

// ProposalFailedEvent is the payload for ProposalFailedEventType
type ProposalFailedEvent struct {
	ProposalId   string
	GroupId      string
	ErrorMessage string
}

// ProposalExpiredEvent is the payload for ProposalExpiredEventType
type ProposalExpiredEvent struct {
	ProposalId string
	GroupId    string
}
