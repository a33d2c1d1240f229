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
)

// ExecuteResult reports the terminal outcome of an execution attempt
type ExecuteResult struct {
	TransactionHash string `json:"transactionHash,omitempty"`
	ErrorMessage    string `json:"errorMessage,omitempty"`
	Success         bool   `json:"success"`
}

// Execute submits a quorum-complete proposal to the ledger. The CAS
// transition READY_TO_EXECUTE -> EXECUTING is the sole mechanism keeping
// concurrent Execute calls from double-submitting: at most one caller
// wins the transition, all others receive NotReady.
//
// Any failure during or after submission is terminal. The proposal moves
// to FAILED with a durable error message rather than being retried in
// place; the prepared payload carries a one-time sequence number, so a
// group wishing to retry must create a new proposal.
func (c *Coordinator) Execute(
	ctx context.Context,
	proposalId string,
) (*ExecuteResult, error) {
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
		if err := c.markExpired(proposal); err != nil {
			return nil, err
		}
		return nil, newError(
			KindExpired,
			fmt.Sprintf("proposal %s has expired", proposalId),
		)
	}
	won, err := c.config.db.CompareAndSetProposalStatus(
		proposalId,
		models.ProposalStatusReadyToExecute,
		models.ProposalStatusExecuting,
	)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, newError(
			KindNotReady,
			fmt.Sprintf(
				"proposal %s is not ready to execute",
				proposalId,
			),
		)
	}
	signatures, err := c.config.db.GetSignaturesByProposal(proposalId)
	if err != nil {
		return nil, err
	}
	if len(signatures) < proposal.RequiredSignatures {
		// Should be unreachable given the quorum transition, but the
		// state machine only moves forward from EXECUTING
		return c.finalize(
			proposal,
			models.ProposalStatusFailed,
			"",
			fmt.Sprintf(
				"signature count %d below required %d",
				len(signatures),
				proposal.RequiredSignatures,
			),
			wrapError(
				KindNotReady,
				"insufficient signatures at execution time",
				nil,
			),
		)
	}
	// Deterministically use the earliest signatures to satisfy quorum;
	// later ones remain recorded for audit
	sigBlobs := make([][]byte, 0, proposal.RequiredSignatures)
	for _, signature := range signatures[:proposal.RequiredSignatures] {
		sigBlobs = append(sigBlobs, signature.SignatureBlob)
	}
	submitCtx, submitCancel := context.WithTimeout(
		ctx,
		c.config.submitTimeout,
	)
	defer submitCancel()
	result, err := c.config.ledgerClient.SubmitSigned(
		submitCtx,
		proposal.TransactionPayload,
		sigBlobs,
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.finalize(
				proposal,
				models.ProposalStatusFailed,
				"",
				"ledger submission timed out; outcome unknown, reconcile against the ledger before retrying with a new proposal",
				wrapError(KindTimeout, "ledger submission timed out", err),
			)
		}
		return c.finalize(
			proposal,
			models.ProposalStatusFailed,
			"",
			err.Error(),
			wrapError(KindLedgerSubmitFailed, "failed to submit transaction", err),
		)
	}
	if !result.Success {
		errMsg := fmt.Sprintf(
			"ledger rejected transaction: %s",
			result.Result,
		)
		return c.finalize(
			proposal,
			models.ProposalStatusFailed,
			"",
			errMsg,
			nil,
		)
	}
	return c.finalize(
		proposal,
		models.ProposalStatusExecuted,
		result.Hash,
		"",
		nil,
	)
}

// finalize records the terminal outcome of the execution attempt and
// returns the result (and coordinator error, if any) to hand back to the
// caller. The outcome is durable even if the caller has gone away.
func (c *Coordinator) finalize(
	proposal *models.Proposal,
	status models.ProposalStatus,
	transactionHash string,
	errorMessage string,
	coordErr *Error,
) (*ExecuteResult, error) {
	executedAt := time.Now().UTC()
	won, err := c.config.db.FinalizeProposal(
		proposal.ID,
		status,
		transactionHash,
		errorMessage,
		executedAt,
	)
	if err != nil {
		return nil, err
	}
	if !won {
		// The proposal is no longer EXECUTING; nothing sane to record
		return nil, newError(
			KindInvalidState,
			fmt.Sprintf(
				"proposal %s was finalized concurrently",
				proposal.ID,
			),
		)
	}
	if status == models.ProposalStatusExecuted {
		c.logger.Info(
			"proposal executed",
			"proposal_id", proposal.ID,
			"transaction_hash", transactionHash,
		)
		if c.metrics != nil {
			c.metrics.executions.WithLabelValues("executed").Inc()
		}
		c.publishEvent(ProposalExecutedEventType, ProposalExecutedEvent{
			ProposalId:      proposal.ID,
			GroupId:         proposal.GroupID,
			TransactionHash: transactionHash,
		})
	} else {
		c.logger.Warn(
			"proposal execution failed",
			"proposal_id", proposal.ID,
			"error", errorMessage,
		)
		if c.metrics != nil {
			c.metrics.executions.WithLabelValues("failed").Inc()
		}
		c.publishEvent(ProposalFailedEventType, ProposalFailedEvent{
			ProposalId:   proposal.ID,
			GroupId:      proposal.GroupID,
			ErrorMessage: errorMessage,
		})
	}
	if coordErr != nil {
		return nil, coordErr
	}
	return &ExecuteResult{
		Success:         status == models.ProposalStatusExecuted,
		TransactionHash: transactionHash,
		ErrorMessage:    errorMessage,
	}, nil
}
