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

	"github.com/blinklabs-io/quorum/database/models"
)

// expirable reports whether a status permits a transition to EXPIRED.
// EXECUTING is deliberately excluded: a submission already in flight runs
// to its own terminal state under the submit timeout.
func expirable(status models.ProposalStatus) bool {
	return status == models.ProposalStatusPending ||
		status == models.ProposalStatusReadyToExecute
}

// markExpired transitions a stale proposal to EXPIRED via CAS from its
// last observed status. Losing the CAS is fine: someone else already
// moved the proposal on.
func (c *Coordinator) markExpired(proposal *models.Proposal) error {
	if !expirable(proposal.Status) {
		return nil
	}
	won, err := c.config.db.CompareAndSetProposalStatus(
		proposal.ID,
		proposal.Status,
		models.ProposalStatusExpired,
	)
	if err != nil {
		return err
	}
	if won {
		c.logger.Info(
			"proposal expired",
			"proposal_id", proposal.ID,
			"group_id", proposal.GroupID,
		)
		if c.metrics != nil {
			c.metrics.proposalsExpired.Inc()
		}
		c.publishEvent(ProposalExpiredEventType, ProposalExpiredEvent{
			ProposalId: proposal.ID,
			GroupId:    proposal.GroupID,
		})
	}
	return nil
}

// sweepLoop periodically marks stale proposals expired. The sweep is an
// optimization for listing and reporting; correctness does not depend on
// it since Sign and Execute expire lazily on touch.
func (c *Coordinator) sweepLoop() {
	defer c.sweepWg.Done()
	ticker := time.NewTicker(c.config.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.expireStale(); err != nil {
				c.logger.Error(
					"expiry sweep failed",
					"error", err,
				)
			}
		}
	}
}

func (c *Coordinator) expireStale() error {
	stale, err := c.config.db.GetStaleProposals(time.Now().UTC())
	if err != nil {
		return err
	}
	for _, proposal := range stale {
		if err := c.markExpired(proposal); err != nil {
			return err
		}
	}
	if len(stale) > 0 {
		c.logger.Debug(
			"expiry sweep complete",
			"proposals", len(stale),
		)
	}
	return nil
}
