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

package ledger

import (
	"context"
	"errors"
)

var (
	// ErrPrepareFailed indicates the ledger rejected or failed to
	// normalize a transaction payload
	ErrPrepareFailed = errors.New("ledger prepare failed")
	// ErrSubmitFailed indicates the signed transaction could not be
	// submitted or was not accepted by the ledger network
	ErrSubmitFailed = errors.New("ledger submit failed")
)

// SubmitResult is the terminal outcome of a signed transaction submission
type SubmitResult struct {
	// Hash is the ledger-assigned transaction reference
	Hash string
	// Result is the ledger engine's result code, if any
	Result string
	// Success reports whether the transaction was accepted and finalized
	Success bool
}

// Client is the boundary to the external ledger network. The coordinator
// treats transaction payloads as opaque blobs; preparing fixes account
// sequence numbers and fees at proposal time, and submission blocks until
// a terminal result is known or the context deadline elapses.
//
// Prepare is idempotent and safe to retry. SubmitSigned is NOT safe to
// blindly retry: the prepared payload carries a one-time sequence number.
type Client interface {
	Prepare(
		ctx context.Context,
		account string,
		payload []byte,
	) ([]byte, error)
	SubmitSigned(
		ctx context.Context,
		payload []byte,
		signatures [][]byte,
	) (*SubmitResult, error)
}
