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

import "errors"

// ErrorKind classifies coordinator errors so callers can distinguish
// validation failures, expected concurrency outcomes, and external-system
// failures without string matching.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindNotAMember          ErrorKind = "not_a_member"
	KindCredentialInvalid   ErrorKind = "credential_invalid"
	KindAlreadySigned       ErrorKind = "already_signed"
	KindInvalidState        ErrorKind = "invalid_state"
	KindNotReady            ErrorKind = "not_ready"
	KindExpired             ErrorKind = "expired"
	KindLedgerPrepareFailed ErrorKind = "ledger_prepare_failed"
	KindLedgerSubmitFailed  ErrorKind = "ledger_submit_failed"
	KindTimeout             ErrorKind = "timeout"
)

// Error is a coordinator error carrying a kind, a human-readable message,
// and whether retrying the same call is safe. AlreadySigned and NotReady
// are expected outcomes under concurrent use, not system faults.
type Error struct {
	Kind      ErrorKind
	Message   string
	RetrySafe bool
	cause     error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Kind extracts the ErrorKind from an error returned by the coordinator,
// or empty string for errors it did not produce
func Kind(err error) ErrorKind {
	var coordErr *Error
	if errors.As(err, &coordErr) {
		return coordErr.Kind
	}
	return ""
}
