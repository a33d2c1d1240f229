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

import "time"

// CredentialTypeGroupMember is the credential type checked before a
// member's signature is accepted
const CredentialTypeGroupMember = "GROUP_MEMBER"

// Credential is a time-bounded proof of group membership issued by an
// external subsystem. Issuance is out of scope here; the coordinator only
// checks validity (not expired, not revoked) at signing time.
type Credential struct {
	ID             string    `gorm:"primaryKey;size:36"`
	SubjectID      string    `gorm:"index:idx_credential_subject_group;size:36;not null"`
	GroupID        string    `gorm:"index:idx_credential_subject_group;size:36;not null"`
	CredentialType string    `gorm:"size:64;not null"`
	Revoked        bool      `gorm:"not null"`
	IssuedAt       time.Time `gorm:"not null"`
	ExpiresAt      time.Time `gorm:"index;not null"`
}

// TableName returns the table name
func (Credential) TableName() string {
	return "credential"
}
