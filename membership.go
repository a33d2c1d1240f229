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
	"time"

	"github.com/blinklabs-io/quorum/database"
	"github.com/blinklabs-io/quorum/database/models"
)

// StoreMembershipResolver resolves active membership from the group
// records in the coordinator's own database
type StoreMembershipResolver struct {
	db *database.Database
}

// NewStoreMembershipResolver creates a store-backed membership resolver
func NewStoreMembershipResolver(
	db *database.Database,
) *StoreMembershipResolver {
	return &StoreMembershipResolver{db: db}
}

// ActiveMembers returns the group's members with ACTIVE status
func (r *StoreMembershipResolver) ActiveMembers(
	_ context.Context,
	groupId string,
) ([]Member, error) {
	groupMembers, err := r.db.GetActiveGroupMembers(groupId)
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(groupMembers))
	for _, groupMember := range groupMembers {
		members = append(members, Member{
			Id:             groupMember.MemberID,
			SigningAddress: groupMember.SigningAddress,
		})
	}
	return members, nil
}

// StoreCredentialGate checks membership credentials recorded in the
// coordinator's own database. Credential issuance happens elsewhere; the
// gate only answers validity (present, unexpired, not revoked).
type StoreCredentialGate struct {
	db *database.Database
}

// NewStoreCredentialGate creates a store-backed credential gate
func NewStoreCredentialGate(db *database.Database) *StoreCredentialGate {
	return &StoreCredentialGate{db: db}
}

// HasValidCredential reports whether the signer holds a valid GROUP_MEMBER
// credential for the group
func (g *StoreCredentialGate) HasValidCredential(
	_ context.Context,
	signerId string,
	groupId string,
) (bool, error) {
	credential, err := g.db.GetValidCredential(
		signerId,
		groupId,
		models.CredentialTypeGroupMember,
		time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	return credential != nil, nil
}
