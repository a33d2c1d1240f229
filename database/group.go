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
	"fmt"

	"github.com/blinklabs-io/quorum/database/models"
)

// AddGroup persists a new group
func (d *Database) AddGroup(group *models.Group) error {
	if err := d.metadata.AddGroup(group, nil); err != nil {
		return fmt.Errorf("failed to add group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID
func (d *Database) GetGroup(groupId string) (*models.Group, error) {
	return d.metadata.GetGroup(groupId, nil)
}

// AddGroupMember persists a new group member
func (d *Database) AddGroupMember(member *models.GroupMember) error {
	if err := d.metadata.AddGroupMember(member, nil); err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// GetActiveGroupMembers retrieves a group's ACTIVE members
func (d *Database) GetActiveGroupMembers(
	groupId string,
) ([]*models.GroupMember, error) {
	return d.metadata.GetActiveGroupMembers(groupId, nil)
}
