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

package sqlite

import (
	"errors"

	"github.com/blinklabs-io/quorum/database/models"
	"gorm.io/gorm"
)

// AddGroup persists a new group
func (d *MetadataStoreSqlite) AddGroup(
	group *models.Group,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(group); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetGroup retrieves a group by ID. Returns models.ErrGroupNotFound if no
// such group exists.
func (d *MetadataStoreSqlite) GetGroup(
	groupId string,
	txn *gorm.DB,
) (*models.Group, error) {
	var group models.Group
	db := d.resolveDB(txn)
	if result := db.Where(
		"id = ?",
		groupId,
	).First(&group); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrGroupNotFound
		}
		return nil, result.Error
	}
	return &group, nil
}

// AddGroupMember persists a new group member
func (d *MetadataStoreSqlite) AddGroupMember(
	member *models.GroupMember,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(member); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetActiveGroupMembers retrieves a group's members with ACTIVE status
func (d *MetadataStoreSqlite) GetActiveGroupMembers(
	groupId string,
	txn *gorm.DB,
) ([]*models.GroupMember, error) {
	var members []*models.GroupMember
	db := d.resolveDB(txn)
	if result := db.Where(
		"group_id = ? AND status = ?",
		groupId,
		models.MemberStatusActive,
	).Order("created_at ASC, id ASC").Find(&members); result.Error != nil {
		return nil, result.Error
	}
	return members, nil
}
