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

package mysql

import (
	"errors"
	"time"

	"github.com/blinklabs-io/quorum/database/models"
	"gorm.io/gorm"
)

// AddCredential persists a new membership credential
func (d *MetadataStoreMysql) AddCredential(
	credential *models.Credential,
	txn *gorm.DB,
) error {
	db := d.resolveDB(txn)
	if result := db.Create(credential); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetValidCredential retrieves a non-revoked, non-expired credential of
// the given type for a subject within a group. Returns nil without error
// when no valid credential exists.
func (d *MetadataStoreMysql) GetValidCredential(
	subjectId string,
	groupId string,
	credentialType string,
	now time.Time,
	txn *gorm.DB,
) (*models.Credential, error) {
	var credential models.Credential
	db := d.resolveDB(txn)
	if result := db.Where(
		"subject_id = ? AND group_id = ? AND credential_type = ? AND revoked = ? AND expires_at > ?",
		subjectId,
		groupId,
		credentialType,
		false,
		now,
	).Order("expires_at DESC").First(&credential); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &credential, nil
}
