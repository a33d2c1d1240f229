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
	"time"

	"github.com/blinklabs-io/quorum/database/models"
)

// AddCredential persists a new membership credential
func (d *Database) AddCredential(credential *models.Credential) error {
	if err := d.metadata.AddCredential(credential, nil); err != nil {
		return fmt.Errorf("failed to add credential: %w", err)
	}
	return nil
}

// GetValidCredential retrieves a currently valid credential of the given
// type for a subject within a group, or nil when none exists
func (d *Database) GetValidCredential(
	subjectId string,
	groupId string,
	credentialType string,
	now time.Time,
) (*models.Credential, error) {
	return d.metadata.GetValidCredential(
		subjectId,
		groupId,
		credentialType,
		now,
		nil,
	)
}
