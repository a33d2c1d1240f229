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

package metadata

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/blinklabs-io/quorum/database/models"
	"github.com/blinklabs-io/quorum/database/plugin/metadata/mysql"
	"github.com/blinklabs-io/quorum/database/plugin/metadata/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// MetadataStore is the interface for durable proposal/signature storage.
// All mutating methods accept an optional transaction handle; passing nil
// runs the operation on the base connection.
//
// CompareAndSetProposalStatus and FinalizeProposal are the only
// concurrency primitives the coordinator relies on: both are implemented
// as conditional UPDATEs keyed on the expected prior status, and report
// via their bool return whether the transition was won.
type MetadataStore interface {
	Close() error
	DB() *gorm.DB
	Transaction() *gorm.DB

	// Proposals
	AddProposal(*models.Proposal, *gorm.DB) error
	GetProposal(string, *gorm.DB) (*models.Proposal, error)
	GetProposalsByGroup(
		string,
		models.ProposalStatus,
		*gorm.DB,
	) ([]*models.Proposal, error)
	GetStaleProposals(time.Time, *gorm.DB) ([]*models.Proposal, error)
	CompareAndSetProposalStatus(
		string,
		models.ProposalStatus,
		models.ProposalStatus,
		*gorm.DB,
	) (bool, error)
	FinalizeProposal(
		string,
		models.ProposalStatus,
		string, // transactionHash
		string, // errorMessage
		time.Time, // executedAt
		*gorm.DB,
	) (bool, error)

	// Signatures
	AddSignature(*models.Signature, *gorm.DB) error
	GetSignatureBySigner(
		string, // proposalId
		string, // signerId
		*gorm.DB,
	) (*models.Signature, error)
	GetSignaturesByProposal(string, *gorm.DB) ([]*models.Signature, error)
	CountSignaturesByProposal(string, *gorm.DB) (int64, error)

	// Groups
	AddGroup(*models.Group, *gorm.DB) error
	GetGroup(string, *gorm.DB) (*models.Group, error)
	AddGroupMember(*models.GroupMember, *gorm.DB) error
	GetActiveGroupMembers(string, *gorm.DB) ([]*models.GroupMember, error)

	// Credentials
	AddCredential(*models.Credential, *gorm.DB) error
	GetValidCredential(
		string, // subjectId
		string, // groupId
		string, // credentialType
		time.Time, // now
		*gorm.DB,
	) (*models.Credential, error)
}

// New creates a new metadata store of the named plugin type. The dataDir
// argument is used by the sqlite plugin and the dsn argument by the mysql
// plugin; each ignores the other's.
func New(
	pluginName string,
	dataDir string,
	dsn string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	switch pluginName {
	case "sqlite":
		return sqlite.New(dataDir, logger, promRegistry)
	case "mysql":
		return mysql.New(dsn, logger, promRegistry)
	default:
		return nil, fmt.Errorf("unknown metadata plugin: %s", pluginName)
	}
}
