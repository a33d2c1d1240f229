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

import (
	"errors"
	"time"
)

var ErrGroupNotFound = errors.New("group not found")

// MemberStatus is the membership state of a group member
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
)

// Group is a set of members that jointly authorize transactions from a
// shared ledger account.
type Group struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Title         string    `gorm:"size:256"`
	LedgerAddress string    `gorm:"size:128;not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name
func (Group) TableName() string {
	return "ledger_group"
}

// GroupMember records one member's standing within a group along with the
// signing address used to verify their contributed signatures.
type GroupMember struct {
	ID             uint         `gorm:"primarykey"`
	GroupID        string       `gorm:"uniqueIndex:idx_group_member,priority:1;size:36;not null"`
	MemberID       string       `gorm:"uniqueIndex:idx_group_member,priority:2;size:36;not null"`
	SigningAddress string       `gorm:"size:128;not null"`
	Status         MemberStatus `gorm:"index;size:16;not null"`
	CreatedAt      time.Time    `gorm:"not null"`
}

// TableName returns the table name
func (GroupMember) TableName() string {
	return "group_member"
}
