// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	PersonalVerbsTable    = "personal_verbs"
	NonPersonalVerbsTable = "non_personal_verbs"
)

// PersonalVerb is a row of the personal_verbs relation.
type PersonalVerb struct {
	ID             string `gorm:"column:id;primaryKey;size:120"`
	NormalizedVerb string `gorm:"column:normalized_verb;size:100;not null;index:idx_personal_verbs_normalized_verb"`
	Verb           string `gorm:"column:verb;size:100;not null"`
	Infinitive     string `gorm:"column:infinitive;size:100;not null"`
	Person         int    `gorm:"column:person"`
	Singular       bool   `gorm:"column:singular"`
	Tense          int    `gorm:"column:tense"`
	Mood           int    `gorm:"column:mood"`
	Simple         bool   `gorm:"column:simple"`
}

func (PersonalVerb) TableName() string {
	return PersonalVerbsTable
}

// NonPersonalVerb is a row of the non_personal_verbs relation.
type NonPersonalVerb struct {
	ID             string `gorm:"column:id;primaryKey;size:120"`
	NormalizedVerb string `gorm:"column:normalized_verb;size:100;not null;index:idx_non_personal_verbs_normalized_verb"`
	Verb           string `gorm:"column:verb;size:100;not null"`
	Infinitive     string `gorm:"column:infinitive;size:100;not null"`
	Type           int    `gorm:"column:type"`
	Simple         bool   `gorm:"column:simple"`
}

func (NonPersonalVerb) TableName() string {
	return NonPersonalVerbsTable
}

// RowID creates a primary key of a generated form
func RowID(infinitive string, index int) string {
	return fmt.Sprintf("%s_%d", infinitive, index)
}

// CreateSchema creates both verb relations along with their
// normalized_verb indexes. With recreate set, existing relations
// are dropped first.
func CreateSchema(db *gorm.DB, recreate bool) error {
	if recreate {
		if err := DropSchema(db); err != nil {
			return err
		}
	}
	if err := db.AutoMigrate(&PersonalVerb{}, &NonPersonalVerb{}); err != nil {
		return fmt.Errorf("failed to create verb relations: %w", err)
	}
	return nil
}

func DropSchema(db *gorm.DB) error {
	if err := db.Migrator().DropTable(&PersonalVerb{}, &NonPersonalVerb{}); err != nil {
		return fmt.Errorf("failed to drop verb relations: %w", err)
	}
	return nil
}

// SchemaExists tells whether both verb relations are present.
func SchemaExists(db *gorm.DB) bool {
	m := db.Migrator()
	return m.HasTable(&PersonalVerb{}) && m.HasTable(&NonPersonalVerb{})
}
