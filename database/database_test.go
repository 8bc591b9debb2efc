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
	"context"
	"path/filepath"
	"testing"

	"esmorph/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := engine.Open(&engine.DBConf{
		Type: engine.DBTypeSQLite,
		Path: filepath.Join(t.TempDir(), "verbs.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close(db) })
	return db
}

func TestCreateAndDropSchema(t *testing.T) {
	db := openTestDB(t)
	assert.False(t, SchemaExists(db))
	require.NoError(t, CreateSchema(db, false))
	assert.True(t, SchemaExists(db))
	assert.True(t, db.Migrator().HasIndex(&PersonalVerb{}, "idx_personal_verbs_normalized_verb"))
	assert.True(t, db.Migrator().HasIndex(&NonPersonalVerb{}, "idx_non_personal_verbs_normalized_verb"))
	require.NoError(t, DropSchema(db))
	assert.False(t, SchemaExists(db))
}

func TestRecreateSchemaRemovesRows(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, CreateSchema(db, false))
	require.NoError(t, db.Create(&PersonalVerb{ID: "cantar_3", NormalizedVerb: "canto", Verb: "canto", Infinitive: "cantar"}).Error)
	require.NoError(t, CreateSchema(db, true))
	var cnt int64
	require.NoError(t, db.Model(&PersonalVerb{}).Count(&cnt).Error)
	assert.Equal(t, int64(0), cnt)
}

func TestRowID(t *testing.T) {
	assert.Equal(t, "cantar_0", RowID("cantar", 0))
	assert.Equal(t, "ser_61", RowID("ser", 61))
}

func TestSelectRows(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, CreateSchema(db, false))
	require.NoError(t, db.Create([]PersonalVerb{
		{ID: "cantar_33", NormalizedVerb: "cante", Verb: "cante", Infinitive: "cantar", Person: 1, Singular: true, Tense: 1, Mood: 2, Simple: true},
		{ID: "cantar_35", NormalizedVerb: "cante", Verb: "cante", Infinitive: "cantar", Person: 3, Singular: true, Tense: 1, Mood: 2, Simple: true},
		{ID: "cantar_3", NormalizedVerb: "canto", Verb: "canto", Infinitive: "cantar", Person: 1, Singular: true, Tense: 1, Mood: 1, Simple: true},
	}).Error)
	require.NoError(t, db.Create(&NonPersonalVerb{
		ID: "cantar_1", NormalizedVerb: "cantando", Verb: "cantando", Infinitive: "cantar", Type: 2, Simple: true}).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	ctx := context.Background()

	pv, err := SelectPersonal(ctx, sqlDB, "cante")
	require.NoError(t, err)
	require.Len(t, pv, 2)
	assert.Equal(t, "cantar_33", pv[0].ID)
	assert.Equal(t, 3, pv[1].Person)
	assert.True(t, pv[1].Singular)
	assert.Equal(t, 2, pv[1].Mood)

	pv, err = SelectPersonal(ctx, sqlDB, "cantando")
	require.NoError(t, err)
	assert.Empty(t, pv)

	npv, err := SelectNonPersonal(ctx, sqlDB, "cantando")
	require.NoError(t, err)
	require.Len(t, npv, 1)
	assert.Equal(t, 2, npv[0].Type)
	assert.True(t, npv[0].Simple)
}

func TestSelectWithoutSchemaFails(t *testing.T) {
	db := openTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	_, err = SelectPersonal(context.Background(), sqlDB, "canto")
	assert.Error(t, err)
}
