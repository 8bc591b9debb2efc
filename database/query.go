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
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Querier is anything able to run a parameterized query.
// Both *sql.DB and *sql.Conn satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	selectPersonalSQL = "SELECT id, normalized_verb, verb, infinitive, person, singular, tense, mood, simple " +
		"FROM " + PersonalVerbsTable + " WHERE normalized_verb = ? ORDER BY id"

	selectNonPersonalSQL = "SELECT id, normalized_verb, verb, infinitive, type, simple " +
		"FROM " + NonPersonalVerbsTable + " WHERE normalized_verb = ? ORDER BY id"
)

// SelectPersonal returns all the personal rows matching normalizedVerb.
// A miss produces an empty slice and a nil error.
func SelectPersonal(ctx context.Context, q Querier, normalizedVerb string) ([]PersonalVerb, error) {
	log.Debug().Str("sql", selectPersonalSQL).Msgf("going to select personal forms of %s", normalizedVerb)
	rows, err := q.QueryContext(ctx, selectPersonalSQL, normalizedVerb)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal verbs: %w", err)
	}
	defer rows.Close()
	ans := make([]PersonalVerb, 0, 4)
	for rows.Next() {
		var item PersonalVerb
		err := rows.Scan(
			&item.ID, &item.NormalizedVerb, &item.Verb, &item.Infinitive,
			&item.Person, &item.Singular, &item.Tense, &item.Mood, &item.Simple,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan personal verb: %w", err)
		}
		ans = append(ans, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read personal verbs: %w", err)
	}
	return ans, nil
}

// SelectNonPersonal returns all the non-personal rows matching normalizedVerb.
func SelectNonPersonal(ctx context.Context, q Querier, normalizedVerb string) ([]NonPersonalVerb, error) {
	log.Debug().Str("sql", selectNonPersonalSQL).Msgf("going to select non-personal forms of %s", normalizedVerb)
	rows, err := q.QueryContext(ctx, selectNonPersonalSQL, normalizedVerb)
	if err != nil {
		return nil, fmt.Errorf("failed to query non-personal verbs: %w", err)
	}
	defer rows.Close()
	ans := make([]NonPersonalVerb, 0, 2)
	for rows.Next() {
		var item NonPersonalVerb
		err := rows.Scan(
			&item.ID, &item.NormalizedVerb, &item.Verb, &item.Infinitive, &item.Type, &item.Simple)
		if err != nil {
			return nil, fmt.Errorf("failed to scan non-personal verb: %w", err)
		}
		ans = append(ans, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read non-personal verbs: %w", err)
	}
	return ans, nil
}
