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

// Package builder materializes all the generated verb forms
// along with their grammatical tags into the verb database.
package builder

import (
	"context"
	"errors"
	"fmt"

	"esmorph/database"
	"esmorph/flexion"
	"esmorph/grammar"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	DefaultBatchSize = 100
)

// ErrMappingMismatch is returned when a model produces a different
// number of forms than the grammar mapping has rows.
var ErrMappingMismatch = errors.New("number of forms does not match the grammar mapping")

type BuildStats struct {
	Verbs           int `json:"verbs"`
	PersonalRows    int `json:"personalRows"`
	NonPersonalRows int `json:"nonPersonalRows"`
}

func (bs BuildStats) TotalRows() int {
	return bs.PersonalRows + bs.NonPersonalRows
}

type Builder struct {
	db        *gorm.DB
	flexioner *flexion.Flexioner
	mapping   *grammar.Mapping
	batchSize int
}

// Rows zips the forms of infinitive with the grammar mapping
// and splits them by relation.
func (b *Builder) Rows(infinitive string) ([]database.PersonalVerb, []database.NonPersonalVerb, error) {
	forms, err := b.flexioner.GetAllSimpleForms(infinitive)
	if err != nil {
		return nil, nil, err
	}
	if len(forms) != b.mapping.Len() {
		return nil, nil, fmt.Errorf(
			"%w: %s has %d forms, mapping has %d rows",
			ErrMappingMismatch, infinitive, len(forms), b.mapping.Len())
	}
	personal := make([]database.PersonalVerb, 0, b.mapping.NumPersonal())
	nonPersonal := make([]database.NonPersonalVerb, 0, b.mapping.Len()-b.mapping.NumPersonal())
	for i, form := range forms {
		row := b.mapping.Row(i)
		if row.IsPersonal() {
			personal = append(personal, database.PersonalVerb{
				ID:             database.RowID(infinitive, i),
				NormalizedVerb: form,
				Verb:           form,
				Infinitive:     infinitive,
				Person:         row.Personal.Person,
				Singular:       row.Personal.Singular,
				Tense:          int(row.Personal.Tense),
				Mood:           int(row.Personal.Mood),
				Simple:         row.Simple,
			})

		} else {
			nonPersonal = append(nonPersonal, database.NonPersonalVerb{
				ID:             database.RowID(infinitive, i),
				NormalizedVerb: form,
				Verb:           form,
				Infinitive:     infinitive,
				Type:           int(row.NonPersonal.Type),
				Simple:         row.Simple,
			})
		}
	}
	return personal, nonPersonal, nil
}

// BuildVerb inserts all the rows of a single verb. The rows are
// inserted within one transaction so a failing verb leaves
// nothing behind.
func (b *Builder) BuildVerb(ctx context.Context, infinitive string) (BuildStats, error) {
	var stats BuildStats
	personal, nonPersonal, err := b.Rows(infinitive)
	if err != nil {
		return stats, err
	}
	err = b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(personal) > 0 {
			if err := tx.CreateInBatches(personal, b.batchSize).Error; err != nil {
				return err
			}
		}
		if len(nonPersonal) > 0 {
			if err := tx.CreateInBatches(nonPersonal, b.batchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("failed to insert forms of %s: %w", infinitive, err)
	}
	stats.Verbs = 1
	stats.PersonalRows = len(personal)
	stats.NonPersonalRows = len(nonPersonal)
	return stats, nil
}

// Build inserts the forms of all the verbs in the provided order.
// The first failing verb stops the run. Verbs inserted before
// it stay in the database and are counted in the returned stats.
func (b *Builder) Build(ctx context.Context, verbs []string) (BuildStats, error) {
	var stats BuildStats
	for _, verb := range verbs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		vstats, err := b.BuildVerb(ctx, verb)
		if err != nil {
			log.Error().Err(err).Str("verb", verb).Msg("failed to build verb forms")
			return stats, err
		}
		log.Debug().
			Str("verb", verb).
			Int("personal", vstats.PersonalRows).
			Int("nonPersonal", vstats.NonPersonalRows).
			Msg("verb forms inserted")
		stats.Verbs += vstats.Verbs
		stats.PersonalRows += vstats.PersonalRows
		stats.NonPersonalRows += vstats.NonPersonalRows
	}
	log.Info().
		Int("verbs", stats.Verbs).
		Int("personalRows", stats.PersonalRows).
		Int("nonPersonalRows", stats.NonPersonalRows).
		Msg("verb database built")
	return stats, nil
}

// Run creates the schema and fills it with the forms of verbs.
// Rebuilding an existing database requires recreate to be set.
func (b *Builder) Run(ctx context.Context, verbs []string, recreate bool) (BuildStats, error) {
	if err := database.CreateSchema(b.db, recreate); err != nil {
		return BuildStats{}, err
	}
	return b.Build(ctx, verbs)
}

// NewBuilder creates a new Builder instance. All the models known
// to the flexioner are checked against the mapping up front.
func NewBuilder(
	db *gorm.DB,
	flexioner *flexion.Flexioner,
	mapping *grammar.Mapping,
	batchSize int,
) (*Builder, error) {
	for _, model := range flexioner.Models() {
		if model.NumForms() != mapping.Len() {
			return nil, fmt.Errorf(
				"%w: model %s has %d suffixes, mapping has %d rows",
				ErrMappingMismatch, model.Name, model.NumForms(), mapping.Len())
		}
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Builder{
		db:        db,
		flexioner: flexioner,
		mapping:   mapping,
		batchSize: batchSize,
	}, nil
}
