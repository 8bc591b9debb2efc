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

package grammar

import (
	"errors"
	"strings"
	"testing"

	"esmorph/resources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapping(t *testing.T) {
	src := "# comment\n1, true\n\n3, false, 2, 1, true\n2,TRUE\n"
	m, err := ParseMapping(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())
	assert.Equal(t, 1, m.NumPersonal())

	assert.False(t, m.Row(0).IsPersonal())
	assert.Equal(t, FormInfinitive, m.Row(0).NonPersonal.Type)
	assert.True(t, m.Row(0).Simple)

	row := m.Row(1)
	require.True(t, row.IsPersonal())
	assert.Nil(t, row.NonPersonal)
	assert.Equal(t, 3, row.Personal.Person)
	assert.False(t, row.Personal.Singular)
	assert.Equal(t, TenseImperfect, row.Personal.Tense)
	assert.Equal(t, MoodIndicative, row.Personal.Mood)

	assert.Equal(t, FormGerund, m.Row(2).NonPersonal.Type)
}

func TestParseMappingInvalidArity(t *testing.T) {
	_, err := ParseMapping(strings.NewReader("1, true\n1, true, 1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedMapping)
	var merr *MappingError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, 2, merr.Line)
}

func TestParseMappingInvalidValues(t *testing.T) {
	for _, src := range []string{
		"x, true",
		"1, yes",
		"4, true",
		"4, true, 1, 1, true",
		"1, true, 9, 1, true",
		"1, true, 1, 7, true",
		"1, maybe, 1, 1, true",
	} {
		_, err := ParseMapping(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrMalformedMapping, src)
	}
}

func TestParseMappingEmpty(t *testing.T) {
	_, err := ParseMapping(strings.NewReader("# nothing here\n"))
	assert.ErrorIs(t, err, ErrMalformedMapping)
}

func TestLoadEmbeddedMapping(t *testing.T) {
	m, err := LoadMapping(resources.Embedded())
	require.NoError(t, err)
	assert.Equal(t, 62, m.Len())
	assert.Equal(t, 59, m.NumPersonal())
	assert.Equal(t, FormParticiple, m.Row(2).NonPersonal.Type)
	last := m.Row(m.Len() - 1)
	assert.Equal(t, MoodImperative, last.Personal.Mood)
	assert.Equal(t, 3, last.Personal.Person)
}

func TestCodeNames(t *testing.T) {
	assert.Equal(t, "gerund", FormGerund.String())
	assert.Equal(t, "imperfect-se", TenseImperfectSe.String())
	assert.Equal(t, "subjunctive", MoodSubjunctive.String())
	assert.Equal(t, "unknown", Mood(0).String())
}
