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

package analyzer

import (
	"esmorph/database"
	"esmorph/grammar"
)

type PersonalAttrs struct {
	Person   int           `json:"person"`
	Singular bool          `json:"singular"`
	Tense    grammar.Tense `json:"tense"`
	Mood     grammar.Mood  `json:"mood"`
}

type NonPersonalAttrs struct {
	IsParticiple bool `json:"isParticiple"`
	IsGerund     bool `json:"isGerund"`
}

// VerbalForm is a single analysis of a surface word. Exactly one
// of Personal and NonPersonal is set.
type VerbalForm struct {
	Verb           string            `json:"verb"`
	NormalizedVerb string            `json:"normalizedVerb"`
	Infinitive     string            `json:"infinitive"`
	IsSimple       bool              `json:"isSimple"`
	Personal       *PersonalAttrs    `json:"personal,omitempty"`
	NonPersonal    *NonPersonalAttrs `json:"nonPersonal,omitempty"`
}

func (vf VerbalForm) IsPersonal() bool {
	return vf.Personal != nil
}

func personalForm(row database.PersonalVerb) VerbalForm {
	return VerbalForm{
		Verb:           row.Verb,
		NormalizedVerb: row.NormalizedVerb,
		Infinitive:     row.Infinitive,
		IsSimple:       row.Simple,
		Personal: &PersonalAttrs{
			Person:   row.Person,
			Singular: row.Singular,
			Tense:    grammar.Tense(row.Tense),
			Mood:     grammar.Mood(row.Mood),
		},
	}
}

func nonPersonalForm(row database.NonPersonalVerb) VerbalForm {
	return VerbalForm{
		Verb:           row.Verb,
		NormalizedVerb: row.NormalizedVerb,
		Infinitive:     row.Infinitive,
		IsSimple:       row.Simple,
		NonPersonal: &NonPersonalAttrs{
			IsParticiple: grammar.FormType(row.Type) == grammar.FormParticiple,
			IsGerund:     grammar.FormType(row.Type) == grammar.FormGerund,
		},
	}
}
