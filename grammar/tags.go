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

// FormType is a kind of non-personal verb form.
type FormType int

const (
	FormInfinitive FormType = 1
	FormGerund     FormType = 2
	FormParticiple FormType = 3
)

func (ft FormType) String() string {
	switch ft {
	case FormInfinitive:
		return "infinitive"
	case FormGerund:
		return "gerund"
	case FormParticiple:
		return "participle"
	}
	return "unknown"
}

func (ft FormType) Validate() bool {
	return ft >= FormInfinitive && ft <= FormParticiple
}

// Tense is a tense code as used in the grammar mapping
// and in the verb database.
type Tense int

const (
	TensePresent     Tense = 1
	TenseImperfect   Tense = 2
	TensePreterite   Tense = 3
	TenseFuture      Tense = 4
	TenseConditional Tense = 5
	// TenseImperfectSe is the -se variant of the subjunctive imperfect
	TenseImperfectSe Tense = 6
)

func (t Tense) String() string {
	switch t {
	case TensePresent:
		return "present"
	case TenseImperfect:
		return "imperfect"
	case TensePreterite:
		return "preterite"
	case TenseFuture:
		return "future"
	case TenseConditional:
		return "conditional"
	case TenseImperfectSe:
		return "imperfect-se"
	}
	return "unknown"
}

func (t Tense) Validate() bool {
	return t >= TensePresent && t <= TenseImperfectSe
}

// Mood is a grammatical mood code.
type Mood int

const (
	MoodIndicative  Mood = 1
	MoodSubjunctive Mood = 2
	MoodImperative  Mood = 3
)

func (m Mood) String() string {
	switch m {
	case MoodIndicative:
		return "indicative"
	case MoodSubjunctive:
		return "subjunctive"
	case MoodImperative:
		return "imperative"
	}
	return "unknown"
}

func (m Mood) Validate() bool {
	return m >= MoodIndicative && m <= MoodImperative
}

// PersonalTags describes a conjugated form.
type PersonalTags struct {
	Person   int   `json:"person"`
	Singular bool  `json:"singular"`
	Tense    Tense `json:"tense"`
	Mood     Mood  `json:"mood"`
}

// NonPersonalTags describes an infinitive, gerund or participle.
type NonPersonalTags struct {
	Type FormType `json:"type"`
}

// Row is the grammatical meaning of one position of a model's
// suffix list. Exactly one of Personal and NonPersonal is set.
type Row struct {
	Personal    *PersonalTags    `json:"personal,omitempty"`
	NonPersonal *NonPersonalTags `json:"nonPersonal,omitempty"`
	Simple      bool             `json:"simple"`
}

func (r Row) IsPersonal() bool {
	return r.Personal != nil
}
