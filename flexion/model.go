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

package flexion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnrecognizedInfinitive is returned when no model governs
	// a word and the word does not end with -ar, -er or -ir.
	ErrUnrecognizedInfinitive = errors.New("unrecognized infinitive shape")

	// ErrSuffixMismatch is returned when a model is asked to process
	// an infinitive which does not end with the model's strip suffix.
	ErrSuffixMismatch = errors.New("infinitive does not end with the model suffix")

	// ErrAmbiguousModel is returned in strict mode when a verb is listed
	// by more than one irregular model.
	ErrAmbiguousModel = errors.New("verb governed by more than one irregular model")
)

// ConjugationModel is a named suffix grammar. All the simple forms
// of a verb are produced by removing StripSuffix from the infinitive
// and appending each of FlexingSuffixes to the resulting root.
type ConjugationModel struct {

	// Name identifies the model (e.g. "regular_ar", "tener")
	Name string

	// StripSuffix is the infinitive ending removed to obtain the root
	StripSuffix string

	// FlexingSuffixes is ordered and the order is significant - the i-th
	// suffix always produces the form described by the i-th row
	// of the grammar mapping. An empty suffix is valid.
	FlexingSuffixes []string

	// GovernsVerbs lists infinitives the model applies to. It is empty
	// for the regular models which apply by suffix match.
	GovernsVerbs []string
}

// IsIrregular tells whether the model is bound to an explicit list of verbs.
func (m *ConjugationModel) IsIrregular() bool {
	return len(m.GovernsVerbs) > 0
}

// NumForms returns the number of forms the model produces for any verb.
func (m *ConjugationModel) NumForms() int {
	return len(m.FlexingSuffixes)
}

// GetRoot returns the infinitive without the model's strip suffix.
// An infinitive not ending with the suffix means the verb was routed
// to a wrong model and ErrSuffixMismatch is returned.
func (m *ConjugationModel) GetRoot(infinitive string) (string, error) {
	if !strings.HasSuffix(infinitive, m.StripSuffix) {
		return "", fmt.Errorf(
			"cannot get root of %s using model %s (suffix -%s): %w",
			infinitive, m.Name, m.StripSuffix, ErrSuffixMismatch)
	}
	return infinitive[:len(infinitive)-len(m.StripSuffix)], nil
}

// GetAllSimpleForms returns root + suffix for every flexing suffix,
// in the model order.
func (m *ConjugationModel) GetAllSimpleForms(infinitive string) ([]string, error) {
	root, err := m.GetRoot(infinitive)
	if err != nil {
		return nil, err
	}
	ans := make([]string, len(m.FlexingSuffixes))
	for i, suff := range m.FlexingSuffixes {
		ans[i] = root + suff
	}
	return ans, nil
}
