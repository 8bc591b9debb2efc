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

// Package flexion generates all the simple surface forms of Spanish verbs
// from their infinitives using per-model suffix substitution.
package flexion

import (
	"fmt"
	"io/fs"
	"strings"

	"esmorph/resources"

	"github.com/rs/zerolog/log"
)

const (
	ModelRegularAR = "regular_ar"
	ModelRegularER = "regular_er"
	ModelRegularIR = "regular_ir"
)

// Flexioner is the single entry point for "what are all the simple
// forms of this infinitive". It owns the irregular models listed
// in the model list resource and the three regular models.
// After construction, the Flexioner is read-only and safe for
// concurrent use.
type Flexioner struct {
	irregularModels []*ConjugationModel
	irregularVerbs  map[string]*ConjugationModel
	regularAR       *ConjugationModel
	regularER       *ConjugationModel
	regularIR       *ConjugationModel
}

// ModelFor returns the model governing the infinitive. Irregular
// membership takes precedence over the -ar/-er/-ir fallback.
func (f *Flexioner) ModelFor(infinitive string) (*ConjugationModel, error) {
	if m, ok := f.irregularVerbs[infinitive]; ok {
		return m, nil
	}
	switch {
	case strings.HasSuffix(infinitive, "ar"):
		return f.regularAR, nil
	case strings.HasSuffix(infinitive, "er"):
		return f.regularER, nil
	case strings.HasSuffix(infinitive, "ir"):
		return f.regularIR, nil
	}
	return nil, fmt.Errorf("cannot flex %q: %w", infinitive, ErrUnrecognizedInfinitive)
}

// GetAllSimpleForms produces all the simple forms of the infinitive
// in the order defined by its model. A word which is not recognized
// as an infinitive produces ErrUnrecognizedInfinitive.
func (f *Flexioner) GetAllSimpleForms(infinitive string) ([]string, error) {
	model, err := f.ModelFor(infinitive)
	if err != nil {
		return nil, err
	}
	return model.GetAllSimpleForms(infinitive)
}

// Models returns all the loaded models - irregular ones in the order
// of the model list followed by the regular -ar, -er, -ir models.
func (f *Flexioner) Models() []*ConjugationModel {
	ans := make([]*ConjugationModel, 0, len(f.irregularModels)+3)
	ans = append(ans, f.irregularModels...)
	return append(ans, f.regularAR, f.regularER, f.regularIR)
}

// NumIrregularVerbs returns the number of verbs governed
// by irregular models.
func (f *Flexioner) NumIrregularVerbs() int {
	return len(f.irregularVerbs)
}

func (f *Flexioner) registerIrregular(model *ConjugationModel, strict bool) error {
	for _, verb := range model.GovernsVerbs {
		prev, ok := f.irregularVerbs[verb]
		if ok && prev != model {
			if strict {
				return fmt.Errorf(
					"verb %s listed by models %s and %s: %w", verb, prev.Name, model.Name, ErrAmbiguousModel)
			}
			log.Warn().
				Str("verb", verb).
				Str("previousModel", prev.Name).
				Str("model", model.Name).
				Msg("verb listed by more than one irregular model, the later one wins")
		}
		f.irregularVerbs[verb] = model
	}
	return nil
}

func loadRegularModel(fsys fs.FS, name, expectedSuffix string) (*ConjugationModel, error) {
	model, err := LoadModel(fsys, name)
	if err != nil {
		return nil, err
	}
	if model.StripSuffix != expectedSuffix {
		return nil, fmt.Errorf(
			"regular model %s must strip -%s, found -%s", name, expectedSuffix, model.StripSuffix)
	}
	if model.IsIrregular() {
		log.Warn().
			Str("model", name).
			Strs("verbs", model.GovernsVerbs).
			Msg("regular model lists governed verbs, ignoring them")
		model.GovernsVerbs = nil
	}
	return model, nil
}

// NewFlexioner loads all the models from the resource tree.
// With strict set, a verb listed by two irregular models is a load
// error. Otherwise the model listed later wins and a warning is logged.
func NewFlexioner(fsys fs.FS, strict bool) (*Flexioner, error) {
	f := &Flexioner{
		irregularVerbs: make(map[string]*ConjugationModel),
	}
	names, err := resources.ReadLines(fsys, resources.ModelListPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load conjugation models: %w", err)
	}
	loaded := make(map[string]bool)
	for _, name := range names {
		if loaded[name.Text] {
			log.Warn().
				Str("model", name.Text).
				Int("line", name.Num).
				Msg("model listed more than once, skipping")
			continue
		}
		model, err := LoadModel(fsys, name.Text)
		if err != nil {
			return nil, err
		}
		loaded[name.Text] = true
		f.irregularModels = append(f.irregularModels, model)
		if err := f.registerIrregular(model, strict); err != nil {
			return nil, err
		}
	}
	if f.regularAR, err = loadRegularModel(fsys, ModelRegularAR, "ar"); err != nil {
		return nil, err
	}
	if f.regularER, err = loadRegularModel(fsys, ModelRegularER, "er"); err != nil {
		return nil, err
	}
	if f.regularIR, err = loadRegularModel(fsys, ModelRegularIR, "ir"); err != nil {
		return nil, err
	}
	log.Info().
		Int("irregularModels", len(f.irregularModels)).
		Int("irregularVerbs", len(f.irregularVerbs)).
		Msg("conjugation models loaded")
	return f, nil
}
