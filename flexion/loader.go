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
	"fmt"
	"io/fs"
	"strings"

	"esmorph/resources"

	"gopkg.in/ini.v1"
)

const (
	propsSection     = "DEF"
	propSuffix       = "suffix"
	propVerbs        = "verbs"
	emptySuffixMark  = "@"
	governedVerbSeps = ", \t"
)

// LoadModel reads a model from its two resources: <name>.props with
// the strip suffix and (optionally) the governed verbs, and <name>.suffx
// with one flexing suffix per line.
func LoadModel(fsys fs.FS, name string) (*ConjugationModel, error) {
	model := &ConjugationModel{Name: name}
	if err := loadModelProps(fsys, model); err != nil {
		return nil, err
	}
	lines, err := resources.ReadLines(fsys, resources.ModelSuffixesPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", name, err)
	}
	model.FlexingSuffixes = parseSuffixes(lines)
	if len(model.FlexingSuffixes) == 0 {
		return nil, fmt.Errorf("failed to load model %s: no flexing suffixes defined", name)
	}
	return model, nil
}

func loadModelProps(fsys fs.FS, model *ConjugationModel) error {
	path := resources.ModelPropsPath(model.Name)
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to load model %s: %w", model.Name, err)
	}
	cfg, err := ini.Load(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	sec, err := cfg.GetSection(propsSection)
	if err != nil {
		// plain key=value file without sections
		sec = cfg.Section(ini.DefaultSection)
	}
	if !sec.HasKey(propSuffix) {
		return fmt.Errorf("failed to load model %s: missing property `%s`", model.Name, propSuffix)
	}
	model.StripSuffix = strings.TrimSpace(sec.Key(propSuffix).String())
	if model.StripSuffix == "" {
		return fmt.Errorf("failed to load model %s: empty property `%s`", model.Name, propSuffix)
	}
	if sec.HasKey(propVerbs) {
		model.GovernsVerbs = parseGovernedVerbs(sec.Key(propVerbs).String())
	}
	return nil
}

func parseGovernedVerbs(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return strings.ContainsRune(governedVerbSeps, r)
	})
}

func parseSuffixes(lines []resources.Line) []string {
	ans := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line.Text, emptySuffixMark) {
			ans[i] = ""

		} else {
			ans[i] = line.Text
		}
	}
	return ans
}
