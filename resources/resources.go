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

// Package resources contains the default Spanish resource tree
// (conjugation models, grammar mapping, verb list and lemma dictionaries)
// embedded into the binary.
//
// Layout:
//
//	verb_data/models                      irregular model names
//	verb_data/<model>.props               strip suffix and governed verbs
//	verb_data/<model>.suffx               flexing suffixes
//	verb_data/detailed_info_mapping.conf  grammar mapping
//	verb_data/verbs_list_final            infinitives to materialize
//	data/lemmatization-<lang>.txt         lemma dictionaries
package resources

import (
	"embed"
	"io/fs"
	"os"
)

const (
	VerbDataDir   = "verb_data"
	ModelListPath = VerbDataDir + "/models"
	MappingPath   = VerbDataDir + "/detailed_info_mapping.conf"
	VerbListPath  = VerbDataDir + "/verbs_list_final"
	DictionaryDir = "data"
)

//go:embed verb_data data
var embedded embed.FS

// Embedded returns the resource tree compiled into the binary.
func Embedded() fs.FS {
	return embedded
}

// Open returns the resource tree rooted at dir. An empty dir
// selects the embedded resources.
func Open(dir string) fs.FS {
	if dir == "" {
		return embedded
	}
	return os.DirFS(dir)
}

// ModelPropsPath returns the path of the properties resource of a model.
func ModelPropsPath(modelName string) string {
	return VerbDataDir + "/" + modelName + ".props"
}

// ModelSuffixesPath returns the path of the suffix list of a model.
func ModelSuffixesPath(modelName string) string {
	return VerbDataDir + "/" + modelName + ".suffx"
}

// DictionaryPath returns the path of the lemma dictionary for lang.
func DictionaryPath(lang string) string {
	return DictionaryDir + "/lemmatization-" + lang + ".txt"
}
