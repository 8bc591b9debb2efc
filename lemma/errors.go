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

// Package lemma provides lemmatizers combining a generic word-lemma
// dictionary, a stemmer and the verb analyzer.
package lemma

import "errors"

var (
	ErrNotImplemented      = errors.New("lemmatization strategy not implemented")
	ErrInvalidStrategy     = errors.New("invalid lemmatization strategy")
	ErrUnsupportedLanguage = errors.New("unsupported dictionary language")
	ErrMisalignedTags      = errors.New("number of tags does not match number of tokens")
	ErrMalformedDictionary = errors.New("malformed lemma dictionary")
)
