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

// Package textnorm provides the normalization applied to words
// before they are used as lookup keys.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases a word and removes all accents
// (e.g. "Canción" -> "cancion", "niño" -> "nino").
func Normalize(word string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ans, _, err := transform.String(t, strings.ToLower(word))
	if err != nil {
		// invalid UTF-8 input
		return strings.ToLower(word)
	}
	return ans
}

// VerbKey returns the key used to search the verb database.
// Generated verb forms are stored lower-cased with their accents
// preserved so only case and surrounding whitespace are normalized here.
func VerbKey(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
