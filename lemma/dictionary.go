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

package lemma

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"esmorph/resources"
	"esmorph/textnorm"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
)

// SupportedLanguages lists languages with a known lemmatization list.
var SupportedLanguages = []string{
	"ast", "bg", "ca", "cs", "cy", "de", "en", "es", "et", "fa", "fr", "ga",
	"gd", "gl", "gv", "hu", "it", "pt", "ro", "sk", "sl", "sv", "uk",
}

func IsSupportedLanguage(lang string) bool {
	return collections.SliceContains(SupportedLanguages, lang)
}

func appendUnique(items []string, v string) []string {
	if collections.SliceContains(items, v) {
		return items
	}
	return append(items, v)
}

// DictionaryLemmatizer maps words to their lemmas using a flat
// lemmatization list. Every lemma is also a word mapping to itself.
// Besides the raw dictionary, a normalized one (lower case,
// no accents) is derived for accent-insensitive lookups.
//
// Once created, the lemmatizer is read-only and can be shared.
type DictionaryLemmatizer struct {
	lang     string
	dict     map[string][]string
	normDict map[string][]string
}

func (dl *DictionaryLemmatizer) Language() string {
	return dl.lang
}

// Size returns the number of distinct words in the raw dictionary.
func (dl *DictionaryLemmatizer) Size() int {
	return len(dl.dict)
}

func lookup(dict map[string][]string, keys ...string) ([]string, bool) {
	for _, k := range keys {
		if v, ok := dict[k]; ok {
			ans := make([]string, len(v))
			copy(ans, v)
			return ans, true
		}
	}
	return nil, false
}

// GetLemma returns all the lemmas of word. An unknown word
// is its own lemma (lower-cased).
func (dl *DictionaryLemmatizer) GetLemma(word string) []string {
	lw := strings.ToLower(word)
	if ans, ok := lookup(dl.dict, word, lw); ok {
		return ans
	}
	return []string{lw}
}

// GetLemmaNorm is like GetLemma but it searches the normalized
// dictionary and returns normalized lemmas.
func (dl *DictionaryLemmatizer) GetLemmaNorm(word string) []string {
	if ans, ok := lookup(dl.normDict, word, textnorm.Normalize(word)); ok {
		return ans
	}
	return []string{strings.ToLower(word)}
}

// WriteNormalized writes the normalized dictionary as
// "lemma<TAB>word" lines sorted by word.
func (dl *DictionaryLemmatizer) WriteNormalized(w io.Writer) error {
	keys := make([]string, 0, len(dl.normDict))
	for k := range dl.normDict {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	bw := bufio.NewWriter(w)
	for _, word := range keys {
		for _, lemma := range dl.normDict[word] {
			if _, err := fmt.Fprintf(bw, "%s\t%s\n", lemma, word); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func normalizeDictionary(dict map[string][]string) map[string][]string {
	ans := make(map[string][]string, len(dict))
	for word, lemmas := range dict {
		normLemmas := make([]string, 0, len(lemmas))
		for _, lemma := range lemmas {
			normLemmas = appendUnique(normLemmas, textnorm.Normalize(lemma))
		}
		for _, key := range []string{word, textnorm.Normalize(word)} {
			curr := ans[key]
			for _, nl := range normLemmas {
				curr = appendUnique(curr, nl)
			}
			ans[key] = curr
		}
	}
	return ans
}

// ParseDictionary reads a lemmatization list with one
// "lemma surface" pair (whitespace separated) per line.
func ParseDictionary(r io.Reader) (map[string][]string, error) {
	lines, err := resources.ScanLines(r)
	if err != nil {
		return nil, err
	}
	ans := make(map[string][]string)
	for _, line := range lines {
		fields := strings.Fields(line.Text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected lemma and word", ErrMalformedDictionary, line.Num)
		}
		lemma, word := fields[0], fields[1]
		ans[word] = appendUnique(ans[word], lemma)
		ans[lemma] = appendUnique(ans[lemma], lemma)
	}
	return ans, nil
}

// NewDictionaryLemmatizer loads the lemmatization list of lang
// from fsys.
func NewDictionaryLemmatizer(fsys fs.FS, lang string) (*DictionaryLemmatizer, error) {
	if !IsSupportedLanguage(lang) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	path := resources.DictionaryPath(lang)
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lemma dictionary %s: %w", path, err)
	}
	defer f.Close()
	dict, err := ParseDictionary(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load lemma dictionary %s: %w", path, err)
	}
	ans := &DictionaryLemmatizer{
		lang:     lang,
		dict:     dict,
		normDict: normalizeDictionary(dict),
	}
	log.Info().
		Str("lang", lang).
		Int("words", len(ans.dict)).
		Int("normalizedWords", len(ans.normDict)).
		Msg("loaded lemma dictionary")
	return ans, nil
}
