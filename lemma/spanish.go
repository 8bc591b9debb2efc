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
	"context"
	"fmt"
	"strings"

	"esmorph/analyzer"

	"github.com/kljensen/snowball/spanish"
)

type Strategy string

const (
	StrategyAll  Strategy = "ALL"
	StrategyVerb Strategy = "VERB"
	StrategyPOS  Strategy = "POS"
)

func (s Strategy) String() string {
	return string(s)
}

// ParseStrategy converts a strategy name (case insensitive).
func ParseStrategy(v string) (Strategy, error) {
	s := Strategy(strings.ToUpper(strings.TrimSpace(v)))
	switch s {
	case StrategyAll, StrategyVerb, StrategyPOS:
		return s, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidStrategy, v)
}

type Stemmer interface {
	Stem(word string) string
}

// SnowballStemmer is the Spanish Snowball stemmer.
type SnowballStemmer struct{}

func (s SnowballStemmer) Stem(word string) string {
	return spanish.Stem(word, true)
}

// VerbInfoProvider resolves words to verb analyses on behalf
// of a caller. The *analyzer.Analyzer is the production one.
type VerbInfoProvider interface {
	GetVerbInfo(ctx context.Context, caller, word string) ([]analyzer.VerbalForm, error)
}

type SpanishLemmatizer struct {
	stemmer Stemmer
	verbs   VerbInfoProvider
}

func (sl *SpanishLemmatizer) infinitive(ctx context.Context, caller, word string) (string, bool, error) {
	forms, err := sl.verbs.GetVerbInfo(ctx, caller, word)
	if err != nil {
		return "", false, fmt.Errorf("failed to get lemmas of %s: %w", word, err)
	}
	if len(forms) == 0 {
		return "", false, nil
	}
	return forms[0].Infinitive, true, nil
}

// GetLemmas returns lemmas of word according to strategy:
//
//   - StrategyAll: the stem followed by the verb infinitive (if any),
//     duplicates are kept
//   - StrategyVerb: the verb infinitive or the stem if word is not a verb
//   - StrategyPOS: always fails with ErrNotImplemented
func (sl *SpanishLemmatizer) GetLemmas(
	ctx context.Context,
	caller, word string,
	strategy Strategy,
) ([]string, error) {
	switch strategy {
	case StrategyAll:
		ans := []string{sl.stemmer.Stem(word)}
		inf, ok, err := sl.infinitive(ctx, caller, word)
		if err != nil {
			return nil, err
		}
		if ok {
			ans = append(ans, inf)
		}
		return ans, nil
	case StrategyVerb:
		inf, ok, err := sl.infinitive(ctx, caller, word)
		if err != nil {
			return nil, err
		}
		if ok {
			return []string{inf}, nil
		}
		return []string{sl.stemmer.Stem(word)}, nil
	case StrategyPOS:
		return nil, ErrNotImplemented
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidStrategy, strategy)
}

// LemmatizeText returns lemmas of all the words in their order.
func (sl *SpanishLemmatizer) LemmatizeText(
	ctx context.Context,
	caller string,
	words []string,
	strategy Strategy,
) ([]string, error) {
	ans := make([]string, 0, len(words)*2)
	for _, word := range words {
		lemmas, err := sl.GetLemmas(ctx, caller, word, strategy)
		if err != nil {
			return nil, err
		}
		ans = append(ans, lemmas...)
	}
	return ans, nil
}

func NewSpanishLemmatizer(stemmer Stemmer, verbs VerbInfoProvider) *SpanishLemmatizer {
	return &SpanishLemmatizer{
		stemmer: stemmer,
		verbs:   verbs,
	}
}
