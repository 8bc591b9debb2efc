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

	"esmorph/textnorm"

	"github.com/czcorpus/cnc-gokit/collections"
)

// Tagger assigns a universal POS tag to each token.
type Tagger interface {
	Tag(ctx context.Context, tokens []string) ([]string, error)
}

func IsVerbTag(tag string) bool {
	return tag == "VERB" || tag == "AUX"
}

// SpanishPosLemmatizer picks dictionary lemmas based on
// an externally provided verb / non-verb decision.
type SpanishPosLemmatizer struct {
	dict        *DictionaryLemmatizer
	infinitives *collections.Set[string]
}

func (pl *SpanishPosLemmatizer) IsInfinitive(word string) bool {
	return pl.infinitives.Contains(word) || pl.infinitives.Contains(textnorm.Normalize(word))
}

// GetLemma returns dictionary lemmas of word which are (isVerb == true)
// or are not (isVerb == false) known verb infinitives. In case nothing
// passes, the word itself is returned.
func (pl *SpanishPosLemmatizer) GetLemma(word string, isVerb bool) []string {
	lemmas := pl.dict.GetLemma(word)
	ans := make([]string, 0, len(lemmas))
	for _, lemma := range lemmas {
		if pl.IsInfinitive(lemma) == isVerb {
			ans = append(ans, lemma)
		}
	}
	if len(ans) == 0 {
		return []string{word}
	}
	return ans
}

// GetLemmaSentence lemmatizes tokens, isVerb must provide
// one value per token.
func (pl *SpanishPosLemmatizer) GetLemmaSentence(tokens []string, isVerb []bool) ([][]string, error) {
	if len(tokens) != len(isVerb) {
		return nil, fmt.Errorf("%w: %d tokens, %d tags", ErrMisalignedTags, len(tokens), len(isVerb))
	}
	ans := make([][]string, len(tokens))
	for i, token := range tokens {
		ans[i] = pl.GetLemma(token, isVerb[i])
	}
	return ans, nil
}

// GetLemmaTagged runs tagger on tokens and lemmatizes them
// using the verb tags it produces.
func (pl *SpanishPosLemmatizer) GetLemmaTagged(
	ctx context.Context,
	tokens []string,
	tagger Tagger,
) ([][]string, error) {
	tags, err := tagger.Tag(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to tag sentence: %w", err)
	}
	isVerb := make([]bool, len(tags))
	for i, tag := range tags {
		isVerb[i] = IsVerbTag(tag)
	}
	return pl.GetLemmaSentence(tokens, isVerb)
}

// NewSpanishPosLemmatizer creates a lemmatizer treating verbs
// (and their normalized variants) as the known infinitives.
func NewSpanishPosLemmatizer(dict *DictionaryLemmatizer, verbs []string) *SpanishPosLemmatizer {
	infinitives := collections.NewSet[string]()
	for _, v := range verbs {
		infinitives.Add(v)
		infinitives.Add(textnorm.Normalize(v))
	}
	return &SpanishPosLemmatizer{
		dict:        dict,
		infinitives: infinitives,
	}
}
