// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of MQUERY.
//
//  MQUERY is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  MQUERY is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with MQUERY.  If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"esmorph/analyzer"
	"esmorph/flexion"
	"esmorph/grammar"
	"esmorph/lemma"
	"esmorph/resources"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	mu       sync.Mutex
	forms    map[string][]analyzer.VerbalForm
	callers  []string
	released []string
	fail     bool
	panicOn  string
}

func (fa *fakeAnalyzer) GetVerbInfo(ctx context.Context, caller, word string) ([]analyzer.VerbalForm, error) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	if fa.fail {
		return nil, errors.New("connection lost")
	}
	if word != "" && word == fa.panicOn {
		panic("unexpected state of " + word)
	}
	fa.callers = append(fa.callers, caller)
	return fa.forms[word], nil
}

func (fa *fakeAnalyzer) IsVerb(ctx context.Context, caller, word string) (bool, error) {
	forms, err := fa.GetVerbInfo(ctx, caller, word)
	return len(forms) > 0, err
}

func (fa *fakeAnalyzer) Release(caller string) error {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.released = append(fa.released, caller)
	return nil
}

func newTestRouter(t *testing.T, fa *fakeAnalyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	fsys := resources.Embedded()
	flx, err := flexion.NewFlexioner(fsys, false)
	require.NoError(t, err)
	mapping, err := grammar.LoadMapping(fsys)
	require.NoError(t, err)
	dict, err := lemma.NewDictionaryLemmatizer(fsys, "es")
	require.NoError(t, err)
	verbs, err := resources.ReadVerbList(fsys)
	require.NoError(t, err)
	actions := NewActions(flx, mapping, fa, dict, lemma.NewSpanishPosLemmatizer(dict, verbs))

	engine := gin.New()
	engine.Use(gin.CustomRecovery(RecoverPanic))
	engine.Use(actions.CallerScope())
	engine.GET("/verb-info/:word", actions.VerbInfo)
	engine.GET("/is-verb/:word", actions.IsVerb)
	engine.GET("/verb-forms/:infinitive", actions.VerbForms)
	engine.GET("/lemmas/:word", actions.Lemmas)
	engine.POST("/lemmatize-text", actions.LemmatizeText)
	engine.GET("/dict-lemma/:word", actions.DictLemma)
	engine.POST("/pos-lemmas", actions.PosLemmas)
	return engine
}

func newFakeAnalyzer() *fakeAnalyzer {
	return &fakeAnalyzer{
		forms: map[string][]analyzer.VerbalForm{
			"cante": {
				{
					Verb: "cante", NormalizedVerb: "cante", Infinitive: "cantar", IsSimple: true,
					Personal: &analyzer.PersonalAttrs{Person: 1, Singular: true, Tense: grammar.TensePresent, Mood: grammar.MoodSubjunctive},
				},
			},
		},
	}
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestVerbInfo(t *testing.T) {
	fa := newFakeAnalyzer()
	engine := newTestRouter(t, fa)

	w := doRequest(engine, http.MethodGet, "/verb-info/cante", "")
	require.Equal(t, http.StatusOK, w.Code)
	var forms []analyzer.VerbalForm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &forms))
	require.Len(t, forms, 1)
	assert.Equal(t, "cantar", forms[0].Infinitive)
	assert.Equal(t, grammar.MoodSubjunctive, forms[0].Personal.Mood)

	w = doRequest(engine, http.MethodGet, "/verb-info/puerta", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCallerIsReleasedAfterRequest(t *testing.T) {
	fa := newFakeAnalyzer()
	engine := newTestRouter(t, fa)
	doRequest(engine, http.MethodGet, "/verb-info/cante", "")
	doRequest(engine, http.MethodGet, "/verb-info/cante", "")
	require.Len(t, fa.callers, 2)
	assert.NotEqual(t, fa.callers[0], fa.callers[1])
	assert.NotEmpty(t, fa.callers[0])
	assert.Equal(t, fa.callers, fa.released)
}

func TestIsVerb(t *testing.T) {
	engine := newTestRouter(t, newFakeAnalyzer())
	w := doRequest(engine, http.MethodGet, "/is-verb/cante", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isVerb": true}`, w.Body.String())

	w = doRequest(engine, http.MethodGet, "/is-verb/puerta", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isVerb": false}`, w.Body.String())
}

func TestAnalyzerFailure(t *testing.T) {
	fa := newFakeAnalyzer()
	fa.fail = true
	engine := newTestRouter(t, fa)
	w := doRequest(engine, http.MethodGet, "/verb-info/cante", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	fa := newFakeAnalyzer()
	fa.panicOn = "cante"
	engine := newTestRouter(t, fa)
	w := doRequest(engine, http.MethodGet, "/verb-info/cante", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "recovered panic: unexpected state of cante")
	require.Len(t, fa.released, 1)

	w = doRequest(engine, http.MethodGet, "/verb-info/cantar", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerbForms(t *testing.T) {
	engine := newTestRouter(t, newFakeAnalyzer())
	w := doRequest(engine, http.MethodGet, "/verb-forms/tener", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ans verbFormsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Equal(t, "tener", ans.Model)
	require.Len(t, ans.Forms, 62)
	assert.Equal(t, "tener", ans.Forms[0].Form)
	assert.Equal(t, grammar.FormInfinitive, ans.Forms[0].Tags.NonPersonal.Type)
	assert.Equal(t, "tengo", ans.Forms[3].Form)
	assert.Equal(t, 1, ans.Forms[3].Tags.Personal.Person)

	w = doRequest(engine, http.MethodGet, "/verb-forms/xyz", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLemmas(t *testing.T) {
	engine := newTestRouter(t, newFakeAnalyzer())

	w := doRequest(engine, http.MethodGet, "/lemmas/cante?strategy=VERB", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ans lemmasResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Equal(t, []string{"cantar"}, ans.Lemmas)
	assert.Equal(t, "VERB", ans.Strategy)

	w = doRequest(engine, http.MethodGet, "/lemmas/cante", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ans))
	assert.Len(t, ans.Lemmas, 2)
	assert.Equal(t, "cantar", ans.Lemmas[1])

	w = doRequest(engine, http.MethodGet, "/lemmas/cante?strategy=POS", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = doRequest(engine, http.MethodGet, "/lemmas/cante?strategy=NOUN", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLemmatizeText(t *testing.T) {
	engine := newTestRouter(t, newFakeAnalyzer())
	w := doRequest(engine, http.MethodPost, "/lemmatize-text", `{"words": ["cante", "cante"], "strategy": "verb"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"lemmas": ["cantar", "cantar"]}`, w.Body.String())

	w = doRequest(engine, http.MethodPost, "/lemmatize-text", `{"words": ["cante"], "strategy": "POS"}`)
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = doRequest(engine, http.MethodPost, "/lemmatize-text", `{"words": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDictLemma(t *testing.T) {
	engine := newTestRouter(t, newFakeAnalyzer())
	w := doRequest(engine, http.MethodGet, "/dict-lemma/puertas", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"word": "puertas", "lemmas": ["puerta"]}`, w.Body.String())

	w = doRequest(engine, http.MethodGet, "/dict-lemma/canciones?normalized=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"word": "canciones", "lemmas": ["cancion"]}`, w.Body.String())
}

func TestPosLemmas(t *testing.T) {
	engine := newTestRouter(t, newFakeAnalyzer())
	w := doRequest(engine, http.MethodPost, "/pos-lemmas", `{"tokens": ["llamada", "compras"], "isVerb": [false, true]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"lemmas": [["llamada"], ["comprar"]]}`, w.Body.String())

	w = doRequest(engine, http.MethodPost, "/pos-lemmas", `{"tokens": ["llamada"], "isVerb": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(engine, http.MethodPost, "/pos-lemmas", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
