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
	"errors"
	"net/http"

	"esmorph/analyzer"
	"esmorph/flexion"
	"esmorph/grammar"
	"esmorph/lemma"
	"esmorph/merror"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	callerTokenKey = "callerToken"
)

type VerbAnalyzer interface {
	GetVerbInfo(ctx context.Context, caller, word string) ([]analyzer.VerbalForm, error)
	IsVerb(ctx context.Context, caller, word string) (bool, error)
	Release(caller string) error
}

type Actions struct {
	flexioner     *flexion.Flexioner
	mapping       *grammar.Mapping
	analyzer      VerbAnalyzer
	lemmatizer    *lemma.SpanishLemmatizer
	dict          *lemma.DictionaryLemmatizer
	posLemmatizer *lemma.SpanishPosLemmatizer
}

// CallerScope gives each request its own analyzer caller token
// and releases the respective analyzer handle once the request
// is finished. All the actions using the analyzer must be
// wrapped by this middleware.
func (a *Actions) CallerScope() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		caller := uuid.New().String()
		ctx.Set(callerTokenKey, caller)
		defer func() {
			if err := a.analyzer.Release(caller); err != nil {
				log.Warn().Err(err).Str("caller", caller).Msg("failed to release analyzer handle")
			}
		}()
		ctx.Next()
	}
}

func callerToken(ctx *gin.Context) string {
	return ctx.GetString(callerTokenKey)
}

// classifyError converts domain errors into the merror types
// so a proper HTTP status can be derived.
func classifyError(err error) error {
	switch {
	case errors.Is(err, flexion.ErrUnrecognizedInfinitive):
		return merror.NotFoundError{Msg: err.Error(), Cause: err}
	case errors.Is(err, lemma.ErrNotImplemented):
		return merror.UnsupportedError{Msg: err.Error(), Cause: err}
	case errors.Is(err, lemma.ErrInvalidStrategy), errors.Is(err, lemma.ErrMisalignedTags):
		return merror.InputError{Msg: err.Error(), Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return merror.TimeoutError{Msg: err.Error(), Cause: err}
	}
	var inputErr merror.InputError
	if errors.As(err, &inputErr) {
		return err
	}
	return merror.InternalError{Msg: err.Error(), Cause: err}
}

func respondError(ctx *gin.Context, err error) {
	err = classifyError(err)
	status := merror.StatusCode(err)
	if status >= 500 {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("failed to process request")
	}
	uniresp.RespondWithErrorJSON(ctx, err, status)
}

// RecoverPanic is a gin.RecoveryFunc writing a recovered
// handler panic as a JSON error.
func RecoverPanic(ctx *gin.Context, v any) {
	err := merror.PanicValueToErr(v)
	log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("recovered from handler panic")
	uniresp.RespondWithErrorJSON(
		ctx,
		merror.RecoveredError{Msg: err.Error()},
		http.StatusInternalServerError,
	)
	ctx.Abort()
}

func NewActions(
	flexioner *flexion.Flexioner,
	mapping *grammar.Mapping,
	verbAnalyzer VerbAnalyzer,
	dict *lemma.DictionaryLemmatizer,
	posLemmatizer *lemma.SpanishPosLemmatizer,
) *Actions {
	return &Actions{
		flexioner:     flexioner,
		mapping:       mapping,
		analyzer:      verbAnalyzer,
		lemmatizer:    lemma.NewSpanishLemmatizer(lemma.SnowballStemmer{}, verbAnalyzer),
		dict:          dict,
		posLemmatizer: posLemmatizer,
	}
}
