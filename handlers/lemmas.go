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
	"esmorph/lemma"
	"esmorph/merror"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type lemmasResponse struct {
	Word     string   `json:"word"`
	Strategy string   `json:"strategy,omitempty"`
	Lemmas   []string `json:"lemmas"`
}

type posLemmasArgs struct {
	Tokens []string `json:"tokens"`
	IsVerb []bool   `json:"isVerb"`
}

type lemmatizeTextArgs struct {
	Words    []string `json:"words"`
	Strategy string   `json:"strategy"`
}

// Lemmas returns lemmas of a word using a strategy specified
// by the `strategy` query argument (ALL by default).
func (a *Actions) Lemmas(ctx *gin.Context) {
	strategy, err := lemma.ParseStrategy(ctx.DefaultQuery("strategy", lemma.StrategyAll.String()))
	if err != nil {
		respondError(ctx, err)
		return
	}
	word := ctx.Param("word")
	lemmas, err := a.lemmatizer.GetLemmas(ctx.Request.Context(), callerToken(ctx), word, strategy)
	if err != nil {
		respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(
		ctx.Writer,
		lemmasResponse{Word: word, Strategy: strategy.String(), Lemmas: lemmas},
	)
}

func (a *Actions) LemmatizeText(ctx *gin.Context) {
	var args lemmatizeTextArgs
	if err := ctx.ShouldBindJSON(&args); err != nil {
		respondError(ctx, merror.InputError{Msg: err.Error(), Cause: err})
		return
	}
	if args.Strategy == "" {
		args.Strategy = lemma.StrategyAll.String()
	}
	strategy, err := lemma.ParseStrategy(args.Strategy)
	if err != nil {
		respondError(ctx, err)
		return
	}
	lemmas, err := a.lemmatizer.LemmatizeText(ctx.Request.Context(), callerToken(ctx), args.Words, strategy)
	if err != nil {
		respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"lemmas": lemmas})
}

// DictLemma looks up a word in the lemma dictionary. With
// `normalized=1`, the accent insensitive variant is used.
func (a *Actions) DictLemma(ctx *gin.Context) {
	word := ctx.Param("word")
	var lemmas []string
	if ctx.Query("normalized") == "1" {
		lemmas = a.dict.GetLemmaNorm(word)

	} else {
		lemmas = a.dict.GetLemma(word)
	}
	uniresp.WriteJSONResponse(ctx.Writer, lemmasResponse{Word: word, Lemmas: lemmas})
}

// PosLemmas lemmatizes a sentence with tokens already
// marked as verbs / non-verbs.
func (a *Actions) PosLemmas(ctx *gin.Context) {
	var args posLemmasArgs
	if err := ctx.ShouldBindJSON(&args); err != nil {
		respondError(ctx, merror.InputError{Msg: err.Error(), Cause: err})
		return
	}
	ans, err := a.posLemmatizer.GetLemmaSentence(args.Tokens, args.IsVerb)
	if err != nil {
		respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"lemmas": ans})
}
