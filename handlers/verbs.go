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
	"esmorph/analyzer"
	"esmorph/grammar"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type verbFormItem struct {
	Index int         `json:"index"`
	Form  string      `json:"form"`
	Tags  grammar.Row `json:"tags"`
}

type verbFormsResponse struct {
	Infinitive string         `json:"infinitive"`
	Model      string         `json:"model"`
	Forms      []verbFormItem `json:"forms"`
}

// VerbInfo returns all the analyses of a word. A word
// which is not a verb produces an empty list.
func (a *Actions) VerbInfo(ctx *gin.Context) {
	forms, err := a.analyzer.GetVerbInfo(ctx.Request.Context(), callerToken(ctx), ctx.Param("word"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if forms == nil {
		forms = []analyzer.VerbalForm{}
	}
	uniresp.WriteJSONResponse(ctx.Writer, forms)
}

func (a *Actions) IsVerb(ctx *gin.Context) {
	isVerb, err := a.analyzer.IsVerb(ctx.Request.Context(), callerToken(ctx), ctx.Param("word"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]bool{"isVerb": isVerb})
}

// VerbForms generates all the simple forms of an infinitive
// along with their grammatical tags.
func (a *Actions) VerbForms(ctx *gin.Context) {
	infinitive := ctx.Param("infinitive")
	model, err := a.flexioner.ModelFor(infinitive)
	if err != nil {
		respondError(ctx, err)
		return
	}
	forms, err := model.GetAllSimpleForms(infinitive)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ans := verbFormsResponse{
		Infinitive: infinitive,
		Model:      model.Name,
		Forms:      make([]verbFormItem, len(forms)),
	}
	for i, form := range forms {
		ans.Forms[i] = verbFormItem{Index: i, Form: form}
		if i < a.mapping.Len() {
			ans.Forms[i].Tags = a.mapping.Row(i)
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}
