// Copyright 2019 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2019 Institute of the Czech National Corpus,
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

package merror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type InputError struct {
	Msg   string
	Cause error
}

func (err InputError) Error() string {
	return err.Msg
}

func (err InputError) Unwrap() error {
	return err.Cause
}

func (err InputError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ----------------------------

type NotFoundError struct {
	Msg   string
	Cause error
}

func (err NotFoundError) Error() string {
	return err.Msg
}

func (err NotFoundError) Unwrap() error {
	return err.Cause
}

func (err NotFoundError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ----------------------------

// UnsupportedError marks requests for a recognized but
// unimplemented functionality.
type UnsupportedError struct {
	Msg   string
	Cause error
}

func (err UnsupportedError) Error() string {
	return err.Msg
}

func (err UnsupportedError) Unwrap() error {
	return err.Cause
}

func (err UnsupportedError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ----------------------------

type InternalError struct {
	Msg   string
	Cause error
}

func (err InternalError) Error() string {
	return err.Msg
}

func (err InternalError) Unwrap() error {
	return err.Cause
}

func (err InternalError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ---------------------------

type RecoveredError struct {
	Msg string
}

func (err RecoveredError) Error() string {
	return err.Msg
}

func (err RecoveredError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ---------------------------

type TimeoutError struct {
	Msg   string
	Cause error
}

func (err TimeoutError) Error() string {
	return err.Msg
}

func (err TimeoutError) Unwrap() error {
	return err.Cause
}

func (err TimeoutError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// -----------------

// StatusCode returns an HTTP status matching the error type.
// Errors of unknown types are considered internal.
func StatusCode(err error) int {
	var inputErr InputError
	var notFoundErr NotFoundError
	var unsupportedErr UnsupportedError
	var timeoutErr TimeoutError
	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &unsupportedErr):
		return http.StatusNotImplemented
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func PanicValueToErr(v any) (err error) {
	switch tr := v.(type) {
	case error:
		err = fmt.Errorf("recovered panic: %w", tr)
	case string:
		err = fmt.Errorf("recovered panic: %s", tr)
	default:
		err = fmt.Errorf("recovered panic from an error of type %T", v)
	}
	return
}
