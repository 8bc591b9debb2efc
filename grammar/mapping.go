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

// Package grammar contains the position aligned table describing
// what each generated verb form means grammatically.
package grammar

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"esmorph/resources"
)

const (
	numPersonalFields    = 5
	numNonPersonalFields = 2
)

// ErrMalformedMapping is the cause of all the mapping parsing errors.
var ErrMalformedMapping = errors.New("malformed grammar mapping")

// MappingError describes an invalid mapping row.
type MappingError struct {
	Line int
	Msg  string
}

func (err *MappingError) Error() string {
	return fmt.Sprintf("%s at line %d: %s", ErrMalformedMapping, err.Line, err.Msg)
}

func (err *MappingError) Unwrap() error {
	return ErrMalformedMapping
}

// Mapping is an ordered list of rows. The i-th row describes the
// form generated by the i-th flexing suffix of any conjugation model.
type Mapping struct {
	rows []Row
}

func (m *Mapping) Len() int {
	return len(m.rows)
}

// Row returns the i-th row. The index must be within [0, Len()).
func (m *Mapping) Row(i int) Row {
	return m.rows[i]
}

// NumPersonal returns the number of rows describing personal forms.
func (m *Mapping) NumPersonal() int {
	var ans int
	for _, r := range m.rows {
		if r.IsPersonal() {
			ans++
		}
	}
	return ans
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value '%s'", v)
}

func parseCode(v, name string) (int, error) {
	ans, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s'", name, v)
	}
	return ans, nil
}

func parsePersonal(fields []string) (Row, error) {
	var row Row
	person, err := parseCode(fields[0], "person")
	if err != nil {
		return row, err
	}
	if person < 1 || person > 3 {
		return row, fmt.Errorf("person must be 1, 2 or 3, found %d", person)
	}
	singular, err := parseBool(fields[1])
	if err != nil {
		return row, err
	}
	tense, err := parseCode(fields[2], "tense")
	if err != nil {
		return row, err
	}
	if !Tense(tense).Validate() {
		return row, fmt.Errorf("unknown tense %d", tense)
	}
	mood, err := parseCode(fields[3], "mood")
	if err != nil {
		return row, err
	}
	if !Mood(mood).Validate() {
		return row, fmt.Errorf("unknown mood %d", mood)
	}
	row.Simple, err = parseBool(fields[4])
	if err != nil {
		return row, err
	}
	row.Personal = &PersonalTags{
		Person:   person,
		Singular: singular,
		Tense:    Tense(tense),
		Mood:     Mood(mood),
	}
	return row, nil
}

func parseNonPersonal(fields []string) (Row, error) {
	var row Row
	tp, err := parseCode(fields[0], "type")
	if err != nil {
		return row, err
	}
	if !FormType(tp).Validate() {
		return row, fmt.Errorf("unknown form type %d", tp)
	}
	row.Simple, err = parseBool(fields[1])
	if err != nil {
		return row, err
	}
	row.NonPersonal = &NonPersonalTags{Type: FormType(tp)}
	return row, nil
}

// ParseMapping reads CSV rows with either 5 fields (personal form:
// person, singular, tense, mood, simple) or 2 fields (non-personal
// form: type, simple). Any other number of fields is an error.
func ParseMapping(r io.Reader) (*Mapping, error) {
	lines, err := resources.ScanLines(r)
	if err != nil {
		return nil, err
	}
	ans := &Mapping{rows: make([]Row, 0, len(lines))}
	for _, line := range lines {
		fields := strings.Split(line.Text, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		var row Row
		var err error
		switch len(fields) {
		case numPersonalFields:
			row, err = parsePersonal(fields)
		case numNonPersonalFields:
			row, err = parseNonPersonal(fields)
		default:
			err = fmt.Errorf(
				"expected %d or %d fields, found %d", numPersonalFields, numNonPersonalFields, len(fields))
		}
		if err != nil {
			return nil, &MappingError{Line: line.Num, Msg: err.Error()}
		}
		ans.rows = append(ans.rows, row)
	}
	if len(ans.rows) == 0 {
		return nil, &MappingError{Msg: "no rows defined"}
	}
	return ans, nil
}

// LoadMapping reads the grammar mapping from the resource tree.
func LoadMapping(fsys fs.FS) (*Mapping, error) {
	f, err := fsys.Open(resources.MappingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load grammar mapping: %w", err)
	}
	defer f.Close()
	ans, err := ParseMapping(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load grammar mapping: %w", err)
	}
	return ans, nil
}
