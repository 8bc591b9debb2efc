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

package resources

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLinesSkipsCommentsAndBlanks(t *testing.T) {
	src := "\ufeff# header\n\n  cantar  \n#temer\nvivir\n"
	lines, err := ScanLines(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []Line{{Num: 3, Text: "cantar"}, {Num: 5, Text: "vivir"}}, lines)
}

func TestScanLinesBOMOnData(t *testing.T) {
	lines, err := ScanLines(strings.NewReader("\ufeffpuerta\tpuertas\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "puerta\tpuertas", lines[0].Text)
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(fstest.MapFS{}, "verb_data/models")
	assert.Error(t, err)
}

func TestEmbeddedVerbList(t *testing.T) {
	verbs, err := ReadVerbList(Embedded())
	require.NoError(t, err)
	assert.Contains(t, verbs, "cantar")
	assert.Contains(t, verbs, "ser")
	for _, v := range verbs {
		assert.False(t, strings.HasPrefix(v, "#"))
	}
}

func TestOpenEmptyDirIsEmbedded(t *testing.T) {
	_, err := ReadLines(Open(""), ModelListPath)
	assert.NoError(t, err)
}
