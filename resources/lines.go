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
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

const byteOrderMark = "\ufeff"

// Line is a meaningful line of a resource file along with
// its 1-based position in the file.
type Line struct {
	Num  int
	Text string
}

// ScanLines reads r line by line and returns all the trimmed lines
// which are neither blank nor comments (starting with '#').
// A leading UTF-8 byte order mark is ignored.
func ScanLines(r io.Reader) ([]Line, error) {
	var ans []Line
	sc := bufio.NewScanner(r)
	num := 0
	for sc.Scan() {
		num++
		line := sc.Text()
		if num == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ans = append(ans, Line{Num: num, Text: line})
	}
	return ans, sc.Err()
}

// ReadLines opens path within fsys and returns its meaningful lines
// (see ScanLines).
func ReadLines(fsys fs.FS, path string) ([]Line, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resource %s: %w", path, err)
	}
	defer f.Close()
	ans, err := ScanLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %s: %w", path, err)
	}
	return ans, nil
}

// ReadVerbList returns the infinitives listed in the raw verb list.
func ReadVerbList(fsys fs.FS) ([]string, error) {
	lines, err := ReadLines(fsys, VerbListPath)
	if err != nil {
		return nil, err
	}
	ans := make([]string, len(lines))
	for i, line := range lines {
		ans[i] = line.Text
	}
	return ans, nil
}
