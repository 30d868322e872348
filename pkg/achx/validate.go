// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"fmt"
	"strings"

	"github.com/moov-io/ach"
)

// ValidateFormat checks the shape of text without decoding it: every line is
// 94 characters, starts with a known record type, and a file control record
// is present. It returns every violation found.
func ValidateFormat(text string) []string {
	var problems []string
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	// a single trailing newline is expected
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) == 0 {
		return []string{"file is empty", "missing file control record"}
	}

	var fileControl bool
	for i, line := range lines {
		if n := len(line); n != ach.RecordLength {
			problems = append(problems, fmt.Sprintf("line %d: expected %d characters but found %d", i+1, ach.RecordLength, n))
		}
		if line == "" {
			continue
		}
		switch line[0] {
		case fileHeaderType, batchHeaderType, entryDetailType, addendaType, batchControlType:
		case fileControlType:
			if line != filler {
				fileControl = true
			}
		default:
			problems = append(problems, fmt.Sprintf("line %d: unknown record type %q", i+1, line[0]))
		}
	}
	if !fileControl {
		problems = append(problems, "missing file control record")
	}
	return problems
}
