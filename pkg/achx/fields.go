// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/moov-io/ach"
	"github.com/moov-io/railgate/pkg/util"
)

// numeric is a fixed-width field which is right-justified and zero-padded.
// Non-digits are dropped and values wider than the field keep their rightmost digits.
type numeric int

func (w numeric) format(v string) string {
	digits := util.Digits(v)
	if n := int(w); len(digits) > n {
		return digits[len(digits)-n:]
	}
	return strings.Repeat("0", int(w)-len(digits)) + digits
}

func (w numeric) formatInt(v int64) string {
	if v < 0 {
		v = -v
	}
	return w.format(strconv.FormatInt(v, 10))
}

// alpha is a fixed-width field which is left-justified, space-padded and truncated.
// Characters outside printable ASCII become spaces.
type alpha int

func (w alpha) format(v string) string {
	var buf strings.Builder
	for _, r := range v {
		if buf.Len() == int(w) {
			break
		}
		if r < ' ' || r > '~' {
			r = ' '
		}
		buf.WriteRune(r)
	}
	return buf.String() + strings.Repeat(" ", int(w)-buf.Len())
}

// record assembles one fixed-width line out of typed fields.
type record struct {
	buf strings.Builder
}

func newRecord(recordType byte) *record {
	r := &record{}
	r.buf.WriteByte(recordType)
	return r
}

func (r *record) numeric(width numeric, v string) *record {
	r.buf.WriteString(width.format(v))
	return r
}

func (r *record) integer(width numeric, v int64) *record {
	r.buf.WriteString(width.formatInt(v))
	return r
}

func (r *record) alpha(width alpha, v string) *record {
	r.buf.WriteString(width.format(v))
	return r
}

func (r *record) blank(width int) *record {
	r.buf.WriteString(strings.Repeat(" ", width))
	return r
}

// String returns the line padded or cut to ach.RecordLength.
func (r *record) String() string {
	s := r.buf.String()
	if len(s) > ach.RecordLength {
		return s[:ach.RecordLength]
	}
	return s + strings.Repeat(" ", ach.RecordLength-len(s))
}

// fieldReader walks the fields of a line in the same order record writes them.
type fieldReader struct {
	line string
	pos  int
	err  error
}

func newFieldReader(line string) *fieldReader {
	// skip the record type
	return &fieldReader{line: line, pos: 1}
}

func (f *fieldReader) next(width int) string {
	if f.pos+width > len(f.line) {
		f.pos = len(f.line)
		return ""
	}
	v := f.line[f.pos : f.pos+width]
	f.pos += width
	return v
}

func (f *fieldReader) alpha(width alpha) string {
	return strings.TrimSpace(f.next(int(width)))
}

// numeric returns the raw digits of a numeric field, keeping leading zeros.
func (f *fieldReader) numeric(width numeric) string {
	return strings.TrimSpace(f.next(int(width)))
}

func (f *fieldReader) integer(width numeric, name string) int64 {
	raw := strings.TrimSpace(f.next(int(width)))
	if raw == "" {
		return 0
	}
	// ParseInt alone would accept a sign
	if !util.IsDigits(raw) {
		if f.err == nil {
			f.err = fmt.Errorf("%s: %q is not numeric", name, raw)
		}
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil && f.err == nil {
		f.err = fmt.Errorf("%s: %q is not numeric", name, raw)
	}
	return n
}

func (f *fieldReader) skip(width int) {
	f.next(width)
}
