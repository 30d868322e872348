// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/moov-io/railgate/pkg/util"
)

const entryHashModulus = 10000000000

// TraceNumber joins the first 8 digits of routingNumber with a 7 digit sequence.
func TraceNumber(routingNumber string, sequence int) string {
	return numeric(8).format(ABA8(routingNumber)) + numeric(7).formatInt(int64(sequence))
}

// ABA8 returns the first 8 digits of an ABA routing number.
// If the input is invalid then an empty string is returned.
func ABA8(rtn string) string {
	if n := utf8.RuneCountInString(rtn); n == 10 {
		return rtn[1:9] // file headers prefix with a space, 0, or 1
	}
	if n := utf8.RuneCountInString(rtn); n != 8 && n != 9 {
		return ""
	}
	return rtn[:8]
}

// ABACheckDigit returns the last digit of an ABA routing number.
// If the input is invalid then an empty string is returned.
func ABACheckDigit(rtn string) string {
	if n := utf8.RuneCountInString(rtn); n == 10 {
		return rtn[9:]
	}
	if n := utf8.RuneCountInString(rtn); n != 9 {
		return ""
	}
	return rtn[8:9]
}

// ComputeEntryHash sums the first 8 digits of each routing number and keeps
// the lowest 10 digits, zero-padded.
func ComputeEntryHash(routingNumbers []string) string {
	var sum int64
	for _, rtn := range routingNumbers {
		digits := util.Digits(strings.TrimSpace(rtn))
		if len(digits) > 8 {
			digits = digits[:8]
		}
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			sum += n
		}
	}
	return numeric(10).formatInt(sum % entryHashModulus)
}

func parseHash(v string) int64 {
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}
