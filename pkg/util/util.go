// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package util

import (
	"strings"
)

// Or returns the first non-empty string
func Or(options ...string) string {
	for i := range options {
		if v := strings.TrimSpace(options[i]); v != "" {
			return v
		}
	}
	return ""
}

// Digits returns only the ASCII digits of in, preserving their order.
func Digits(in string) string {
	var sb strings.Builder
	sb.Grow(len(in))
	for i := 0; i < len(in); i++ {
		if c := in[i]; c >= '0' && c <= '9' {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// IsDigits returns true when in is non-empty and only contains ASCII digits.
func IsDigits(in string) bool {
	if in == "" {
		return false
	}
	for i := 0; i < len(in); i++ {
		if in[i] < '0' || in[i] > '9' {
			return false
		}
	}
	return true
}
