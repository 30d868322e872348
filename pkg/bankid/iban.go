// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package bankid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moov-io/railgate/x/mask"
)

const (
	ibanMinLength = 15
	ibanMaxLength = 34
)

var (
	ErrInvalidIBAN = errors.New("invalid IBAN")
)

// IBAN is a validated International Bank Account Number stored in its
// electronic form (no spaces, upper case).
type IBAN struct {
	value string
}

// NewIBAN normalizes and validates code.
func NewIBAN(code string) (IBAN, error) {
	norm := normalizeIBAN(code)
	if !IsValidIBAN(norm) {
		return IBAN{}, fmt.Errorf("%v: %s", ErrInvalidIBAN, mask.LastFour(norm))
	}
	return IBAN{value: norm}, nil
}

// IsValidIBAN checks the length, structure and ISO 7064 mod 97-10 checksum of code.
// Spaces are ignored and letters are compared case-insensitively.
func IsValidIBAN(code string) bool {
	norm := normalizeIBAN(code)
	if n := len(norm); n < ibanMinLength || n > ibanMaxLength {
		return false
	}
	if !isUpperLetter(norm[0]) || !isUpperLetter(norm[1]) || !isDigit(norm[2]) || !isDigit(norm[3]) {
		return false
	}
	for i := 4; i < len(norm); i++ {
		if !isUpperLetter(norm[i]) && !isDigit(norm[i]) {
			return false
		}
	}
	// move the country code and check digits to the end
	return ibanMod97(norm[4:]+norm[:4]) == 1
}

// ibanMod97 maps letters to 10..35 and computes the decimal value modulo 97
// one digit at a time so arbitrarily long inputs never overflow.
func ibanMod97(s string) int {
	rem := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isDigit(c) {
			rem = (rem*10 + int(c-'0')) % 97
		} else {
			rem = (rem*100 + int(c-'A') + 10) % 97
		}
	}
	return rem
}

func normalizeIBAN(code string) string {
	return strings.ToUpper(strings.ReplaceAll(code, " ", ""))
}

func isDigit(c byte) bool       { return c >= '0' && c <= '9' }
func isUpperLetter(c byte) bool { return c >= 'A' && c <= 'Z' }

func (i IBAN) String() string {
	return i.value
}

// CountryCode returns the ISO 3166 alpha-2 country prefix.
func (i IBAN) CountryCode() string {
	if len(i.value) < 2 {
		return ""
	}
	return i.value[:2]
}

func (i IBAN) CheckDigits() string {
	if len(i.value) < 4 {
		return ""
	}
	return i.value[2:4]
}

// BBAN returns the country specific Basic Bank Account Number.
func (i IBAN) BBAN() string {
	if len(i.value) < 4 {
		return ""
	}
	return i.value[4:]
}

// Printable returns the IBAN in groups of four characters.
// Example: GB82 WEST 1234 5698 7654 32
func (i IBAN) Printable() string {
	var groups []string
	for start := 0; start < len(i.value); start += 4 {
		end := start + 4
		if end > len(i.value) {
			end = len(i.value)
		}
		groups = append(groups, i.value[start:end])
	}
	return strings.Join(groups, " ")
}
