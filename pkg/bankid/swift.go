// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package bankid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidSWIFT = errors.New("invalid SWIFT code")

	// bank (4 letters), country (2 letters), location (2), optional branch (3)
	swiftRegex = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
)

const headquartersBranch = "XXX"

// SWIFTCode is a validated SWIFT/BIC code in upper case.
type SWIFTCode struct {
	value string
}

func NewSWIFTCode(code string) (SWIFTCode, error) {
	upper := strings.ToUpper(code)
	if !swiftRegex.MatchString(upper) {
		return SWIFTCode{}, fmt.Errorf("%v: %q", ErrInvalidSWIFT, code)
	}
	return SWIFTCode{value: upper}, nil
}

// IsValidSWIFT returns true if code matches the 8 or 11 character BIC format once upper-cased.
func IsValidSWIFT(code string) bool {
	return swiftRegex.MatchString(strings.ToUpper(code))
}

func (s SWIFTCode) String() string {
	return s.value
}

func (s SWIFTCode) BankCode() string     { return s.segment(0, 4) }
func (s SWIFTCode) CountryCode() string  { return s.segment(4, 6) }
func (s SWIFTCode) LocationCode() string { return s.segment(6, 8) }

// BranchCode returns the three character branch, 8 character codes address the head office.
func (s SWIFTCode) BranchCode() string {
	if len(s.value) == 8 {
		return headquartersBranch
	}
	return s.segment(8, 11)
}

// Base returns the first 8 characters shared by a bank's head office and branches.
func (s SWIFTCode) Base() string {
	return s.segment(0, 8)
}

func (s SWIFTCode) IsHeadquarters() bool {
	return s.value != "" && s.BranchCode() == headquartersBranch
}

func (s SWIFTCode) segment(start, end int) string {
	if len(s.value) < end {
		return ""
	}
	return s.value[start:end]
}
