// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package bankid

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moov-io/railgate/pkg/util"
	"github.com/moov-io/railgate/x/mask"
)

const (
	// RoutingNumberLength is the number of digits in an ABA routing number.
	RoutingNumberLength = 9

	// reservedPrefix is never assigned as the first digit of a routing number.
	reservedPrefix = '5'
)

var routingWeights = [RoutingNumberLength]int{3, 7, 1, 3, 7, 1, 3, 7, 1}

// RoutingNumberError is returned when a routing number fails validation. The
// number itself is masked down to its last four digits.
type RoutingNumberError struct {
	Masked string
	Reason string
}

func (e *RoutingNumberError) Error() string {
	return fmt.Sprintf("invalid routing number %s: %s", e.Masked, e.Reason)
}

// RoutingNumber is a validated 9 digit ABA routing number.
type RoutingNumber struct {
	value string
}

// NewRoutingNumber validates code and returns it as a RoutingNumber.
func NewRoutingNumber(code string) (RoutingNumber, error) {
	code = strings.TrimSpace(code)
	if problems := ValidateRoutingNumber(code); len(problems) > 0 {
		return RoutingNumber{}, &RoutingNumberError{
			Masked: mask.LastFour(code),
			Reason: strings.Join(problems, ", "),
		}
	}
	return RoutingNumber{value: code}, nil
}

// ValidateRoutingNumber returns every problem found with code. An empty slice
// means code is a valid routing number.
func ValidateRoutingNumber(code string) []string {
	var problems []string
	if len(code) != RoutingNumberLength {
		problems = append(problems, fmt.Sprintf("must be %d digits", RoutingNumberLength))
	}
	digits := util.IsDigits(code)
	if !digits {
		problems = append(problems, "must only contain digits")
	}
	if len(code) > 0 && code[0] == reservedPrefix {
		problems = append(problems, "first digit 5 is reserved")
	}
	if digits && len(code) == RoutingNumberLength && !routingChecksum(code) {
		problems = append(problems, "checksum mismatch")
	}
	return problems
}

// routingChecksum applies the 3-7-1 weighted sum across all nine digits.
func routingChecksum(code string) bool {
	sum := 0
	for i := 0; i < RoutingNumberLength; i++ {
		sum += int(code[i]-'0') * routingWeights[i]
	}
	return sum%10 == 0
}

// CalculateCheckDigit returns the ninth digit which makes the first eight digits
// of a routing number pass the weighted checksum, or -1 when prefix is malformed.
func CalculateCheckDigit(prefix string) int {
	if len(prefix) < 8 || !util.IsDigits(prefix[:8]) {
		return -1
	}
	sum := 0
	for i := 0; i < 8; i++ {
		sum += int(prefix[i]-'0') * routingWeights[i]
	}
	return (10 - (sum % 10)) % 10
}

func (r RoutingNumber) String() string {
	return r.value
}

// ABA8 returns the first 8 digits, which identify the financial institution.
func (r RoutingNumber) ABA8() string {
	if len(r.value) < 8 {
		return ""
	}
	return r.value[:8]
}

// CheckDigit returns the ninth digit of the routing number.
func (r RoutingNumber) CheckDigit() string {
	if len(r.value) < RoutingNumberLength {
		return ""
	}
	return r.value[8:9]
}

// Masked returns the routing number with all but the last four digits hidden.
func (r RoutingNumber) Masked() string {
	return mask.LastFour(r.value)
}

// IsZero returns true for the RoutingNumber zero value.
func (r RoutingNumber) IsZero() bool {
	return r.value == ""
}

func (r RoutingNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

func (r *RoutingNumber) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	rtn, err := NewRoutingNumber(s)
	if err != nil {
		return err
	}
	*r = rtn
	return nil
}
