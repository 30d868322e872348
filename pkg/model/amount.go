// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/currency"
)

var (
	// ErrDifferentCurrencies is returned when an operation on an Amount instance is attempted with another Amount of a different currency (symbol).
	ErrDifferentCurrencies = errors.New("different currencies")

	// ErrNegativeAmount is returned when an operation would produce an Amount below zero.
	ErrNegativeAmount = errors.New("negative amount")
)

// Amount represents units of a particular currency, stored in minor units (cents).
//
// Amount values are immutable, every arithmetic method returns a new Amount.
type Amount struct {
	number int64
	symbol string // ISO 4217, i.e. USD, GBP
}

// Int64 returns the currency amount in minor units.
// Example: "USD 1.11" returns 111
func (a Amount) Int64() int64 {
	return a.number
}

// Currency returns the ISO 4217 code of the Amount.
func (a Amount) Currency() string {
	return a.symbol
}

func (a *Amount) Validate() error {
	if a == nil {
		return errors.New("nil Amount")
	}
	if a.number < 0 {
		return ErrNegativeAmount
	}
	_, err := currency.ParseISO(a.symbol)
	return err
}

func (a Amount) Equal(other Amount) bool {
	return a.symbol == other.symbol && a.number == other.number
}

// IsZero returns true when no minor units are held.
func (a Amount) IsZero() bool {
	return a.number == 0
}

// Plus returns an Amount of adding both Amount instances together.
// Currency symbols must match for Plus to return without errors.
func (a Amount) Plus(other Amount) (Amount, error) {
	if a.symbol != other.symbol {
		return a, ErrDifferentCurrencies
	}
	return Amount{number: a.number + other.number, symbol: a.symbol}, nil
}

// Minus returns an Amount of subtracting other from a. The result must not be negative.
func (a Amount) Minus(other Amount) (Amount, error) {
	if a.symbol != other.symbol {
		return a, ErrDifferentCurrencies
	}
	if other.number > a.number {
		return a, ErrNegativeAmount
	}
	return Amount{number: a.number - other.number, symbol: a.symbol}, nil
}

// Compare returns -1, 0 or 1 when a is less than, equal to or greater than other.
func (a Amount) Compare(other Amount) (int, error) {
	if a.symbol != other.symbol {
		return 0, ErrDifferentCurrencies
	}
	switch {
	case a.number < other.number:
		return -1, nil
	case a.number > other.number:
		return 1, nil
	}
	return 0, nil
}

// NewAmountFromInt returns an Amount object after converting an integer amount (in cents)
// and validating the ISO 4217 currency symbol.
func NewAmountFromInt(symbol string, number int64) (*Amount, error) {
	if number < 0 {
		return nil, ErrNegativeAmount
	}
	sym, err := currency.ParseISO(symbol)
	if err != nil {
		return nil, err
	}
	return &Amount{number: number, symbol: sym.String()}, nil
}

// NewAmount returns an Amount object after validating the ISO 4217 currency symbol.
func NewAmount(symbol string, number string) (*Amount, error) {
	var amt Amount
	if err := amt.FromString(fmt.Sprintf("%s %s", symbol, number)); err != nil {
		return nil, err
	}
	return &amt, nil
}

// String returns an amount formatted with the currency.
// Examples:
//   USD 12.53
//   GBP 4.02
//
// The symbol returned corresponds to the ISO 4217 standard.
// Only one period used to signify decimal value will be included.
func (a Amount) String() string {
	if a.symbol == "" {
		return "USD 0.00"
	}
	return fmt.Sprintf("%s %s", a.symbol, formattedNumber(a.number))
}

func formattedNumber(number int64) string {
	if number <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%d.%02d", number/100, number%100)
}

// ParseAmount attempts to read a string as a valid currency symbol and number.
// Examples:
//   USD 12.53
func ParseAmount(in string) (*Amount, error) {
	var amt Amount
	if err := amt.FromString(in); err != nil {
		return nil, err
	}
	return &amt, nil
}

// FromString attempts to parse str as a valid currency symbol and
// the quantity. Numbers without a decimal point are read as minor units.
// Examples:
//   USD 12.53
//   GBP 4.02
func (a *Amount) FromString(str string) error {
	if a == nil {
		return errors.New("nil Amount")
	}

	parts := strings.Fields(str)
	if len(parts) != 2 {
		return fmt.Errorf("invalid Amount format: %q", str)
	}

	sym, err := currency.ParseISO(parts[0])
	if err != nil {
		return err
	}

	if strings.HasPrefix(parts[1], "-") {
		return fmt.Errorf("unable to read %s", parts[1])
	}

	var number int64
	idx := strings.Index(parts[1], ".")
	if idx == -1 {
		number, err = strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return err
		}
	} else {
		// Has decimal, convert to 2 decimals then to int
		var whole int64
		if idx > 0 {
			whole, err = strconv.ParseInt(parts[1][:idx], 10, 64)
			if err != nil {
				return err
			}
		}
		frac := parts[1][idx+1:]
		var dec int64
		if utf8.RuneCountInString(frac) > 2 { // more than 2 decimal values
			dec, err = strconv.ParseInt(frac[:3], 10, 64)
			if err != nil {
				return err
			}
			if dec%10 >= 5 { // do we need to round?
				dec = (dec / 10) + 1 // round cents up $0.01
			} else {
				dec = dec / 10
			}
		} else if frac != "" {
			dec, err = strconv.ParseInt(frac, 10, 64)
			if err != nil {
				return err
			}
			if len(frac) == 1 {
				dec *= 10
			}
		}
		number = (whole * 100) + dec
	}
	if number < 0 {
		return fmt.Errorf("unable to read %s", parts[1])
	}

	a.number = number
	a.symbol = sym.String()
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return a.FromString(s)
}
