// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"
	"strings"
)

// Sanctions screens a destination country. A real list lookup would sit
// behind this interface.
type Sanctions interface {
	Screen(country string) error
}

// DefaultSanctionedCountries are the ISO 3166 codes blocked by NewStaticSanctions.
var DefaultSanctionedCountries = []string{"CU", "IR", "KP", "SY"}

// StaticSanctions blocks a fixed set of countries.
type StaticSanctions struct {
	countries map[string]bool
}

// NewStaticSanctions blocks countries, or DefaultSanctionedCountries when none
// are given.
func NewStaticSanctions(countries ...string) *StaticSanctions {
	if len(countries) == 0 {
		countries = DefaultSanctionedCountries
	}
	s := &StaticSanctions{countries: make(map[string]bool)}
	for _, c := range countries {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			s.countries[c] = true
		}
	}
	return s
}

func (s *StaticSanctions) Screen(country string) error {
	if s == nil {
		return nil
	}
	if s.countries[strings.ToUpper(strings.TrimSpace(country))] {
		return fmt.Errorf("country %s is sanctioned", strings.ToUpper(country))
	}
	return nil
}
