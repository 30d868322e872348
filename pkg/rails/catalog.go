// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package rails

// DefaultCapabilities returns the typical capabilities of each rail for a US
// based originator. Amounts are in cents.
func DefaultCapabilities(t Type) Capabilities {
	switch t {
	case ACH:
		return Capabilities{
			Currencies:     []string{"USD"},
			MinimumAmount:  1,
			MaximumAmount:  100000000, // $1,000,000 same-day entry limit
			SettlementDays: 2,
			Recurring:      true,
			Flags:          map[string]bool{FlagRefunds: true},
		}
	case Wire:
		return Capabilities{
			Currencies:     []string{"USD", "EUR", "GBP", "CAD", "JPY", "CHF", "AUD", "MXN"},
			MinimumAmount:  1,
			SettlementDays: 0,
		}
	case Check:
		return Capabilities{
			Currencies:     []string{"USD"},
			MinimumAmount:  1,
			MaximumAmount:  1000000000, // $10,000,000
			SettlementDays: 5,
			Recurring:      true,
		}
	case RTGS:
		return Capabilities{
			Currencies:     []string{"USD"},
			MinimumAmount:  1000000, // $10,000
			SettlementDays: 0,
			RealTime:       true,
		}
	case VirtualCard:
		return Capabilities{
			Currencies:     []string{"USD", "EUR", "GBP", "CAD"},
			MinimumAmount:  1,
			MaximumAmount:  5000000, // $50,000
			SettlementDays: 2,
			Recurring:      true,
			Flags:          map[string]bool{FlagRefunds: true},
		}
	}
	return Capabilities{}
}

// DefaultCatalog returns an available Descriptor for every rail Type using
// DefaultCapabilities.
func DefaultCatalog() []Rail {
	var out []Rail
	for _, t := range []Type{ACH, Wire, Check, RTGS, VirtualCard} {
		d, err := NewDescriptor(t, true, DefaultCapabilities(t))
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}
