// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package rails describes the funds-transfer rails a payment can travel over
// and picks the best rail for a transaction.
//
// A Rail exposes static Capabilities (currencies, amount bounds, settlement
// speed). A Selector filters the injected rails by eligibility for a set of
// Criteria and scores the survivors on speed, cost, fit and preference.
package rails

import (
	"fmt"
	"strings"
)

// Type is the closed set of rails a transfer can use.
type Type int

const (
	ACH Type = iota + 1
	Wire
	Check
	RTGS
	VirtualCard
)

// Types returns every rail Type in cost order, cheapest first.
func Types() []Type {
	return []Type{ACH, Check, VirtualCard, Wire, RTGS}
}

func (t Type) String() string {
	switch t {
	case ACH:
		return "ach"
	case Wire:
		return "wire"
	case Check:
		return "check"
	case RTGS:
		return "rtgs"
	case VirtualCard:
		return "virtual_card"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

func (t Type) Validate() error {
	switch t {
	case ACH, Wire, Check, RTGS, VirtualCard:
		return nil
	}
	return fmt.Errorf("unknown rail type %d", int(t))
}

// ParseType reads a rail name such as "ach" or "virtual-card" (case-insensitive).
func ParseType(in string) (Type, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(in)), "-", "_")
	switch norm {
	case "ach":
		return ACH, nil
	case "wire":
		return Wire, nil
	case "check", "cheque":
		return Check, nil
	case "rtgs":
		return RTGS, nil
	case "virtual_card", "virtualcard", "card":
		return VirtualCard, nil
	}
	return 0, fmt.Errorf("unknown rail %q", in)
}

func (t Type) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	tt, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// Rail is implemented by anything which can carry funds. Implementations must
// be safe for concurrent use.
type Rail interface {
	Available() bool
	Type() Type
	Capabilities() Capabilities
}

// FlagRefunds marks rails which can pull funds back after settlement.
const FlagRefunds = "refunds"

// Capabilities is the static metadata describing what a rail supports.
// Amounts are in minor units of the transaction currency.
type Capabilities struct {
	Currencies []string

	MinimumAmount int64
	// MaximumAmount of zero means the rail has no upper bound.
	MaximumAmount int64

	SettlementDays int
	RealTime       bool
	Recurring      bool

	Flags map[string]bool
}

func (c Capabilities) SupportsCurrency(currency string) bool {
	for i := range c.Currencies {
		if strings.EqualFold(c.Currencies[i], currency) {
			return true
		}
	}
	return false
}

// WithinBounds returns true if amount sits inside [MinimumAmount, MaximumAmount].
func (c Capabilities) WithinBounds(amount int64) bool {
	if amount < c.MinimumAmount {
		return false
	}
	return c.MaximumAmount == 0 || amount <= c.MaximumAmount
}

func (c Capabilities) Flag(name string) bool {
	return c.Flags[name]
}

func (c Capabilities) clone() Capabilities {
	out := c
	out.Currencies = append([]string(nil), c.Currencies...)
	if c.Flags != nil {
		out.Flags = make(map[string]bool, len(c.Flags))
		for k, v := range c.Flags {
			out.Flags[k] = v
		}
	}
	return out
}

// Descriptor is a static Rail whose availability and capabilities are fixed
// when it's created.
type Descriptor struct {
	railType  Type
	available bool
	caps      Capabilities
}

func NewDescriptor(railType Type, available bool, caps Capabilities) (*Descriptor, error) {
	if err := railType.Validate(); err != nil {
		return nil, err
	}
	if caps.MinimumAmount < 0 || caps.MaximumAmount < 0 {
		return nil, fmt.Errorf("%s: negative amount bounds", railType)
	}
	if caps.MaximumAmount > 0 && caps.MaximumAmount < caps.MinimumAmount {
		return nil, fmt.Errorf("%s: maximum amount is below the minimum", railType)
	}
	return &Descriptor{
		railType:  railType,
		available: available,
		caps:      caps.clone(),
	}, nil
}

func (d *Descriptor) Available() bool { return d != nil && d.available }
func (d *Descriptor) Type() Type      { return d.railType }

// Capabilities returns a copy so callers can't alter the descriptor.
func (d *Descriptor) Capabilities() Capabilities {
	return d.caps.clone()
}
