// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"

	"github.com/moov-io/railgate/pkg/rails"
	"github.com/moov-io/railgate/pkg/rails/validator"

	"golang.org/x/text/currency"
)

type Rails struct {
	DomesticCurrency string `mapstructure:"domestic_currency"`

	// Amount tiers in minor units, zero keeps the default.
	LowValue    int64 `mapstructure:"low_value"`
	MediumValue int64 `mapstructure:"medium_value"`
	HighValue   int64 `mapstructure:"high_value"`

	SanctionedCountries []string `mapstructure:"sanctioned_countries"`

	// Catalog overrides the default capabilities of rails keyed by name (ach, wire, ...).
	Catalog map[string]RailOverride `mapstructure:"catalog"`
}

type RailOverride struct {
	Available      *bool           `mapstructure:"available"`
	Currencies     []string        `mapstructure:"currencies"`
	MinimumAmount  *int64          `mapstructure:"minimum_amount"`
	MaximumAmount  *int64          `mapstructure:"maximum_amount"`
	SettlementDays *int            `mapstructure:"settlement_days"`
	RealTime       *bool           `mapstructure:"real_time"`
	Recurring      *bool           `mapstructure:"recurring"`
	Flags          map[string]bool `mapstructure:"flags"`
}

func (cfg Rails) Validate() error {
	if cfg.DomesticCurrency != "" {
		if _, err := currency.ParseISO(cfg.DomesticCurrency); err != nil {
			return fmt.Errorf("domestic currency: %v", err)
		}
	}
	if err := cfg.Thresholds().Validate(); err != nil {
		return err
	}
	for name, o := range cfg.Catalog {
		if _, err := rails.ParseType(name); err != nil {
			return fmt.Errorf("catalog: %v", err)
		}
		for _, c := range o.Currencies {
			if _, err := currency.ParseISO(c); err != nil {
				return fmt.Errorf("catalog: %s: %v", name, err)
			}
		}
		if o.SettlementDays != nil && *o.SettlementDays < 0 {
			return fmt.Errorf("catalog: %s: negative settlement days", name)
		}
	}
	if _, err := cfg.Rails(); err != nil {
		return fmt.Errorf("catalog: %v", err)
	}
	return nil
}

// Thresholds returns the default thresholds with any configured values applied.
func (cfg Rails) Thresholds() rails.Thresholds {
	t := rails.DefaultThresholds()
	if cfg.DomesticCurrency != "" {
		t.DomesticCurrency = cfg.DomesticCurrency
	}
	if cfg.LowValue > 0 {
		t.LowValue = cfg.LowValue
	}
	if cfg.MediumValue > 0 {
		t.MediumValue = cfg.MediumValue
	}
	if cfg.HighValue > 0 {
		t.HighValue = cfg.HighValue
	}
	return t
}

// Rails returns every rail type with its default capabilities and the
// configured overrides, in rails.DefaultCatalog order.
func (cfg Rails) Rails() ([]rails.Rail, error) {
	overrides := make(map[rails.Type]RailOverride)
	for name, o := range cfg.Catalog {
		t, err := rails.ParseType(name)
		if err != nil {
			return nil, err
		}
		overrides[t] = o
	}

	var out []rails.Rail
	for _, r := range rails.DefaultCatalog() {
		o, ok := overrides[r.Type()]
		if !ok {
			out = append(out, r)
			continue
		}
		caps, available := o.apply(r.Capabilities(), r.Available())
		d, err := rails.NewDescriptor(r.Type(), available, caps)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, errors.New("no rails")
	}
	return out, nil
}

func (o RailOverride) apply(caps rails.Capabilities, available bool) (rails.Capabilities, bool) {
	if o.Available != nil {
		available = *o.Available
	}
	if len(o.Currencies) > 0 {
		caps.Currencies = o.Currencies
	}
	if o.MinimumAmount != nil {
		caps.MinimumAmount = *o.MinimumAmount
	}
	if o.MaximumAmount != nil {
		caps.MaximumAmount = *o.MaximumAmount
	}
	if o.SettlementDays != nil {
		caps.SettlementDays = *o.SettlementDays
	}
	if o.RealTime != nil {
		caps.RealTime = *o.RealTime
	}
	if o.Recurring != nil {
		caps.Recurring = *o.Recurring
	}
	if len(o.Flags) > 0 {
		if caps.Flags == nil {
			caps.Flags = make(map[string]bool)
		}
		for k, v := range o.Flags {
			caps.Flags[k] = v
		}
	}
	return caps, available
}

// Sanctions returns the configured blocklist, or the default one.
func (cfg Rails) Sanctions() *validator.StaticSanctions {
	return validator.NewStaticSanctions(cfg.SanctionedCountries...)
}
