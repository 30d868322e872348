// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"fmt"

	"github.com/moov-io/railgate/pkg/bankid"
	"github.com/moov-io/railgate/pkg/util"
)

// ODFI is the financial institution files are originated from.
type ODFI struct {
	RoutingNumber string  `mapstructure:"routing_number"`
	Gateway       Gateway `mapstructure:"gateway"`

	CompanyName           string `mapstructure:"company_name"`
	CompanyIdentification string `mapstructure:"company_identification"`
}

// Gateway overrides the file header when files are sent through a third party.
type Gateway struct {
	Origin          string `mapstructure:"origin"`
	OriginName      string `mapstructure:"origin_name"`
	Destination     string `mapstructure:"destination"`
	DestinationName string `mapstructure:"destination_name"`
}

func (cfg ODFI) Validate() error {
	if cfg.RoutingNumber == "" {
		return nil
	}
	if _, err := bankid.NewRoutingNumber(cfg.RoutingNumber); err != nil {
		return err
	}
	if cfg.Gateway.Origin != "" {
		if _, err := bankid.NewRoutingNumber(cfg.Gateway.Origin); err != nil {
			return fmt.Errorf("gateway origin: %v", err)
		}
	}
	if cfg.Gateway.Destination != "" {
		if _, err := bankid.NewRoutingNumber(cfg.Gateway.Destination); err != nil {
			return fmt.Errorf("gateway destination: %v", err)
		}
	}
	return nil
}

// Origin returns the routing number written as the file's immediate origin.
func (cfg ODFI) Origin() string {
	return util.Or(cfg.Gateway.Origin, cfg.RoutingNumber)
}

// Destination returns the gateway destination, or fallback when none is set.
func (cfg ODFI) Destination(fallback string) string {
	return util.Or(cfg.Gateway.Destination, fallback)
}
