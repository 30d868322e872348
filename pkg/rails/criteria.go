// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package rails

import (
	"errors"
	"fmt"

	"github.com/moov-io/railgate/pkg/model"
)

// Urgency is how quickly the beneficiary needs the funds.
type Urgency string

const (
	Standard Urgency = "standard"
	Urgent   Urgency = "urgent"
	RealTime Urgency = "real-time"
)

func (u Urgency) Validate() error {
	switch u {
	case Standard, Urgent, RealTime:
		return nil
	}
	return fmt.Errorf("unknown urgency %q", string(u))
}

type BeneficiaryType string

const (
	Individual BeneficiaryType = "individual"
	Business   BeneficiaryType = "business"
	Vendor     BeneficiaryType = "vendor"
)

func (b BeneficiaryType) Validate() error {
	switch b {
	case Individual, Business, Vendor:
		return nil
	}
	return fmt.Errorf("unknown beneficiary type %q", string(b))
}

// Criteria describes the transaction a rail is being picked for.
type Criteria struct {
	Amount             model.Amount    `json:"amount"`
	DestinationCountry string          `json:"destinationCountry,omitempty"`
	Urgency            Urgency         `json:"urgency"`
	PreferLowCost      bool            `json:"preferLowCost"`
	International      bool            `json:"international"`
	RecurringRequired  bool            `json:"recurringRequired"`
	BeneficiaryType    BeneficiaryType `json:"beneficiaryType,omitempty"`

	// PreferredRail is optional, the zero value means no preference.
	PreferredRail Type `json:"preferredRail,omitempty"`
}

func (c Criteria) Validate() error {
	if err := c.Amount.Validate(); err != nil {
		return fmt.Errorf("amount: %v", err)
	}
	if err := c.Urgency.Validate(); err != nil {
		return err
	}
	if c.BeneficiaryType != "" {
		if err := c.BeneficiaryType.Validate(); err != nil {
			return err
		}
	}
	if c.PreferredRail != 0 {
		if err := c.PreferredRail.Validate(); err != nil {
			return errors.New("preferred rail: " + err.Error())
		}
	}
	return nil
}
