// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package validator checks transfer requests against the business rules of
// the rail they will travel over.
package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/moov-io/base"
	"github.com/moov-io/railgate/pkg/bankid"
	"github.com/moov-io/railgate/pkg/model"
	"github.com/moov-io/railgate/pkg/rails"
)

// MaxCheckMemoLength is the longest memo printed on a check.
const MaxCheckMemoLength = 80

// ValidationError holds every rule a request broke.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// WireValidationError is returned by ValidateWire.
type WireValidationError struct {
	Errors []string
}

func (e *WireValidationError) Error() string {
	return fmt.Sprintf("wire validation failed: %s", strings.Join(e.Errors, "; "))
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) missing() []string {
	var out []string
	if strings.TrimSpace(a.Line1) == "" {
		out = append(out, "line1")
	}
	if strings.TrimSpace(a.City) == "" {
		out = append(out, "city")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		out = append(out, "postal code")
	}
	if strings.TrimSpace(a.Country) == "" {
		out = append(out, "country")
	}
	return out
}

// Request is a transfer about to be sent over a rail.
type Request struct {
	Amount model.Amount `json:"amount"`

	BeneficiaryName    string  `json:"beneficiaryName"`
	BeneficiaryCountry string  `json:"beneficiaryCountry,omitempty"`
	BeneficiaryAddress Address `json:"beneficiaryAddress"`

	RoutingNumber string `json:"routingNumber,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	SWIFT         string `json:"swift,omitempty"`

	International bool   `json:"international"`
	Purpose       string `json:"purpose,omitempty"`

	// StandardEntryClass is the ACH category code, i.e. PPD or CCD.
	StandardEntryClass string `json:"standardEntryClass,omitempty"`

	Memo     string `json:"memo,omitempty"`
	Mail     bool   `json:"mail"`
	VendorID string `json:"vendorID,omitempty"`
}

// Validator checks Requests against rail capabilities and business rules.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	thresholds   rails.Thresholds
	sanctions    Sanctions
	capabilities map[rails.Type]rails.Capabilities
}

// New returns a Validator. Capabilities are read from catalog and fall back to
// rails.DefaultCapabilities for rail types catalog doesn't contain. A nil
// sanctions uses the default static blocklist.
func New(thresholds rails.Thresholds, sanctions Sanctions, catalog ...rails.Rail) *Validator {
	if sanctions == nil {
		sanctions = NewStaticSanctions()
	}
	caps := make(map[rails.Type]rails.Capabilities)
	for _, t := range rails.Types() {
		caps[t] = rails.DefaultCapabilities(t)
	}
	for _, r := range catalog {
		if r != nil {
			caps[r.Type()] = r.Capabilities()
		}
	}
	return &Validator{
		thresholds:   thresholds,
		sanctions:    sanctions,
		capabilities: caps,
	}
}

// ValidateAmount returns every problem with amount for a rail having caps.
func ValidateAmount(amount model.Amount, caps rails.Capabilities) []string {
	var problems []string
	if !caps.SupportsCurrency(amount.Currency()) {
		problems = append(problems, fmt.Sprintf("currency %s is not supported", amount.Currency()))
	}
	n := amount.Int64()
	if n < caps.MinimumAmount {
		problems = append(problems, fmt.Sprintf("amount %s is below the minimum of %d", amount.String(), caps.MinimumAmount))
	}
	if caps.MaximumAmount > 0 && n > caps.MaximumAmount {
		problems = append(problems, fmt.Sprintf("amount %s exceeds the maximum of %d", amount.String(), caps.MaximumAmount))
	}
	return problems
}

// ValidateTransaction checks req against every rule for rail. The returned
// error is a *ValidationError listing all problems found, or nil.
func (v *Validator) ValidateTransaction(req Request, rail rails.Type) error {
	if err := rail.Validate(); err != nil {
		return &ValidationError{Errors: []string{err.Error()}}
	}

	var el base.ErrorList
	add := func(msg string, args ...interface{}) {
		el.Add(fmt.Errorf(msg, args...))
	}

	if err := req.Amount.Validate(); err != nil {
		add("amount: %v", err)
	} else {
		for _, p := range ValidateAmount(req.Amount, v.capabilities[rail]) {
			add("%s", p)
		}
	}
	if strings.TrimSpace(req.BeneficiaryName) == "" {
		add("missing beneficiary name")
	}

	for _, country := range []string{req.BeneficiaryCountry, req.BeneficiaryAddress.Country} {
		if country == "" {
			continue
		}
		if err := v.sanctions.Screen(country); err != nil {
			add("%v", err)
		}
	}

	switch rail {
	case rails.ACH:
		v.domesticAccount(req, add)
		if !strings.EqualFold(req.Amount.Currency(), v.thresholds.DomesticCurrency) {
			add("ACH transfers must be in %s", v.thresholds.DomesticCurrency)
		}
		if req.International {
			add("ACH transfers can't be international")
		}
		if strings.TrimSpace(req.StandardEntryClass) == "" {
			add("missing standard entry class code")
		}

	case rails.Wire:
		if req.International {
			if req.SWIFT == "" {
				add("international wires require a SWIFT code")
			}
			if req.IBAN == "" && req.AccountNumber == "" {
				add("international wires require an IBAN or account number")
			}
		} else {
			v.domesticAccount(req, add)
		}
		if err := ValidateWire(req); err != nil {
			var wire *WireValidationError
			if errors.As(err, &wire) {
				for i := range wire.Errors {
					add("%s", wire.Errors[i])
				}
			}
		}

	case rails.Check:
		if req.Mail {
			if missing := req.BeneficiaryAddress.missing(); len(missing) > 0 {
				add("mailed checks require a complete address, missing %s", strings.Join(missing, ", "))
			}
		}
		if n := utf8.RuneCountInString(req.Memo); n > MaxCheckMemoLength {
			add("memo is %d characters, the limit is %d", n, MaxCheckMemoLength)
		}

	case rails.RTGS:
		v.domesticAccount(req, add)
		if req.Amount.Int64() <= v.thresholds.MediumValue {
			add("RTGS transfers must exceed %d", v.thresholds.MediumValue)
		}

	case rails.VirtualCard:
		if strings.TrimSpace(req.VendorID) == "" {
			add("missing vendor identifier")
		}
	}

	if el.Empty() {
		return nil
	}
	return &ValidationError{Errors: messages(el)}
}

// domesticAccount checks the routing and account number used by domestic rails.
// Routing problems only ever show the last four digits.
func (v *Validator) domesticAccount(req Request, add func(string, ...interface{})) {
	if req.RoutingNumber == "" {
		add("missing routing number")
	} else if _, err := bankid.NewRoutingNumber(req.RoutingNumber); err != nil {
		add("%v", err)
	}
	if strings.TrimSpace(req.AccountNumber) == "" {
		add("missing account number")
	}
}

// ValidateWire checks the wire specific fields of req. The returned error is
// a *WireValidationError, or nil.
func ValidateWire(req Request) error {
	var el base.ErrorList
	if req.International {
		if strings.TrimSpace(req.Purpose) == "" {
			el.Add(errors.New("international wires require a payment purpose"))
		}
		if req.BeneficiaryAddress.IsZero() {
			el.Add(errors.New("international wires require a beneficiary address"))
		} else if missing := req.BeneficiaryAddress.missing(); len(missing) > 0 {
			el.Add(fmt.Errorf("beneficiary address is missing %s", strings.Join(missing, ", ")))
		}
	}
	if req.SWIFT != "" && !bankid.IsValidSWIFT(req.SWIFT) {
		el.Add(fmt.Errorf("invalid SWIFT code %q", req.SWIFT))
	}
	if req.IBAN != "" && !bankid.IsValidIBAN(req.IBAN) {
		el.Add(errors.New("invalid IBAN"))
	}
	if el.Empty() {
		return nil
	}
	return &WireValidationError{Errors: messages(el)}
}

func messages(el base.ErrorList) []string {
	out := make([]string, 0, len(el))
	for i := range el {
		out = append(out, el[i].Error())
	}
	return out
}
