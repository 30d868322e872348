// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/moov-io/railgate/pkg/model"
	"github.com/moov-io/railgate/pkg/rails"

	"github.com/stretchr/testify/require"
)

func amount(t *testing.T, symbol string, cents int64) model.Amount {
	t.Helper()
	amt, err := model.NewAmountFromInt(symbol, cents)
	require.NoError(t, err)
	return *amt
}

func address() Address {
	return Address{
		Line1:      "123 1st St",
		City:       "Des Moines",
		State:      "IA",
		PostalCode: "50309",
		Country:    "US",
	}
}

func validationErrors(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "unexpected error: %v", err)
	require.NotEmpty(t, verr.Errors)
	return verr.Errors
}

func containsError(problems []string, substr string) bool {
	for i := range problems {
		if strings.Contains(problems[i], substr) {
			return true
		}
	}
	return false
}

func TestValidateAmount(t *testing.T) {
	caps := rails.DefaultCapabilities(rails.VirtualCard)

	require.Empty(t, ValidateAmount(amount(t, "USD", 1000), caps))
	require.Empty(t, ValidateAmount(amount(t, "EUR", caps.MaximumAmount), caps))

	problems := ValidateAmount(amount(t, "JPY", caps.MaximumAmount+1), caps)
	require.Len(t, problems, 2)

	problems = ValidateAmount(amount(t, "USD", 0), caps)
	require.Len(t, problems, 1)
	require.Contains(t, problems[0], "below the minimum")

	// no maximum
	require.Empty(t, ValidateAmount(amount(t, "USD", 1<<40), rails.DefaultCapabilities(rails.Wire)))
}

func TestValidator__ACH(t *testing.T) {
	v := New(rails.DefaultThresholds(), nil)

	req := Request{
		Amount:             amount(t, "USD", 60000),
		BeneficiaryName:    "Jane Doe",
		BeneficiaryCountry: "US",
		RoutingNumber:      "021000021",
		AccountNumber:      "12345678",
		StandardEntryClass: "PPD",
	}
	require.NoError(t, v.ValidateTransaction(req, rails.ACH))

	bad := req
	bad.Amount = amount(t, "EUR", 60000)
	bad.RoutingNumber = "123456789"
	bad.AccountNumber = ""
	bad.StandardEntryClass = ""
	bad.BeneficiaryName = " "

	problems := validationErrors(t, v.ValidateTransaction(bad, rails.ACH))
	require.True(t, containsError(problems, "currency EUR is not supported"))
	require.True(t, containsError(problems, "must be in USD"))
	require.True(t, containsError(problems, "checksum mismatch"))
	require.True(t, containsError(problems, "missing account number"))
	require.True(t, containsError(problems, "missing standard entry class"))
	require.True(t, containsError(problems, "missing beneficiary name"))

	// the full routing number never appears
	require.False(t, containsError(problems, "123456789"))
	require.True(t, containsError(problems, "*****6789"))
}

func TestValidator__sanctions(t *testing.T) {
	v := New(rails.DefaultThresholds(), nil)

	req := Request{
		Amount:             amount(t, "USD", 60000),
		BeneficiaryName:    "Acme",
		BeneficiaryCountry: "kp",
		RoutingNumber:      "021000021",
		AccountNumber:      "12345678",
		StandardEntryClass: "CCD",
	}
	problems := validationErrors(t, v.ValidateTransaction(req, rails.ACH))
	require.Equal(t, []string{"country KP is sanctioned"}, problems)

	// custom list
	v = New(rails.DefaultThresholds(), NewStaticSanctions("RU"))
	require.NoError(t, v.ValidateTransaction(req, rails.ACH))

	req.BeneficiaryAddress = Address{Country: "RU"}
	problems = validationErrors(t, v.ValidateTransaction(req, rails.ACH))
	require.Equal(t, []string{"country RU is sanctioned"}, problems)
}

func TestValidator__wire(t *testing.T) {
	v := New(rails.DefaultThresholds(), nil)

	req := Request{
		Amount:             amount(t, "EUR", 2500000),
		BeneficiaryName:    "Beispiel GmbH",
		BeneficiaryCountry: "DE",
		BeneficiaryAddress: Address{Line1: "Hauptstr. 1", City: "Berlin", PostalCode: "10115", Country: "DE"},
		IBAN:               "DE89 3704 0044 0532 0130 00",
		SWIFT:              "deutdeff",
		International:      true,
		Purpose:            "invoice 1234",
	}
	require.NoError(t, v.ValidateTransaction(req, rails.Wire))

	bad := req
	bad.SWIFT = ""
	bad.IBAN = ""
	bad.Purpose = ""
	bad.BeneficiaryAddress = Address{}

	problems := validationErrors(t, v.ValidateTransaction(bad, rails.Wire))
	require.True(t, containsError(problems, "require a SWIFT code"))
	require.True(t, containsError(problems, "IBAN or account number"))
	require.True(t, containsError(problems, "payment purpose"))
	require.True(t, containsError(problems, "beneficiary address"))

	// domestic wires use routing and account numbers
	domestic := Request{
		Amount:          amount(t, "USD", 2500000),
		BeneficiaryName: "Acme",
		RoutingNumber:   "021000021",
		AccountNumber:   "987654321",
	}
	require.NoError(t, v.ValidateTransaction(domestic, rails.Wire))

	domestic.RoutingNumber = ""
	problems = validationErrors(t, v.ValidateTransaction(domestic, rails.Wire))
	require.Equal(t, []string{"missing routing number"}, problems)
}

func TestValidateWire(t *testing.T) {
	require.NoError(t, ValidateWire(Request{}))

	err := ValidateWire(Request{
		International:      true,
		SWIFT:              "DEUT",
		IBAN:               "GB82WEST12345698765431",
		BeneficiaryAddress: Address{Line1: "1 Main"},
	})
	var werr *WireValidationError
	require.True(t, errors.As(err, &werr))
	require.Len(t, werr.Errors, 4)
	require.Contains(t, werr.Errors[1], "city, postal code, country")
	require.Contains(t, err.Error(), "wire validation failed")
}

func TestValidator__check(t *testing.T) {
	v := New(rails.DefaultThresholds(), nil)

	req := Request{
		Amount:             amount(t, "USD", 12500),
		BeneficiaryName:    "John Smith",
		BeneficiaryAddress: address(),
		Mail:               true,
		Memo:               "rent",
	}
	require.NoError(t, v.ValidateTransaction(req, rails.Check))

	req.BeneficiaryAddress.PostalCode = ""
	req.Memo = strings.Repeat("a", MaxCheckMemoLength+1)
	problems := validationErrors(t, v.ValidateTransaction(req, rails.Check))
	require.Len(t, problems, 2)
	require.Contains(t, problems[0], "missing postal code")
	require.Contains(t, problems[1], "limit is 80")

	// the address only matters for mailed checks
	req.Mail = false
	req.Memo = strings.Repeat("a", MaxCheckMemoLength)
	require.NoError(t, v.ValidateTransaction(req, rails.Check))
}

func TestValidator__RTGS(t *testing.T) {
	v := New(rails.DefaultThresholds(), nil)

	req := Request{
		Amount:          amount(t, "USD", 5000000),
		BeneficiaryName: "Acme",
		RoutingNumber:   "021000021",
		AccountNumber:   "12345",
	}
	require.NoError(t, v.ValidateTransaction(req, rails.RTGS))

	req.Amount = amount(t, "USD", rails.DefaultThresholds().MediumValue)
	problems := validationErrors(t, v.ValidateTransaction(req, rails.RTGS))
	require.True(t, containsError(problems, "RTGS transfers must exceed"))
}

func TestValidator__virtualCard(t *testing.T) {
	v := New(rails.DefaultThresholds(), nil)

	req := Request{
		Amount:          amount(t, "GBP", 10000),
		BeneficiaryName: "Office Supplies Ltd",
		VendorID:        "vendor-1234",
	}
	require.NoError(t, v.ValidateTransaction(req, rails.VirtualCard))

	req.VendorID = ""
	problems := validationErrors(t, v.ValidateTransaction(req, rails.VirtualCard))
	require.Equal(t, []string{"missing vendor identifier"}, problems)
}

func TestValidator__catalogOverride(t *testing.T) {
	caps := rails.DefaultCapabilities(rails.VirtualCard)
	caps.MaximumAmount = 1000
	card, err := rails.NewDescriptor(rails.VirtualCard, true, caps)
	require.NoError(t, err)

	v := New(rails.DefaultThresholds(), nil, card)
	req := Request{
		Amount:          amount(t, "USD", 1001),
		BeneficiaryName: "Acme",
		VendorID:        "v1",
	}
	problems := validationErrors(t, v.ValidateTransaction(req, rails.VirtualCard))
	require.True(t, containsError(problems, "exceeds the maximum of 1000"))
}

func TestValidator__unknownRail(t *testing.T) {
	v := New(rails.DefaultThresholds(), nil)
	problems := validationErrors(t, v.ValidateTransaction(Request{}, rails.Type(0)))
	require.Len(t, problems, 1)
}

func TestStaticSanctions(t *testing.T) {
	s := NewStaticSanctions()
	for _, c := range DefaultSanctionedCountries {
		require.Error(t, s.Screen(c))
	}
	require.NoError(t, s.Screen("US"))
	require.Error(t, s.Screen(" ir "))

	var nilSanctions *StaticSanctions
	require.NoError(t, nilSanctions.Screen("CU"))
}
