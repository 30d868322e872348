// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package bankid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var validIBANs = []string{
	"GB82 WEST 1234 5698 7654 32",
	"DE89370400440532013000",
	"fr1420041010050500013m02606",
	"NL91ABNA0417164300",
}

func TestIsValidIBAN(t *testing.T) {
	for _, code := range validIBANs {
		if !IsValidIBAN(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}

	invalid := []string{
		"",
		"GB82WEST",                            // too short
		"GB82WEST12345698765432000000000000000", // too long
		"1282WEST12345698765432",              // country must be letters
		"GBX2WEST12345698765432",              // check digits must be digits
		"GB82WEST1234569876543-",              // bad charset
		"GB83WEST12345698765432",              // checksum
	}
	for _, code := range invalid {
		if IsValidIBAN(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}

func TestIsValidIBAN__mutations(t *testing.T) {
	valid := "GB82WEST12345698765432"
	for pos := 0; pos < len(valid); pos++ {
		c := valid[pos]
		var swapped byte
		switch {
		case c >= '0' && c <= '9':
			swapped = '0' + (c-'0'+1)%10
		default:
			swapped = 'A' + (c-'A'+1)%26
		}
		mutated := valid[:pos] + string(swapped) + valid[pos+1:]
		if IsValidIBAN(mutated) {
			t.Errorf("mutation at %d (%s) passed validation", pos, mutated)
		}
	}
}

func TestNewIBAN(t *testing.T) {
	iban, err := NewIBAN("gb82 west 1234 5698 7654 32")
	require.NoError(t, err)
	require.Equal(t, "GB82WEST12345698765432", iban.String())
	require.Equal(t, "GB", iban.CountryCode())
	require.Equal(t, "82", iban.CheckDigits())
	require.Equal(t, "WEST12345698765432", iban.BBAN())
	require.Equal(t, "GB82 WEST 1234 5698 7654 32", iban.Printable())

	_, err = NewIBAN("GB83WEST12345698765432")
	require.Error(t, err)
	require.NotContains(t, err.Error(), "GB83WEST12345698765432")
}
