// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/moov-io/base"
	"github.com/moov-io/railgate/pkg/bankid"
	"github.com/moov-io/railgate/pkg/util"
)

const (
	// maxEntryAmount is the largest value the 10 digit amount field holds.
	maxEntryAmount = 9999999999

	maxAddendaLength = 80
)

// Entry is one debit or credit to a receiver's account.
type Entry struct {
	RoutingNumber string      `json:"routingNumber"`
	AccountNumber string      `json:"accountNumber"`
	AccountType   AccountType `json:"accountType"`

	// Amount is in cents. Only prenotes carry a zero amount.
	Amount int64 `json:"amount"`

	IndividualID   string `json:"individualID,omitempty"`
	IndividualName string `json:"individualName"`

	Debit   bool `json:"debit"`
	Prenote bool `json:"prenote,omitempty"`

	// Addenda is free text sent as a type 05 addenda record.
	Addenda string `json:"addenda,omitempty"`

	// TraceNumber is generated from the batch origin when empty.
	TraceNumber string `json:"traceNumber,omitempty"`

	DiscretionaryData string `json:"discretionaryData,omitempty"`

	// Code is the transaction code read from a file when it isn't the one
	// derived from AccountType, Debit and Prenote, i.e. returns or zero
	// dollar remittances. It's written back as-is.
	Code int `json:"transactionCode,omitempty"`
}

// TransactionCode returns the entry detail code for e.
func (e Entry) TransactionCode() int {
	if e.Code != 0 {
		return e.Code
	}
	return TransactionCode(e.AccountType, e.Debit, e.Prenote)
}

// HasAddenda returns true when e is followed by an addenda record.
func (e Entry) HasAddenda() bool {
	return strings.TrimSpace(e.Addenda) != ""
}

// Validate checks every field of e and returns all problems found.
func (e Entry) Validate() error {
	var el base.ErrorList
	if _, err := bankid.NewRoutingNumber(e.RoutingNumber); err != nil {
		el.Add(err)
	}
	if strings.TrimSpace(e.AccountNumber) == "" {
		el.Add(errors.New("missing account number"))
	} else if len(e.AccountNumber) > 17 {
		el.Add(errors.New("account number is longer than 17 characters"))
	}
	if err := e.AccountType.Validate(); err != nil {
		el.Add(err)
	} else if err := e.validateCode(); err != nil {
		el.Add(err)
	}
	switch {
	case e.Amount < 0:
		el.Add(fmt.Errorf("negative amount %d", e.Amount))
	case e.Amount > maxEntryAmount:
		el.Add(fmt.Errorf("amount %d does not fit in 10 digits", e.Amount))
	case e.Prenote && e.Amount != 0:
		el.Add(errors.New("prenotes must have a zero amount"))
	case !e.Prenote && e.Amount == 0 && !zeroDollarCode(e.Code):
		el.Add(errors.New("zero amount is only allowed on prenotes"))
	}
	if strings.TrimSpace(e.IndividualName) == "" {
		el.Add(errors.New("missing individual name"))
	}
	if utf8.RuneCountInString(e.Addenda) > maxAddendaLength {
		el.Add(fmt.Errorf("addenda is longer than %d characters", maxAddendaLength))
	}
	if e.TraceNumber != "" && (len(e.TraceNumber) != 15 || !util.IsDigits(e.TraceNumber)) {
		el.Add(fmt.Errorf("trace number %q must be 15 digits", e.TraceNumber))
	}
	if len(e.DiscretionaryData) > 2 {
		el.Add(fmt.Errorf("discretionary data %q is longer than 2 characters", e.DiscretionaryData))
	}
	if el.Empty() {
		return nil
	}
	return el
}

func (e Entry) validateCode() error {
	if e.Code == 0 {
		if TransactionCode(e.AccountType, e.Debit, e.Prenote) == 0 {
			return fmt.Errorf("%s accounts have no debit prenote", e.AccountType)
		}
		return nil
	}
	account, debit, prenote, err := parseTransactionCode(e.Code)
	if err != nil {
		return err
	}
	if account != e.AccountType || debit != e.Debit || prenote != e.Prenote {
		return fmt.Errorf("transaction code %02d doesn't match a %s %s", e.Code, e.AccountType, side(e.Debit))
	}
	return nil
}

func side(debit bool) string {
	if debit {
		return "debit"
	}
	return "credit"
}

