// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moov-io/ach"
)

// AccountType is the kind of account an entry posts to.
type AccountType int

const (
	Checking AccountType = iota + 1
	Savings
	GeneralLedger
	Loan
)

func (t AccountType) String() string {
	switch t {
	case Checking:
		return "checking"
	case Savings:
		return "savings"
	case GeneralLedger:
		return "ledger"
	case Loan:
		return "loan"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

func (t AccountType) Validate() error {
	switch t {
	case Checking, Savings, GeneralLedger, Loan:
		return nil
	}
	return fmt.Errorf("unknown account type %d", int(t))
}

func ParseAccountType(in string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "checking":
		return Checking, nil
	case "savings":
		return Savings, nil
	case "ledger":
		return GeneralLedger, nil
	case "loan":
		return Loan, nil
	}
	return 0, fmt.Errorf("unknown account type %q", in)
}

func (t AccountType) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

func (t *AccountType) UnmarshalText(b []byte) error {
	tt, err := ParseAccountType(string(b))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// StandardEntryClass is the three letter category code shared by a batch.
// Batches are built with PPD, CCD, WEB or TEL. Any other well-formed code
// read from a file (CTX, IAT, COR...) is kept as-is so it can be written back.
type StandardEntryClass string

const (
	PPD StandardEntryClass = ach.PPD
	CCD StandardEntryClass = ach.CCD
	WEB StandardEntryClass = ach.WEB
	TEL StandardEntryClass = ach.TEL
)

func (c StandardEntryClass) String() string {
	return string(c)
}

// Known returns true for the codes batches can be built with.
func (c StandardEntryClass) Known() bool {
	switch c {
	case PPD, CCD, WEB, TEL:
		return true
	}
	return false
}

func (c StandardEntryClass) Validate() error {
	if c.Known() {
		return nil
	}
	return fmt.Errorf("unsupported standard entry class %q", string(c))
}

func ParseStandardEntryClass(in string) (StandardEntryClass, error) {
	c := StandardEntryClass(strings.ToUpper(strings.TrimSpace(in)))
	if !c.Known() {
		return "", fmt.Errorf("unknown standard entry class %q", in)
	}
	return c, nil
}

// readStandardEntryClass accepts any three letter or digit code found in a
// batch header.
func readStandardEntryClass(in string) (StandardEntryClass, error) {
	code := strings.ToUpper(strings.TrimSpace(in))
	if len(code) != 3 {
		return "", fmt.Errorf("malformed standard entry class %q", in)
	}
	for i := 0; i < len(code); i++ {
		if c := code[i]; (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return "", fmt.Errorf("malformed standard entry class %q", in)
		}
	}
	return StandardEntryClass(code), nil
}

func (c StandardEntryClass) MarshalText() ([]byte, error) {
	if c == "" {
		return nil, errors.New("empty standard entry class")
	}
	return []byte(c.String()), nil
}

func (c *StandardEntryClass) UnmarshalText(b []byte) error {
	cc, err := ParseStandardEntryClass(string(b))
	if err != nil {
		return err
	}
	*c = cc
	return nil
}

// General ledger and loan codes moov-io/ach has no credit or debit constants for.
const (
	generalLedgerCredit = 42
	generalLedgerDebit  = 47
	loanCredit          = 52
	loanDebit           = 55
)

// TransactionCode returns the two digit entry detail code for an account type.
// Loans have no debit prenote, zero is returned for it.
func TransactionCode(account AccountType, debit, prenote bool) int {
	switch account {
	case Checking:
		switch {
		case debit && prenote:
			return ach.CheckingPrenoteDebit
		case debit:
			return ach.CheckingDebit
		case prenote:
			return ach.CheckingPrenoteCredit
		}
		return ach.CheckingCredit
	case Savings:
		switch {
		case debit && prenote:
			return ach.SavingsPrenoteDebit
		case debit:
			return ach.SavingsDebit
		case prenote:
			return ach.SavingsPrenoteCredit
		}
		return ach.SavingsCredit
	case GeneralLedger:
		switch {
		case debit && prenote:
			return ach.GLPrenoteDebit
		case debit:
			return generalLedgerDebit
		case prenote:
			return ach.GLPrenoteCredit
		}
		return generalLedgerCredit
	case Loan:
		switch {
		case debit && prenote:
			return 0
		case debit:
			return loanDebit
		case prenote:
			return ach.LoanPrenoteCredit
		}
		return loanCredit
	}
	return 0 // invalid, represents a logic bug
}

// parseTransactionCode reads any checking (2x), savings (3x), general ledger
// (4x) or loan (5x) code. Return, notification of change and zero dollar
// codes are mapped onto the credit or debit side they belong to.
func parseTransactionCode(code int) (account AccountType, debit, prenote bool, err error) {
	switch code / 10 {
	case 2:
		account = Checking
	case 3:
		account = Savings
	case 4:
		account = GeneralLedger
	case 5:
		account = Loan
	default:
		return 0, false, false, fmt.Errorf("unsupported transaction code %02d", code)
	}
	switch d := code % 10; {
	case d >= 1 && d <= 4:
		debit = false
	case account == Loan && (d == 5 || d == 6):
		debit = true
	case account != Loan && d >= 6:
		debit = true
	default:
		return 0, false, false, fmt.Errorf("unsupported transaction code %02d", code)
	}
	prenote = code%10 == 3 || code%10 == 8
	return account, debit, prenote, nil
}

// zeroDollarCode returns true for remittance codes which carry no amount.
func zeroDollarCode(code int) bool {
	d := code % 10
	return d == 4 || d == 9
}

// serviceClassCode picks 220 (credits only), 225 (debits only) or 200 (mixed).
func serviceClassCode(entries []Entry) int {
	var debits, credits bool
	for i := range entries {
		if entries[i].Debit {
			debits = true
		} else {
			credits = true
		}
	}
	switch {
	case debits && credits:
		return ach.MixedDebitsAndCredits
	case debits:
		return ach.DebitsOnly
	}
	return ach.CreditsOnly
}
