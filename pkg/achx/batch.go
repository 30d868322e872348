// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/moov-io/base"
	"github.com/moov-io/railgate/pkg/bankid"
)

// BatchHeader holds the fields every entry in a Batch shares.
type BatchHeader struct {
	CompanyName              string             `json:"companyName"`
	CompanyIdentification    string             `json:"companyIdentification"`
	CompanyDiscretionaryData string             `json:"companyDiscretionaryData,omitempty"`
	EntryDescription         string             `json:"entryDescription"`
	StandardEntryClass       StandardEntryClass `json:"standardEntryClass"`

	// EffectiveDate defaults to the next banking day.
	EffectiveDate time.Time `json:"effectiveDate"`

	// OriginRoutingNumber is the ODFI. Only its first 8 digits are written.
	OriginRoutingNumber string `json:"originRoutingNumber"`

	// BatchNumber is assigned by position in the file when zero.
	BatchNumber int `json:"batchNumber,omitempty"`
}

func (h BatchHeader) validate() error {
	var el base.ErrorList
	if strings.TrimSpace(h.CompanyName) == "" {
		el.Add(errors.New("missing company name"))
	}
	if strings.TrimSpace(h.CompanyIdentification) == "" {
		el.Add(errors.New("missing company identification"))
	}
	if strings.TrimSpace(h.EntryDescription) == "" {
		el.Add(errors.New("missing entry description"))
	}
	if err := h.StandardEntryClass.Validate(); err != nil {
		el.Add(err)
	}
	if _, err := bankid.NewRoutingNumber(h.OriginRoutingNumber); err != nil {
		el.Add(fmt.Errorf("origin: %v", err))
	}
	if h.BatchNumber < 0 || h.BatchNumber > 9999999 {
		el.Add(fmt.Errorf("batch number %d does not fit in 7 digits", h.BatchNumber))
	}
	if el.Empty() {
		return nil
	}
	return el
}

// Batch is an immutable group of entries along with their control totals.
type Batch struct {
	header  BatchHeader
	entries []Entry

	serviceClassCode int
	addendaCount     int
	entryHash        string
	totalDebit       int64
	totalCredit      int64
}

// NewBatch validates header and entries and computes the batch aggregates.
func NewBatch(header BatchHeader, entries ...Entry) (*Batch, error) {
	var el base.ErrorList
	if err := header.validate(); err != nil {
		el.Add(fmt.Errorf("batch header: %v", err))
	}
	if len(entries) == 0 {
		el.Add(errors.New("batch has no entries"))
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			el.Add(fmt.Errorf("entry %d: %v", i+1, err))
		}
	}
	if !el.Empty() {
		return nil, el
	}
	if header.EffectiveDate.IsZero() {
		header.EffectiveDate = base.NewTime(time.Now()).AddBankingDay(1).Time
	}
	return buildBatch(header, entries), nil
}

// buildBatch computes the aggregates without validating, decoded batches use it directly.
func buildBatch(header BatchHeader, entries []Entry) *Batch {
	b := &Batch{
		header:           header,
		entries:          append([]Entry(nil), entries...),
		serviceClassCode: serviceClassCode(entries),
	}
	routingNumbers := make([]string, 0, len(entries))
	for i := range entries {
		routingNumbers = append(routingNumbers, entries[i].RoutingNumber)
		if entries[i].HasAddenda() {
			b.addendaCount++
		}
		if entries[i].Debit {
			b.totalDebit += entries[i].Amount
		} else {
			b.totalCredit += entries[i].Amount
		}
	}
	b.entryHash = ComputeEntryHash(routingNumbers)
	return b
}

func (b *Batch) Header() BatchHeader { return b.header }

// Entries returns a copy of the batch's entries.
func (b *Batch) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

func (b *Batch) ServiceClassCode() int { return b.serviceClassCode }
func (b *Batch) EntryCount() int       { return len(b.entries) }
func (b *Batch) AddendaCount() int     { return b.addendaCount }

// EntryAddendaCount is the count written into the batch control record.
func (b *Batch) EntryAddendaCount() int { return len(b.entries) + b.addendaCount }

func (b *Batch) EntryHash() string  { return b.entryHash }
func (b *Batch) TotalDebit() int64  { return b.totalDebit }
func (b *Batch) TotalCredit() int64 { return b.totalCredit }

// lines is how many records the batch writes, header and control included.
func (b *Batch) lines() int {
	return 2 + b.EntryAddendaCount()
}
