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
	"github.com/moov-io/railgate/x/mask"
)

const blockingFactor = 10

// FileHeader identifies the sender and receiver of a File.
type FileHeader struct {
	ImmediateOrigin          string `json:"immediateOrigin"`
	ImmediateOriginName      string `json:"immediateOriginName"`
	ImmediateDestination     string `json:"immediateDestination"`
	ImmediateDestinationName string `json:"immediateDestinationName"`

	// CreatedAt defaults to the current time.
	CreatedAt time.Time `json:"createdAt"`

	// FileIDModifier separates files sent on the same day, A-Z or 0-9. Defaults to A.
	FileIDModifier string `json:"fileIDModifier"`
	ReferenceCode  string `json:"referenceCode,omitempty"`
}

func (h FileHeader) validate() error {
	var el base.ErrorList
	if _, err := bankid.NewRoutingNumber(h.ImmediateOrigin); err != nil {
		el.Add(fmt.Errorf("immediate origin: %v", err))
	}
	if _, err := bankid.NewRoutingNumber(h.ImmediateDestination); err != nil {
		el.Add(fmt.Errorf("immediate destination: %v", err))
	}
	if !validFileIDModifier(h.FileIDModifier) {
		el.Add(fmt.Errorf("file ID modifier %q must be one of A-Z or 0-9", h.FileIDModifier))
	}
	if el.Empty() {
		return nil
	}
	return el
}

func validFileIDModifier(v string) bool {
	if len(v) != 1 {
		return false
	}
	c := v[0]
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// File is an immutable set of batches plus the file wide control totals.
type File struct {
	header  FileHeader
	batches []*Batch
}

// NewFile validates header and returns a File holding batches in order.
func NewFile(header FileHeader, batches ...*Batch) (*File, error) {
	if header.FileIDModifier == "" {
		header.FileIDModifier = "A"
	}
	header.FileIDModifier = strings.ToUpper(header.FileIDModifier)
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now()
	}
	if err := header.validate(); err != nil {
		return nil, fmt.Errorf("file header: %v", err)
	}
	for i := range batches {
		if batches[i] == nil {
			return nil, fmt.Errorf("batch %d is nil", i+1)
		}
	}
	if len(batches) == 0 {
		return nil, errors.New("file has no batches")
	}
	return &File{
		header:  header,
		batches: append([]*Batch(nil), batches...),
	}, nil
}

func (f *File) Header() FileHeader { return f.header }

// Batches returns a copy of the file's batch list.
func (f *File) Batches() []*Batch {
	return append([]*Batch(nil), f.batches...)
}

func (f *File) BatchCount() int { return len(f.batches) }

func (f *File) EntryAddendaCount() int {
	n := 0
	for i := range f.batches {
		n += f.batches[i].EntryAddendaCount()
	}
	return n
}

// EntryHash is the sum of every batch hash, kept to 10 digits.
func (f *File) EntryHash() string {
	var sum int64
	for i := range f.batches {
		sum += parseHash(f.batches[i].EntryHash())
	}
	return numeric(10).formatInt(sum % entryHashModulus)
}

func (f *File) TotalDebit() int64 {
	var n int64
	for i := range f.batches {
		n += f.batches[i].TotalDebit()
	}
	return n
}

func (f *File) TotalCredit() int64 {
	var n int64
	for i := range f.batches {
		n += f.batches[i].TotalCredit()
	}
	return n
}

// lines is how many records the file writes before blocking.
func (f *File) lines() int {
	n := 2
	for i := range f.batches {
		n += f.batches[i].lines()
	}
	return n
}

// BlockCount is the number of 10 record blocks the encoded file fills.
func (f *File) BlockCount() int {
	return (f.lines() + blockingFactor - 1) / blockingFactor
}

// Summary is a JSON friendly view of a File's aggregates. Routing numbers are masked.
type Summary struct {
	Origin            string         `json:"origin"`
	Destination       string         `json:"destination"`
	CreatedAt         time.Time      `json:"createdAt"`
	BatchCount        int            `json:"batchCount"`
	BlockCount        int            `json:"blockCount"`
	EntryAddendaCount int            `json:"entryAddendaCount"`
	EntryHash         string         `json:"entryHash"`
	TotalDebit        int64          `json:"totalDebit"`
	TotalCredit       int64          `json:"totalCredit"`
	Batches           []BatchSummary `json:"batches"`
}

type BatchSummary struct {
	BatchNumber        int    `json:"batchNumber"`
	CompanyName        string `json:"companyName"`
	StandardEntryClass string `json:"standardEntryClass"`
	ServiceClassCode   int    `json:"serviceClassCode"`
	EntryCount         int    `json:"entryCount"`
	AddendaCount       int    `json:"addendaCount"`
	EntryHash          string `json:"entryHash"`
	TotalDebit         int64  `json:"totalDebit"`
	TotalCredit        int64  `json:"totalCredit"`
}

func (f *File) Summary() Summary {
	s := Summary{
		Origin:            mask.LastFour(f.header.ImmediateOrigin),
		Destination:       mask.LastFour(f.header.ImmediateDestination),
		CreatedAt:         f.header.CreatedAt,
		BatchCount:        f.BatchCount(),
		BlockCount:        f.BlockCount(),
		EntryAddendaCount: f.EntryAddendaCount(),
		EntryHash:         f.EntryHash(),
		TotalDebit:        f.TotalDebit(),
		TotalCredit:       f.TotalCredit(),
	}
	for i, b := range f.batches {
		s.Batches = append(s.Batches, BatchSummary{
			BatchNumber:        batchNumber(b, i),
			CompanyName:        b.header.CompanyName,
			StandardEntryClass: b.header.StandardEntryClass.String(),
			ServiceClassCode:   b.ServiceClassCode(),
			EntryCount:         b.EntryCount(),
			AddendaCount:       b.AddendaCount(),
			EntryHash:          b.EntryHash(),
			TotalDebit:         b.TotalDebit(),
			TotalCredit:        b.TotalCredit(),
		})
	}
	return s
}

func batchNumber(b *Batch, idx int) int {
	if b.header.BatchNumber > 0 {
		return b.header.BatchNumber
	}
	return idx + 1
}
