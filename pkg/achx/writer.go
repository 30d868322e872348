// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/moov-io/ach"
	"github.com/moov-io/railgate/pkg/util"
)

// field widths shared by the writer and the reader
const (
	priorityWidth         = numeric(2)
	immediateWidth        = alpha(10)
	dateWidth             = numeric(6)
	timeWidth             = numeric(4)
	modifierWidth         = alpha(1)
	recordSizeWidth       = numeric(3)
	blockingWidth         = numeric(2)
	formatCodeWidth       = numeric(1)
	immediateNameWidth    = alpha(23)
	referenceWidth        = alpha(8)
	serviceClassWidth     = numeric(3)
	companyNameWidth      = alpha(16)
	companyDataWidth      = alpha(20)
	companyIDWidth        = alpha(10)
	secWidth              = alpha(3)
	descriptionWidth      = alpha(10)
	descriptiveDateWidth  = alpha(6)
	settlementDateWidth   = 3
	originatorStatusWidth = numeric(1)
	dfiWidth              = numeric(8)
	batchNumberWidth      = numeric(7)
	txCodeWidth           = numeric(2)
	checkDigitWidth       = numeric(1)
	accountWidth          = alpha(17)
	amountWidth           = numeric(10)
	individualIDWidth     = alpha(15)
	individualNameWidth   = alpha(22)
	discretionaryWidth    = alpha(2)
	indicatorWidth        = numeric(1)
	traceWidth            = numeric(15)
	addendaTypeWidth      = numeric(2)
	paymentInfoWidth      = alpha(80)
	addendaSeqWidth       = numeric(4)
	entrySeqWidth         = numeric(7)
	entryCountWidth       = numeric(6)
	hashWidth             = numeric(10)
	totalWidth            = numeric(12)
	authCodeWidth         = 19
	batchReservedWidth    = 6
	batchCountWidth       = numeric(6)
	blockCountWidth       = numeric(6)
	fileEntriesWidth      = numeric(8)
	fileReservedWidth     = 39
)

const (
	priorityCode          = "01"
	recordSize            = "094"
	blockingFactorField   = "10"
	formatCode            = "1"
	originatorStatusCode  = "1"
	addenda05             = "05"
	addendaSequenceNumber = 1
)

var filler = strings.Repeat("9", ach.RecordLength)

// Writer encodes Files into the fixed-width NACHA format.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write encodes file, pads it to a full block with filler records and flushes.
func (w *Writer) Write(file *File) error {
	if file == nil {
		return errors.New("nil File")
	}
	lines := encodeLines(file)
	for i := range lines {
		if _, err := w.w.WriteString(lines[i] + "\n"); err != nil {
			return err
		}
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	filesEncoded.Add(1)
	return nil
}

// Encode returns file in the NACHA format, one record per line.
func Encode(file *File) (string, error) {
	var buf strings.Builder
	if err := NewWriter(&buf).Write(file); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeLines(file *File) []string {
	lines := []string{fileHeaderRecord(file.header)}

	// trace sequences run across the whole file
	sequence := 0
	for i, b := range file.batches {
		number := batchNumber(b, i)
		lines = append(lines, batchHeaderRecord(b, number))
		for _, entry := range b.entries {
			sequence++
			trace := entry.TraceNumber
			if trace == "" {
				trace = TraceNumber(b.header.OriginRoutingNumber, sequence)
			}
			lines = append(lines, entryDetailRecord(entry, trace))
			if entry.HasAddenda() {
				lines = append(lines, addendaRecord(entry.Addenda, trace))
			}
		}
		lines = append(lines, batchControlRecord(b, number))
	}
	lines = append(lines, fileControlRecord(file))

	for len(lines)%blockingFactor != 0 {
		lines = append(lines, filler)
	}
	return lines
}

func fileHeaderRecord(h FileHeader) string {
	return newRecord('1').
		numeric(priorityWidth, priorityCode).
		alpha(immediateWidth, " "+util.Digits(h.ImmediateDestination)).
		alpha(immediateWidth, " "+util.Digits(h.ImmediateOrigin)).
		numeric(dateWidth, h.CreatedAt.Format(util.YYMMDDTimeFormat)).
		numeric(timeWidth, h.CreatedAt.Format(util.HHMMTimeFormat)).
		alpha(modifierWidth, h.FileIDModifier).
		numeric(recordSizeWidth, recordSize).
		numeric(blockingWidth, blockingFactorField).
		numeric(formatCodeWidth, formatCode).
		alpha(immediateNameWidth, h.ImmediateDestinationName).
		alpha(immediateNameWidth, h.ImmediateOriginName).
		alpha(referenceWidth, h.ReferenceCode).
		String()
}

func batchHeaderRecord(b *Batch, number int) string {
	h := b.header
	return newRecord('5').
		integer(serviceClassWidth, int64(b.serviceClassCode)).
		alpha(companyNameWidth, h.CompanyName).
		alpha(companyDataWidth, h.CompanyDiscretionaryData).
		alpha(companyIDWidth, h.CompanyIdentification).
		alpha(secWidth, h.StandardEntryClass.String()).
		alpha(descriptionWidth, h.EntryDescription).
		alpha(descriptiveDateWidth, h.EffectiveDate.Format(util.YYMMDDTimeFormat)).
		numeric(dateWidth, h.EffectiveDate.Format(util.YYMMDDTimeFormat)).
		blank(settlementDateWidth). // filled in by the operator
		numeric(originatorStatusWidth, originatorStatusCode).
		numeric(dfiWidth, ABA8(h.OriginRoutingNumber)).
		integer(batchNumberWidth, int64(number)).
		String()
}

func entryDetailRecord(e Entry, trace string) string {
	indicator := int64(0)
	if e.HasAddenda() {
		indicator = 1
	}
	return newRecord('6').
		integer(txCodeWidth, int64(e.TransactionCode())).
		numeric(dfiWidth, ABA8(e.RoutingNumber)).
		numeric(checkDigitWidth, ABACheckDigit(e.RoutingNumber)).
		alpha(accountWidth, e.AccountNumber).
		integer(amountWidth, e.Amount).
		alpha(individualIDWidth, e.IndividualID).
		alpha(individualNameWidth, e.IndividualName).
		alpha(discretionaryWidth, e.DiscretionaryData).
		integer(indicatorWidth, indicator).
		numeric(traceWidth, trace).
		String()
}

func addendaRecord(info, trace string) string {
	return newRecord('7').
		numeric(addendaTypeWidth, addenda05).
		alpha(paymentInfoWidth, info).
		integer(addendaSeqWidth, addendaSequenceNumber).
		numeric(entrySeqWidth, trace).
		String()
}

func batchControlRecord(b *Batch, number int) string {
	return newRecord('8').
		integer(serviceClassWidth, int64(b.serviceClassCode)).
		integer(entryCountWidth, int64(b.EntryAddendaCount())).
		numeric(hashWidth, b.entryHash).
		integer(totalWidth, b.totalDebit).
		integer(totalWidth, b.totalCredit).
		alpha(companyIDWidth, b.header.CompanyIdentification).
		blank(authCodeWidth).
		blank(batchReservedWidth).
		numeric(dfiWidth, ABA8(b.header.OriginRoutingNumber)).
		integer(batchNumberWidth, int64(number)).
		String()
}

func fileControlRecord(f *File) string {
	return newRecord('9').
		integer(batchCountWidth, int64(f.BatchCount())).
		integer(blockCountWidth, int64(f.BlockCount())).
		integer(fileEntriesWidth, int64(f.EntryAddendaCount())).
		numeric(hashWidth, f.EntryHash()).
		integer(totalWidth, f.TotalDebit()).
		integer(totalWidth, f.TotalCredit()).
		blank(fileReservedWidth).
		String()
}
