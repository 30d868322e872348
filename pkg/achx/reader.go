// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/moov-io/ach"
	"github.com/moov-io/railgate/pkg/util"
)

// ParseError is returned when a file can't be decoded. Line is 1-based and
// zero when the problem isn't tied to one line.
type ParseError struct {
	Line   int
	Record string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.Record, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Record, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const (
	fileHeaderType   = '1'
	batchHeaderType  = '5'
	entryDetailType  = '6'
	addendaType      = '7'
	batchControlType = '8'
	fileControlType  = '9'
)

func recordName(c byte) string {
	switch c {
	case fileHeaderType:
		return "file header"
	case batchHeaderType:
		return "batch header"
	case entryDetailType:
		return "entry detail"
	case addendaType:
		return "addenda"
	case batchControlType:
		return "batch control"
	case fileControlType:
		return "file control"
	}
	return "unknown"
}

type decodeState int

const (
	stateBatchScan decodeState = iota
	stateEntryScan
	stateEnd
)

// Reader decodes a NACHA formatted file.
type Reader struct {
	scanner *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Decode parses text produced by Encode or another NACHA writer.
func Decode(text string) (*File, error) {
	return NewReader(strings.NewReader(text)).Read()
}

// Read decodes the whole file. Filler records are dropped and records found
// out of order are skipped. A file without a file header or file control
// record fails with a *ParseError.
//
// Batch headers only carry the first 8 digits of the originating routing
// number, so every decoded batch uses the file's immediate origin instead.
func (r *Reader) Read() (*File, error) {
	file, err := r.read()
	if err != nil {
		fileDecodeErrors.Add(1)
		return nil, err
	}
	return file, nil
}

func (r *Reader) read() (*File, error) {
	var (
		file   = &File{}
		state  = stateBatchScan
		header *FileHeader

		batchHeader BatchHeader
		entries     []Entry

		lineNumber int
	)
	for r.scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || line == filler {
			continue
		}
		if len(line) > ach.RecordLength {
			return nil, &ParseError{Line: lineNumber, Record: recordName(line[0]), Err: fmt.Errorf("line is %d characters", len(line))}
		}
		line += strings.Repeat(" ", ach.RecordLength-len(line))

		if header == nil {
			if line[0] != fileHeaderType {
				return nil, &ParseError{Line: lineNumber, Record: "file header", Err: errors.New("missing file header")}
			}
			h, err := parseFileHeader(line)
			if err != nil {
				return nil, &ParseError{Line: lineNumber, Record: "file header", Err: err}
			}
			header = &h
			continue
		}

		switch line[0] {
		case fileHeaderType:
			// duplicate header, ignored

		case batchHeaderType:
			if state != stateBatchScan {
				continue
			}
			bh, err := parseBatchHeader(line)
			if err != nil {
				return nil, &ParseError{Line: lineNumber, Record: "batch header", Err: err}
			}
			bh.OriginRoutingNumber = header.ImmediateOrigin
			batchHeader, entries = bh, nil
			state = stateEntryScan

		case entryDetailType:
			if state != stateEntryScan {
				continue
			}
			entry, err := parseEntryDetail(line)
			if err != nil {
				return nil, &ParseError{Line: lineNumber, Record: "entry detail", Err: err}
			}
			entries = append(entries, entry)

		case addendaType:
			if state != stateEntryScan || len(entries) == 0 {
				continue
			}
			if info, ok := parseAddenda(line); ok {
				entries[len(entries)-1].Addenda = info
			}

		case batchControlType:
			if state != stateEntryScan {
				continue
			}
			file.batches = append(file.batches, buildBatch(batchHeader, entries))
			batchHeader, entries = BatchHeader{}, nil
			state = stateBatchScan

		case fileControlType:
			if state == stateEntryScan {
				return nil, &ParseError{Line: lineNumber, Record: "file control", Err: fmt.Errorf("batch %d is missing its batch control", len(file.batches)+1)}
			}
			state = stateEnd

		default:
			return nil, &ParseError{Line: lineNumber, Record: "unknown", Err: fmt.Errorf("unknown record type %q", line[0])}
		}
		if state == stateEnd {
			break
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, &ParseError{Record: "file", Err: err}
	}
	if header == nil {
		return nil, &ParseError{Record: "file header", Err: errors.New("missing file header")}
	}
	if state != stateEnd {
		return nil, &ParseError{Record: "file control", Err: errors.New("missing file control")}
	}
	file.header = *header
	return file, nil
}

func parseFileHeader(line string) (FileHeader, error) {
	f := newFieldReader(line)
	f.skip(int(priorityWidth))
	h := FileHeader{
		ImmediateDestination: immediateRoutingNumber(f.alpha(immediateWidth)),
		ImmediateOrigin:      immediateRoutingNumber(f.alpha(immediateWidth)),
	}
	date, clock := f.numeric(dateWidth), f.numeric(timeWidth)
	if date != "" {
		created, err := time.Parse(util.YYMMDDTimeFormat+util.HHMMTimeFormat, date+util.Or(clock, "0000"))
		if err != nil {
			return h, fmt.Errorf("creation date: %v", err)
		}
		h.CreatedAt = created
	}
	h.FileIDModifier = f.alpha(modifierWidth)
	f.skip(int(recordSizeWidth) + int(blockingWidth) + int(formatCodeWidth))
	h.ImmediateDestinationName = f.alpha(immediateNameWidth)
	h.ImmediateOriginName = f.alpha(immediateNameWidth)
	h.ReferenceCode = f.alpha(referenceWidth)
	return h, f.err
}

// immediateRoutingNumber drops the leading space, 0 or 1 of a 10 character field.
func immediateRoutingNumber(v string) string {
	digits := util.Digits(v)
	if len(digits) > 9 {
		return digits[len(digits)-9:]
	}
	return digits
}

func parseBatchHeader(line string) (BatchHeader, error) {
	f := newFieldReader(line)
	f.skip(int(serviceClassWidth)) // derived from the entries
	h := BatchHeader{
		CompanyName:              f.alpha(companyNameWidth),
		CompanyDiscretionaryData: f.alpha(companyDataWidth),
		CompanyIdentification:    f.alpha(companyIDWidth),
	}
	sec, err := readStandardEntryClass(f.alpha(secWidth))
	if err != nil {
		return h, err
	}
	h.StandardEntryClass = sec
	h.EntryDescription = f.alpha(descriptionWidth)
	f.skip(int(descriptiveDateWidth))
	if eff := f.numeric(dateWidth); strings.Trim(eff, "0") != "" {
		h.EffectiveDate, err = time.Parse(util.YYMMDDTimeFormat, eff)
		if err != nil {
			return h, fmt.Errorf("effective date: %v", err)
		}
	}
	f.skip(settlementDateWidth + int(originatorStatusWidth))
	f.skip(int(dfiWidth)) // replaced by the file origin
	h.BatchNumber = int(f.integer(batchNumberWidth, "batch number"))
	return h, f.err
}

func parseEntryDetail(line string) (Entry, error) {
	f := newFieldReader(line)
	code := f.integer(txCodeWidth, "transaction code")
	if f.err != nil {
		return Entry{}, f.err
	}
	account, debit, prenote, err := parseTransactionCode(int(code))
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		AccountType: account,
		Debit:       debit,
		Prenote:     prenote,
	}
	if TransactionCode(account, debit, prenote) != int(code) {
		e.Code = int(code)
	}
	e.RoutingNumber = f.numeric(dfiWidth) + f.numeric(checkDigitWidth)
	e.AccountNumber = f.alpha(accountWidth)
	e.Amount = f.integer(amountWidth, "amount")
	e.IndividualID = f.alpha(individualIDWidth)
	e.IndividualName = f.alpha(individualNameWidth)
	e.DiscretionaryData = f.alpha(discretionaryWidth)
	f.skip(int(indicatorWidth))
	e.TraceNumber = f.numeric(traceWidth)
	return e, f.err
}

// parseAddenda returns the payment information of a type 05 addenda.
func parseAddenda(line string) (string, bool) {
	f := newFieldReader(line)
	if f.numeric(addendaTypeWidth) != addenda05 {
		return "", false
	}
	return f.alpha(paymentInfoWidth), true
}
