// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/moov-io/railgate/pkg/achx"
	"github.com/moov-io/railgate/pkg/config"
	"github.com/moov-io/railgate/pkg/events"
	"github.com/moov-io/railgate/pkg/output"
	"github.com/moov-io/railgate/pkg/rails"
	"github.com/moov-io/railgate/pkg/rails/validator"
	"github.com/moov-io/railgate/pkg/util"

	"github.com/go-kit/kit/log"
)

type app struct {
	cfg    *config.Config
	logger log.Logger
	out    io.Writer

	selector  *rails.Selector
	validator *validator.Validator
	formatter output.Formatter

	// sink is nil unless events are configured
	sink *events.TopicSink
}

func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	catalog, err := cfg.Rails.Rails()
	if err != nil {
		return nil, fmt.Errorf("rails: %v", err)
	}
	formatter, err := output.NewFormatter(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("output: %v", err)
	}

	a := &app{
		cfg:       cfg,
		logger:    cfg.Logger,
		out:       out,
		validator: validator.New(cfg.Rails.Thresholds(), cfg.Rails.Sanctions(), catalog...),
		formatter: formatter,
	}

	var sink rails.DecisionSink = rails.NopSink()
	if cfg.Events != nil {
		topic, err := events.OpenTopic(ctx, cfg.Events)
		if err != nil {
			return nil, fmt.Errorf("events: %v", err)
		}
		a.sink = events.NewTopicSink(cfg.Logger, topic)
		sink = a.sink
	}
	a.selector = rails.NewSelector(cfg.Logger, sink, cfg.Rails.Thresholds(), catalog...)

	return a, nil
}

func (a *app) Close(ctx context.Context) error {
	if a == nil || a.sink == nil {
		return nil
	}
	return a.sink.Close(ctx)
}

type selectRequest struct {
	Criteria rails.Criteria `json:"criteria"`

	// Transaction is optionally validated against the chosen rail.
	Transaction *validator.Request `json:"transaction,omitempty"`
}

type rankedRail struct {
	Rail  rails.Type `json:"rail"`
	Score int        `json:"score"`
}

type selectResponse struct {
	Rail     rails.Type   `json:"rail"`
	Score    int          `json:"score"`
	Ranking  []rankedRail `json:"ranking"`
	Problems []string     `json:"problems,omitempty"`
}

func (a *app) selectRail(input []byte) error {
	var req selectRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return fmt.Errorf("reading criteria: %v", err)
	}

	selection, err := a.selector.Select(req.Criteria)
	if err != nil {
		return err
	}
	resp := selectResponse{
		Rail:  selection.Type,
		Score: selection.Score,
	}
	for _, s := range a.selector.Rank(req.Criteria) {
		resp.Ranking = append(resp.Ranking, rankedRail{Rail: s.Type, Score: s.Score})
	}

	if req.Transaction != nil {
		err := a.validator.ValidateTransaction(*req.Transaction, selection.Type)
		var verr *validator.ValidationError
		switch {
		case errors.As(err, &verr):
			resp.Problems = verr.Errors
		case err != nil:
			return err
		}
	}
	return a.writeJSON(resp)
}

type encodeRequest struct {
	// Destination is used when the ODFI has no gateway destination.
	Destination     string        `json:"destination"`
	DestinationName string        `json:"destinationName"`
	FileIDModifier  string        `json:"fileIDModifier,omitempty"`
	Batches         []batchRecord `json:"batches"`
}

type batchRecord struct {
	Header  achx.BatchHeader `json:"header"`
	Entries []achx.Entry     `json:"entries"`
}

func (a *app) buildFile(req encodeRequest) (*achx.File, error) {
	odfi := a.cfg.ODFI

	var batches []*achx.Batch
	for i := range req.Batches {
		header := req.Batches[i].Header
		header.CompanyName = util.Or(header.CompanyName, odfi.CompanyName)
		header.CompanyIdentification = util.Or(header.CompanyIdentification, odfi.CompanyIdentification)
		header.OriginRoutingNumber = util.Or(header.OriginRoutingNumber, odfi.RoutingNumber)
		if header.BatchNumber == 0 {
			header.BatchNumber = i + 1
		}
		batch, err := achx.NewBatch(header, req.Batches[i].Entries...)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %v", i+1, err)
		}
		batches = append(batches, batch)
	}

	return achx.NewFile(achx.FileHeader{
		ImmediateOrigin:          odfi.Origin(),
		ImmediateOriginName:      util.Or(odfi.Gateway.OriginName, odfi.CompanyName),
		ImmediateDestination:     odfi.Destination(req.Destination),
		ImmediateDestinationName: util.Or(odfi.Gateway.DestinationName, req.DestinationName),
		FileIDModifier:           req.FileIDModifier,
	}, batches...)
}

func (a *app) encodeFile(input []byte) error {
	var req encodeRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return fmt.Errorf("reading batches: %v", err)
	}
	file, err := a.buildFile(req)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := a.formatter.Format(&buf, file); err != nil {
		return fmt.Errorf("formatting file: %v", err)
	}
	if _, err := a.out.Write(buf.Bytes()); err != nil {
		return err
	}

	summary := file.Summary()
	a.logger.Log("encode", "file", "batches", summary.BatchCount, "entryHash", summary.EntryHash)
	if a.sink != nil {
		a.sink.File(events.FileEncoded, summary)
	}
	return nil
}

func (a *app) decodeFile(input []byte) error {
	file, err := achx.Decode(string(input))
	if err != nil {
		return err
	}
	summary := file.Summary()
	if a.sink != nil {
		a.sink.File(events.FileDecoded, summary)
	}
	return a.writeJSON(summary)
}

func (a *app) validateFile(input []byte) error {
	problems := achx.ValidateFormat(string(input))
	if len(problems) == 0 {
		fmt.Fprintln(a.out, "valid")
		return nil
	}
	for i := range problems {
		fmt.Fprintln(a.out, problems[i])
	}
	return fmt.Errorf("found %d format problems: %s", len(problems), strings.Join(problems, "; "))
}

func (a *app) writeJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
