// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package rails

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Thresholds are the amount tiers, in minor units, used by eligibility and scoring.
type Thresholds struct {
	DomesticCurrency string

	// Amounts below LowValue favor the cheap rails.
	LowValue int64
	// Wire and RTGS become eligible for domestic transfers above MediumValue.
	MediumValue int64
	// Checks can't carry amounts above HighValue and RTGS/Wire are favored from it.
	HighValue int64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		DomesticCurrency: "USD",
		LowValue:         100000,   // $1,000
		MediumValue:      1000000,  // $10,000
		HighValue:        10000000, // $100,000
	}
}

func (t Thresholds) Validate() error {
	if t.DomesticCurrency == "" {
		return errors.New("missing domestic currency")
	}
	if t.LowValue < 0 || t.MediumValue < t.LowValue || t.HighValue < t.MediumValue {
		return fmt.Errorf("thresholds must be ascending: low=%d medium=%d high=%d", t.LowValue, t.MediumValue, t.HighValue)
	}
	return nil
}

// Selection is the rail picked by a Selector along with its score (0-100).
type Selection struct {
	Rail  Rail
	Type  Type
	Score int
}

// Selector picks the best Rail for a transaction. The rails are fixed when the
// Selector is created and Select holds no state between calls, so a Selector
// is safe for concurrent use.
type Selector struct {
	logger     log.Logger
	sink       DecisionSink
	thresholds Thresholds
	rails      []Rail
}

// NewSelector returns a Selector over the available rails. A nil logger or sink
// is replaced with a no-op implementation.
func NewSelector(logger log.Logger, sink DecisionSink, thresholds Thresholds, available ...Rail) *Selector {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if sink == nil {
		sink = NopSink()
	}
	return &Selector{
		logger:     logger,
		sink:       sink,
		thresholds: thresholds,
		rails:      append([]Rail(nil), available...),
	}
}

// Select returns the highest scoring eligible rail for criteria, or a
// *NoEligibleRailError carrying criteria when nothing can carry the transaction.
func (s *Selector) Select(criteria Criteria) (*Selection, error) {
	if criteria.Urgency == "" {
		criteria.Urgency = Standard
	}
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("rails: invalid criteria: %v", err)
	}

	ranked := s.rank(criteria)
	if len(ranked) == 0 {
		railSelectionFailures.Add(1)
		level.Warn(s.logger).Log("rails", "no eligible rail", "amount", criteria.Amount.String(), "urgency", criteria.Urgency)
		return nil, &NoEligibleRailError{Criteria: criteria}
	}

	best := ranked[0]
	railSelections.With("rail", best.railType.String()).Add(1)
	level.Debug(s.logger).Log("rails", "selected", "rail", best.railType.String(), "score", best.score, "candidates", len(ranked))

	s.sink.Decided(Decision{
		Type:     best.railType,
		Criteria: criteria,
		Score:    best.score,
	})

	return &Selection{
		Rail:  best.rail,
		Type:  best.railType,
		Score: best.score,
	}, nil
}

// Rank scores every eligible rail for criteria, best first. It emits no Decision.
func (s *Selector) Rank(criteria Criteria) []Selection {
	if criteria.Urgency == "" {
		criteria.Urgency = Standard
	}
	ranked := s.rank(criteria)
	out := make([]Selection, len(ranked))
	for i := range ranked {
		out[i] = Selection{Rail: ranked[i].rail, Type: ranked[i].railType, Score: ranked[i].score}
	}
	return out
}

type candidate struct {
	rail     Rail
	railType Type
	score    int
}

func (s *Selector) rank(criteria Criteria) []candidate {
	var out []candidate
	for _, rail := range s.rails {
		if rail == nil || !s.eligible(rail, criteria) {
			continue
		}
		out = append(out, candidate{
			rail:     rail,
			railType: rail.Type(),
			score:    clamp(s.total(rail, criteria), 0, maxScore),
		})
	}
	// stable so ties keep the injection order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].score > out[j].score
	})
	return out
}

func (s *Selector) eligible(rail Rail, criteria Criteria) bool {
	if !rail.Available() {
		return false
	}
	caps := rail.Capabilities()
	amount := criteria.Amount.Int64()

	if !caps.SupportsCurrency(criteria.Amount.Currency()) || !caps.WithinBounds(amount) {
		return false
	}
	switch criteria.Urgency {
	case Urgent:
		if caps.SettlementDays > 1 && !caps.RealTime {
			return false
		}
	case RealTime:
		if !caps.RealTime {
			return false
		}
	}
	if criteria.RecurringRequired && !caps.Recurring {
		return false
	}

	switch rail.Type() {
	case ACH:
		return s.domestic(criteria)
	case Wire:
		return criteria.International || amount > s.thresholds.MediumValue
	case Check:
		return criteria.Urgency == Standard && !criteria.International && amount <= s.thresholds.HighValue
	case RTGS:
		return s.domestic(criteria) && amount > s.thresholds.MediumValue
	case VirtualCard:
		return criteria.BeneficiaryType == Vendor && criteria.Urgency != RealTime
	}
	return false
}

func (s *Selector) domestic(criteria Criteria) bool {
	return !criteria.International && strings.EqualFold(criteria.Amount.Currency(), s.thresholds.DomesticCurrency)
}
