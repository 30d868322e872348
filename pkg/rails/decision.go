// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package rails

import (
	"fmt"
)

// Decision is emitted every time a Selector picks a rail.
type Decision struct {
	Type     Type     `json:"rail"`
	Criteria Criteria `json:"criteria"`
	Score    int      `json:"score"`
}

// DecisionSink receives Decisions. Implementations must be safe for concurrent
// use and must not block the caller.
type DecisionSink interface {
	Decided(decision Decision)
}

type nopSink struct{}

func (nopSink) Decided(Decision) {}

// NopSink returns a DecisionSink which discards every Decision.
func NopSink() DecisionSink {
	return nopSink{}
}

// NoEligibleRailError is returned when no injected rail can carry a transaction.
type NoEligibleRailError struct {
	Criteria Criteria
}

func (e *NoEligibleRailError) Error() string {
	return fmt.Sprintf("no eligible rail for %s (urgency=%s international=%v recurring=%v)",
		e.Criteria.Amount.String(), e.Criteria.Urgency, e.Criteria.International, e.Criteria.RecurringRequired)
}
