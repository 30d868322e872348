// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package rails

const (
	baseScore      = 50
	maxScore       = 100
	componentLimit = 25

	costStep = 5
)

// costRank orders rails from cheapest (0) to most expensive.
func costRank(t Type) int {
	switch t {
	case ACH:
		return 0
	case Check:
		return 1
	case VirtualCard:
		return 2
	case Wire:
		return 3
	case RTGS:
		return 4
	}
	return 4
}

// total is the base score plus each component, before the final 0-100 clamp.
func (s *Selector) total(rail Rail, criteria Criteria) int {
	caps := rail.Capabilities()
	return baseScore +
		speedScore(caps, criteria) +
		costScore(rail.Type(), criteria) +
		fitScore(caps, criteria) +
		s.preferenceScore(rail.Type(), criteria)
}

func speedScore(caps Capabilities, criteria Criteria) int {
	if caps.RealTime {
		if criteria.Urgency == Urgent || criteria.Urgency == RealTime {
			return componentLimit
		}
		return 15
	}
	switch {
	case caps.SettlementDays <= 1:
		return 15
	case caps.SettlementDays == 2:
		return 12
	}
	return 10
}

func costScore(t Type, criteria Criteria) int {
	step := costStep
	if criteria.PreferLowCost {
		step *= 2
	}
	return clamp(componentLimit-costRank(t)*step, 0, componentLimit)
}

func fitScore(caps Capabilities, criteria Criteria) int {
	score := 10
	if criteria.RecurringRequired && caps.Recurring {
		score += 5
	}
	if caps.Flag(FlagRefunds) {
		score += 3
	}
	// within 10% of the rail's ceiling
	if caps.MaximumAmount > 0 && criteria.Amount.Int64()*10 > caps.MaximumAmount*9 {
		score -= 5
	}
	return clamp(score, 0, componentLimit)
}

func (s *Selector) preferenceScore(t Type, criteria Criteria) int {
	score := 0
	if criteria.PreferredRail != 0 && criteria.PreferredRail == t {
		score += 15
	}
	amount := criteria.Amount.Int64()
	switch {
	case amount >= s.thresholds.HighValue:
		switch t {
		case RTGS:
			score += 20
		case Wire:
			score += 15
		}
	case amount < s.thresholds.LowValue:
		switch t {
		case ACH:
			score += 15
		case Check:
			score += 10
		}
	}
	return clamp(score, 0, componentLimit)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
