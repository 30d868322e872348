// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package rails

import (
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	railSelections = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "rail_selections_total",
		Help: "Counter of rails picked for transactions",
	}, []string{"rail"})

	railSelectionFailures = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "rail_selection_failures_total",
		Help: "Counter of transactions with no eligible rail",
	}, nil)
)
