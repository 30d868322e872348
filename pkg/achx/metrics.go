// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	filesEncoded = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "ach_files_encoded_total",
		Help: "Counter of ACH files encoded",
	}, nil)

	fileDecodeErrors = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "ach_file_decode_errors_total",
		Help: "Counter of ACH files which failed to decode",
	}, nil)
)
