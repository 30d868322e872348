// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package util

// NACHA records carry dates as YYMMDD and times as HHMM.
const (
	YYMMDDTimeFormat = "060102"
	HHMMTimeFormat   = "1504"
)
