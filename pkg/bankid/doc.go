// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package bankid holds the fixed-format identifiers used to address banks and
// accounts: ABA routing numbers, IBANs and SWIFT/BIC codes.
//
// Each identifier is an immutable value which can only be created through its
// validating constructor (NewRoutingNumber, NewIBAN, NewSWIFTCode). The checksum
// and format algorithms are also exported so callers can collect violations
// without constructing values.
package bankid
