// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package achx

import (
	"strings"
	"testing"

	"github.com/moov-io/ach"
	"github.com/stretchr/testify/require"
)

func TestFields__numeric(t *testing.T) {
	require.Equal(t, "000123", numeric(6).format("123"))
	require.Equal(t, "001234", numeric(6).format("12-34"))
	require.Equal(t, "000000", numeric(6).format(""))
	require.Equal(t, "56", numeric(2).format("123456"))
	require.Equal(t, "0000100000", numeric(10).formatInt(100000))
}

func TestFields__alpha(t *testing.T) {
	require.Equal(t, "ACME      ", alpha(10).format("ACME"))
	require.Equal(t, "ACME CORPO", alpha(10).format("ACME CORPORATION"))
	require.Equal(t, "Jos  ", alpha(5).format("José"))
	require.Equal(t, "     ", alpha(5).format(""))
}

func TestFields__record(t *testing.T) {
	line := newRecord('8').integer(numeric(3), 220).alpha(alpha(4), "ab").String()
	require.Len(t, line, ach.RecordLength)
	require.True(t, strings.HasPrefix(line, "8220ab  "))

	long := newRecord('7').alpha(alpha(200), "x").String()
	require.Len(t, long, ach.RecordLength)
}

func TestFields__reader(t *testing.T) {
	line := newRecord('6').integer(numeric(2), 22).alpha(alpha(5), "ab").numeric(numeric(4), "7").String()

	f := newFieldReader(line)
	require.Equal(t, int64(22), f.integer(numeric(2), "code"))
	require.Equal(t, "ab", f.alpha(alpha(5)))
	require.Equal(t, "0007", f.numeric(numeric(4)))
	require.NoError(t, f.err)

	f = newFieldReader("6x1")
	f.integer(numeric(2), "code")
	require.Error(t, f.err)

	// reading past the end is empty
	require.Equal(t, "", f.alpha(alpha(10)))
}

func TestFields__readerSigns(t *testing.T) {
	for _, raw := range []string{"-000000005", "+000000005", "00000 0005"} {
		f := newFieldReader("6" + raw)
		require.Equal(t, int64(0), f.integer(numeric(10), "amount"), raw)
		require.Error(t, f.err, raw)
	}
}

