// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package output

import (
	"bytes"
	"encoding/base64"

	"github.com/moov-io/railgate/pkg/achx"
)

type Base64 struct{}

// Format writes the NACHA encoding of file as standard Base64.
func (*Base64) Format(buf *bytes.Buffer, file *achx.File) error {
	var plain bytes.Buffer
	if err := (&NACHA{}).Format(&plain, file); err != nil {
		return err
	}
	buf.WriteString(base64.StdEncoding.EncodeToString(plain.Bytes()))
	return nil
}
