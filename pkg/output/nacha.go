// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package output

import (
	"bytes"
	"fmt"

	"github.com/moov-io/railgate/pkg/achx"
)

type NACHA struct{}

func (*NACHA) Format(buf *bytes.Buffer, file *achx.File) error {
	if err := achx.NewWriter(buf).Write(file); err != nil {
		return fmt.Errorf("unable to buffer ACH file: %v", err)
	}
	return nil
}
