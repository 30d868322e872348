// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/moov-io/railgate/internal/gpgx"
	"github.com/moov-io/railgate/pkg/achx"
	"github.com/moov-io/railgate/pkg/config"
)

// Formatter is a structure for encoding an ACH file as plaintext or encrypted bytes.
type Formatter interface {
	Format(buf *bytes.Buffer, file *achx.File) error
}

func NewFormatter(cfg *config.Output) (Formatter, error) {
	if cfg == nil || cfg.Format == "" {
		return &NACHA{}, nil
	}
	switch {
	case strings.EqualFold(cfg.Format, config.FormatNACHA):
		return &NACHA{}, nil

	case strings.EqualFold(cfg.Format, config.FormatBase64):
		return &Base64{}, nil

	case strings.EqualFold(cfg.Format, config.FormatGPG):
		if cfg.GPG == nil {
			return nil, fmt.Errorf("gpg: missing config")
		}
		keys, err := gpgx.ReadArmoredKeyFile(cfg.GPG.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("gpg: %v", err)
		}
		return NewGPG(keys), nil
	}
	return nil, fmt.Errorf("unknown output format %q", cfg.Format)
}
