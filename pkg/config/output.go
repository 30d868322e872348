// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	FormatNACHA  = "nacha"
	FormatBase64 = "base64"
	FormatGPG    = "gpg"
)

// Output controls how encoded ACH files are written.
type Output struct {
	Format string `mapstructure:"format"`
	GPG    *GPG   `mapstructure:"gpg"`
}

type GPG struct {
	KeyFile string `mapstructure:"key_file"`
}

func (cfg *Output) Validate() error {
	if cfg == nil {
		return nil
	}
	switch strings.ToLower(cfg.Format) {
	case "", FormatNACHA, FormatBase64:
	case FormatGPG:
		if cfg.GPG == nil || cfg.GPG.KeyFile == "" {
			return errors.New("gpg: missing key file")
		}
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}
	return nil
}
