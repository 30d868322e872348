// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package output

import (
	"bytes"
	"fmt"

	"github.com/moov-io/railgate/internal/gpgx"
	"github.com/moov-io/railgate/pkg/achx"

	"golang.org/x/crypto/openpgp"
)

// GPG encrypts the NACHA encoding of a file into an armored PGP message.
type GPG struct {
	keys openpgp.EntityList
}

func NewGPG(keys openpgp.EntityList) *GPG {
	return &GPG{keys: keys}
}

func (g *GPG) Format(buf *bytes.Buffer, file *achx.File) error {
	var plain bytes.Buffer
	if err := (&NACHA{}).Format(&plain, file); err != nil {
		return err
	}
	encrypted, err := gpgx.Encrypt(plain.Bytes(), g.keys)
	if err != nil {
		return fmt.Errorf("gpg: %v", err)
	}
	buf.Write(encrypted)
	return nil
}
