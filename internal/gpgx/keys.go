// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gpgx

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"

	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
	_ "golang.org/x/crypto/ripemd160"
)

// ReadArmoredKeyFile reads and parses the armored GPG key(s) at path.
func ReadArmoredKeyFile(path string) (openpgp.EntityList, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	keys, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%s: no keys found", path)
	}
	return keys, nil
}

// Encrypt returns msg encrypted for pubkeys as an armored PGP MESSAGE.
func Encrypt(msg []byte, pubkeys openpgp.EntityList) ([]byte, error) {
	if len(pubkeys) == 0 {
		return nil, errors.New("no public keys")
	}

	var out bytes.Buffer
	armored, err := armor.Encode(&out, "PGP MESSAGE", nil)
	if err != nil {
		return nil, err
	}
	plaintext, err := openpgp.Encrypt(armored, pubkeys, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	if _, err := plaintext.Write(msg); err != nil {
		return nil, err
	}
	if err := plaintext.Close(); err != nil {
		return nil, err
	}
	if err := armored.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Decrypt reads an armored message encrypted for one of keys. Keys with an
// encrypted private key must be decrypted before calling.
func Decrypt(cipherArmored []byte, keys openpgp.EntityList) ([]byte, error) {
	block, err := armor.Decode(bytes.NewReader(cipherArmored))
	if err != nil {
		return nil, err
	}
	md, err := openpgp.ReadMessage(block.Body, keys, nil, nil)
	if err != nil {
		return nil, err
	}
	return ioutil.ReadAll(md.UnverifiedBody)
}
