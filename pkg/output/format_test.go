// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package output

import (
	"bytes"
	"encoding/base64"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moov-io/railgate/internal/gpgx"
	"github.com/moov-io/railgate/pkg/achx"
	"github.com/moov-io/railgate/pkg/config"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
)

func testFile(t *testing.T) *achx.File {
	t.Helper()

	batch, err := achx.NewBatch(achx.BatchHeader{
		CompanyName:           "Acme Corp",
		CompanyIdentification: "1234567890",
		EntryDescription:      "PAYROLL",
		StandardEntryClass:    achx.PPD,
		OriginRoutingNumber:   "076401251",
	}, achx.Entry{
		RoutingNumber:  "021000021",
		AccountNumber:  "12345678",
		AccountType:    achx.Checking,
		Amount:         60000,
		IndividualName: "Jane Doe",
	})
	require.NoError(t, err)

	file, err := achx.NewFile(achx.FileHeader{
		ImmediateOrigin:      "076401251",
		ImmediateDestination: "076401251",
		CreatedAt:            time.Date(2020, time.October, 14, 9, 30, 0, 0, time.UTC),
	}, batch)
	require.NoError(t, err)
	return file
}

func TestFormatter(t *testing.T) {
	enc, err := NewFormatter(&config.Output{Format: "other"})
	if err == nil {
		t.Fatal("expected error")
	}
	if enc != nil {
		t.Errorf("unexpected Formatter: %#v", enc)
	}

	enc, err = NewFormatter(nil)
	require.NoError(t, err)
	require.IsType(t, &NACHA{}, enc)

	enc, err = NewFormatter(&config.Output{Format: "BASE64"})
	require.NoError(t, err)
	require.IsType(t, &Base64{}, enc)

	_, err = NewFormatter(&config.Output{Format: "gpg"})
	require.Error(t, err)

	_, err = NewFormatter(&config.Output{Format: "gpg", GPG: &config.GPG{KeyFile: filepath.Join("testdata", "missing.pub")}})
	require.Error(t, err)
}

func TestNACHA(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&NACHA{}).Format(&buf, testFile(t)))

	require.True(t, strings.HasPrefix(buf.String(), "101 076401251 076401251"))
	require.Empty(t, achx.ValidateFormat(buf.String()))

	require.Error(t, (&NACHA{}).Format(&buf, nil))
}

func TestBase64(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Base64{}).Format(&buf, testFile(t)))

	if !strings.HasPrefix(buf.String(), `MTAxIDA3NjQwMTI1MSAwNzY0MDEyNTE`) {
		t.Errorf("unexpected output: %v", buf.String())
	}

	bs, err := base64.StdEncoding.DecodeString(buf.String())
	require.NoError(t, err)
	decoded, err := achx.Decode(string(bs))
	require.NoError(t, err)
	require.Equal(t, int64(60000), decoded.TotalCredit())
}

func TestGPG(t *testing.T) {
	dir, err := ioutil.TempDir("", "output")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	entity, err := openpgp.NewEntity("railgate", "test", "railgate@example.com", nil)
	require.NoError(t, err)

	var key bytes.Buffer
	w, err := armor.Encode(&key, openpgp.PublicKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.Serialize(w))
	require.NoError(t, w.Close())

	path := filepath.Join(dir, "odfi.pub")
	require.NoError(t, ioutil.WriteFile(path, key.Bytes(), 0600))

	enc, err := NewFormatter(&config.Output{Format: "gpg", GPG: &config.GPG{KeyFile: path}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, enc.Format(&buf, testFile(t)))
	require.True(t, strings.HasPrefix(buf.String(), "-----BEGIN PGP MESSAGE-----"))

	plain, err := gpgx.Decrypt(buf.Bytes(), openpgp.EntityList{entity})
	require.NoError(t, err)

	decoded, err := achx.Decode(string(plain))
	require.NoError(t, err)
	require.Equal(t, 1, decoded.BatchCount())
}
