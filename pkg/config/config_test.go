// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/moov-io/railgate/pkg/rails"

	"github.com/go-kit/kit/log/level"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	cfg, err := FromFile(filepath.Join("testdata", "valid.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Logger == nil {
		t.Fatal("nil Logger")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("cfg.Logging.Format=%s", cfg.Logging.Format)
	}

	if cfg.ODFI.RoutingNumber != "987654320" {
		t.Errorf("ODFI=%#v", cfg.ODFI)
	}
	require.Equal(t, "987654320", cfg.ODFI.Origin())
	require.Equal(t, "021000021", cfg.ODFI.Destination("231380104"))
	require.Equal(t, "MOOVZZZZZZ", cfg.ODFI.CompanyIdentification)

	th := cfg.Rails.Thresholds()
	require.Equal(t, "USD", th.DomesticCurrency)
	require.Equal(t, int64(25000000), th.HighValue)
	require.Equal(t, rails.DefaultThresholds().LowValue, th.LowValue)

	catalog, err := cfg.Rails.Rails()
	require.NoError(t, err)
	require.Len(t, catalog, 5)
	for _, r := range catalog {
		switch r.Type() {
		case rails.Check:
			require.False(t, r.Available())
		case rails.VirtualCard:
			caps := r.Capabilities()
			require.Equal(t, []string{"USD", "EUR"}, caps.Currencies)
			require.Equal(t, int64(1000000), caps.MaximumAmount)
			require.False(t, caps.Flag(rails.FlagRefunds))
			require.True(t, caps.Recurring)
		default:
			require.True(t, r.Available())
		}
	}

	sanctions := cfg.Rails.Sanctions()
	require.Error(t, sanctions.Screen("RU"))
	require.NoError(t, sanctions.Screen("IR"))

	require.NotNil(t, cfg.Events)
	require.Equal(t, "mem://railgate", cfg.Events.InMem.URL)
	require.Equal(t, FormatBase64, cfg.Output.Format)
}

func TestInvalidConfig(t *testing.T) {
	cfg, err := FromFile(filepath.Join("testdata", "invalid.yaml"))
	if err == nil {
		t.Error("expected error")
	}

	if err := cfg.Validate(); err == nil {
		t.Error("expected error")
	}
}

func TestConfig__empty(t *testing.T) {
	cfg, err := FromFile("")
	require.NoError(t, err)
	require.Equal(t, FormatNACHA, cfg.Output.Format)
	require.Nil(t, cfg.Events)

	catalog, err := cfg.Rails.Rails()
	require.NoError(t, err)
	require.Len(t, catalog, 5)

	// default blocklist
	require.Error(t, cfg.Rails.Sanctions().Screen("KP"))
}

func TestReadConfig(t *testing.T) {
	conf := []byte(`logging:
  format: plain
odfi:
  routing_number: "231380104"
events:
  kafka:
    brokers: ["localhost:9092"]
    topic: "rail-decisions"
output:
  format: gpg
  gpg:
    key_file: "/conf/keys/odfi.pub"
`)
	cfg, err := Read(conf)
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:9092"}, cfg.Events.Kafka.Brokers)
	require.Equal(t, "rail-decisions", cfg.Events.Kafka.Topic)
	require.Equal(t, "/conf/keys/odfi.pub", cfg.Output.GPG.KeyFile)

	_, err = Read([]byte("odfi: [unclosed"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	var cfg *Config
	require.Error(t, cfg.Validate())

	cases := map[string]string{
		"bad routing":        "odfi:\n  routing_number: \"12345\"\n",
		"bad gateway":        "odfi:\n  routing_number: \"231380104\"\n  gateway:\n    origin: \"1\"\n",
		"bad currency":       "rails:\n  domestic_currency: ZZZ\n",
		"bad thresholds":     "rails:\n  low_value: 500\n  medium_value: 100\n",
		"unknown rail":       "rails:\n  catalog:\n    pigeon:\n      available: true\n",
		"bad catalog bounds": "rails:\n  catalog:\n    ach:\n      minimum_amount: 100\n      maximum_amount: 10\n",
		"inmem url":          "events:\n  inmem:\n    url: \"\"\n",
		"kafka topic":        "events:\n  kafka:\n    brokers: [\"localhost:9092\"]\n",
		"both streams":       "events:\n  inmem:\n    url: \"mem://a\"\n  kafka:\n    brokers: [\"k:9092\"]\n    topic: \"t\"\n",
		"gpg key":            "output:\n  format: gpg\n",
		"unknown format":     "output:\n  format: zip\n",
		"unknown level":      "logging:\n  level: loud\n",
	}
	for name, conf := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read([]byte(conf))
			require.Error(t, err)
		})
	}
}

func TestLogger__level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(Logging{Format: "plain", Level: "warn"}, &buf)

	level.Debug(logger).Log("rails", "selected")
	require.Empty(t, buf.String())

	level.Warn(logger).Log("rails", "no eligible rail")
	require.Contains(t, buf.String(), "level=warn")

	buf.Reset()
	logger.Log("startup", "no level")
	require.Contains(t, buf.String(), "startup=")

	buf.Reset()
	logger = newLogger(Logging{Format: "json"}, &buf)
	level.Debug(logger).Log("rails", "selected")
	require.Contains(t, buf.String(), `"level":"debug"`)

	cfg, err := Read([]byte("logging:\n  level: error\n"))
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Logging.Level)
}

