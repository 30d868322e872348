// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/moov-io/railgate"
	"github.com/moov-io/railgate/pkg/config"
	"github.com/moov-io/railgate/pkg/util"
)

var (
	flagConfigFile = flag.String("config", "", "Filepath for config file to load")

	flagSelect   = flag.String("select", "", "Filepath of selection criteria (JSON) to choose a rail for, '-' reads stdin")
	flagEncode   = flag.String("encode", "", "Filepath of batches (JSON) to encode as an ACH file, '-' reads stdin")
	flagDecode   = flag.String("decode", "", "Filepath of an ACH file to decode and summarize, '-' reads stdin")
	flagValidate = flag.String("validate", "", "Filepath of an ACH file to check for format problems, '-' reads stdin")
)

func main() {
	flag.Parse()

	cfg := readConfig(util.Or(os.Getenv("CONFIG_FILE"), *flagConfigFile))
	if cfg == nil {
		os.Exit(1)
	}
	cfg.Logger.Log("startup", fmt.Sprintf("Starting railgate version %s", railgate.Version))

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	app, err := newApp(ctx, cfg, os.Stdout)
	if err != nil {
		cfg.Logger.Log("startup", err)
		os.Exit(1)
	}

	err = run(app)

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if cerr := app.Close(shutdownCtx); cerr != nil {
		cfg.Logger.Log("shutdown", cerr)
	}

	if err != nil {
		cfg.Logger.Log("exit", err)
		os.Exit(1)
	}
}

func readConfig(path string) *config.Config {
	cfg, err := config.FromFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return nil
	}
	return cfg
}

func run(app *app) error {
	switch {
	case *flagSelect != "":
		return withInput(*flagSelect, app.selectRail)
	case *flagEncode != "":
		return withInput(*flagEncode, app.encodeFile)
	case *flagDecode != "":
		return withInput(*flagDecode, app.decodeFile)
	case *flagValidate != "":
		return withInput(*flagValidate, app.validateFile)
	}
	flag.Usage()
	return nil
}

func withInput(path string, fn func([]byte) error) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		fd, err := os.Open(path)
		if err != nil {
			return err
		}
		defer fd.Close()
		r = fd
	}
	bs, err := ioutil.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %s: %v", path, err)
	}
	return fn(bs)
}
