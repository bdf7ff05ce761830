// Copyright 2024 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config reads the optional teller.yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/text/encoding"
	"gopkg.in/yaml.v2"

	"github.com/sboehler/teller/lib/bank"
	"github.com/sboehler/teller/lib/store"
)

// Defaults.
const (
	DefaultPath    = "teller.yaml"
	DefaultData    = "bank_users.csv"
	DefaultLog     = "transaction_log.txt"
	DefaultCharset = "utf-8"
)

// Config is the configuration.
type Config struct {
	Data              string `yaml:"data"`
	Log               string `yaml:"log"`
	Charset           string `yaml:"charset"`
	OverdraftLimit    string `yaml:"overdraft_limit"`
	CreditOverpayment string `yaml:"credit_overpayment"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Data:              DefaultData,
		Log:               DefaultLog,
		Charset:           DefaultCharset,
		OverdraftLimit:    "0",
		CreditOverpayment: bank.OverpaymentAllow.String(),
	}
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a configuration. Unknown keys are rejected and missing keys
// take their default value.
func Read(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	c.fill()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) fill() {
	d := Default()
	for _, f := range []struct{ v, def *string }{
		{&c.Data, &d.Data},
		{&c.Log, &d.Log},
		{&c.Charset, &d.Charset},
		{&c.OverdraftLimit, &d.OverdraftLimit},
		{&c.CreditOverpayment, &d.CreditOverpayment},
	} {
		if strings.TrimSpace(*f.v) == "" {
			*f.v = *f.def
		}
	}
}

// Validate checks all values.
func (c *Config) Validate() error {
	var errs error
	if _, err := c.Encoding(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := c.Overdraft(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := c.Overpayment(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

// Encoding returns the charset of the data file.
func (c *Config) Encoding() (encoding.Encoding, error) {
	return store.ParseCharset(c.Charset)
}

// Overdraft returns the overdraft limit of checking accounts.
func (c *Config) Overdraft() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(c.OverdraftLimit))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid overdraft limit %q", c.OverdraftLimit)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("overdraft limit %s must not be negative", d)
	}
	return d, nil
}

// Overpayment returns the payment policy of credit accounts.
func (c *Config) Overpayment() (bank.Overpayment, error) {
	return bank.ParseOverpayment(c.CreditOverpayment)
}

// Repository returns the repository described by the configuration.
func (c *Config) Repository(r bank.Recorder) (*store.Repository, error) {
	charset, err := c.Encoding()
	if err != nil {
		return nil, err
	}
	overdraft, err := c.Overdraft()
	if err != nil {
		return nil, err
	}
	overpayment, err := c.Overpayment()
	if err != nil {
		return nil, err
	}
	return &store.Repository{
		Path:        c.Data,
		Charset:     charset,
		Recorder:    r,
		Overdraft:   overdraft,
		Overpayment: overpayment,
	}, nil
}
