/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DefaultCash is loaded in terminals which do not specify any.
	DefaultCash = 100

	// DefaultEnvFile is read, if present, before parsing the environment.
	DefaultEnvFile = ".env"
)

var ErrParsingConfig = errors.New("cannot parse configuration")

// Config carries the defaults for the `atm` CLI; command-line flags override them.
type Config struct {
	Cash          uint64 `env:"ATM_CASH" envDefault:"100"`
	Debug         bool   `env:"ATM_DEBUG"`
	Trace         bool   `env:"ATM_TRACE"`
	Notifications bool   `env:"ATM_NOTIFICATIONS"`
}

// Load parses the ATM_* environment variables, after loading any that are defined in
// `envFiles` (or DefaultEnvFile if none is given); missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		// Variables already set in the environment take precedence.
		_ = godotenv.Load(f)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return &cfg, nil
}
