/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

// Package scenario reads YAML files describing a set of ATM terminals, and what customers do
// to each of them:
//
//	terminals:
//	  - id: lobby
//	    cash: 10
//	    steps:
//	      - swipe: "1234"
//	      - keys: "1234E"
//	      - keys: "3E"
//	      - card: 42
//
// A `swipe` step presents a card carrying the fingerprint of the given PIN, `card` one carrying
// the given raw fingerprint, and `keys` presses each of the keys in turn.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/massenz/atm-statemachine/pkg/api"
	"github.com/massenz/atm-statemachine/pkg/atm"
)

// StdinFlag used as a path reads the scenario from stdin.
const StdinFlag = "--"

var (
	MissingTerminalIdError = errors.New("every terminal must have an ID")
	DuplicateTerminalError = errors.New("duplicate terminal ID")
	MalformedStepError     = errors.New("a step must have exactly one of swipe, card or keys")
)

type Step struct {
	Swipe *string `yaml:"swipe,omitempty"`
	Card  *uint64 `yaml:"card,omitempty"`
	Keys  *string `yaml:"keys,omitempty"`
}

type Terminal struct {
	Id    string  `yaml:"id"`
	Cash  *uint64 `yaml:"cash,omitempty"`
	Steps []Step  `yaml:"steps"`
}

type Scenario struct {
	Terminals []Terminal `yaml:"terminals"`
}

// Load reads the Scenario at `path`, or from stdin if `path` is StdinFlag.
func Load(path string) (*Scenario, error) {
	var f io.Reader
	if path == StdinFlag {
		f = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open %s: %w", path, err)
		}
		defer file.Close()
		f = file
	}
	return Read(f)
}

func Read(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err = yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("cannot parse scenario: %w", err)
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks terminal IDs are present and unique, and that every step can be turned
// into Actions.
func (s *Scenario) Validate() error {
	seen := make(map[string]bool)
	for i, t := range s.Terminals {
		if t.Id == "" {
			return fmt.Errorf("terminal #%d: %w", i, MissingTerminalIdError)
		}
		if seen[t.Id] {
			return fmt.Errorf("%w: %s", DuplicateTerminalError, t.Id)
		}
		seen[t.Id] = true
		if _, err := t.Actions(); err != nil {
			return err
		}
	}
	return nil
}

// CashOr is the terminal's cash, or `defaultCash` if none was specified.
func (t *Terminal) CashOr(defaultCash uint64) uint64 {
	if t.Cash == nil {
		return defaultCash
	}
	return *t.Cash
}

// Actions are all the terminal's steps, in order.
func (t *Terminal) Actions() ([]atm.Action, error) {
	var actions []atm.Action
	for i, step := range t.Steps {
		a, err := step.Actions()
		if err != nil {
			return nil, fmt.Errorf("terminal %s, step #%d: %w", t.Id, i, err)
		}
		actions = append(actions, a...)
	}
	return actions, nil
}

// Requests are the terminal's Actions, each wrapped in a new ActionRequest.
func (t *Terminal) Requests() ([]*api.ActionRequest, error) {
	actions, err := t.Actions()
	if err != nil {
		return nil, err
	}
	requests := make([]*api.ActionRequest, 0, len(actions))
	for _, a := range actions {
		requests = append(requests, api.NewActionRequest(t.Id, a))
	}
	return requests, nil
}

func (s Step) Actions() ([]atm.Action, error) {
	set := 0
	for _, present := range []bool{s.Swipe != nil, s.Card != nil, s.Keys != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, MalformedStepError
	}
	switch {
	case s.Card != nil:
		return []atm.Action{atm.SwipeCard{Fingerprint: *s.Card}}, nil
	case s.Swipe != nil:
		pin, err := atm.ParseKeys(*s.Swipe)
		if err != nil {
			return nil, err
		}
		return []atm.Action{atm.SwipeCard{Fingerprint: atm.Fingerprint(pin)}}, nil
	}
	keys, err := atm.ParseKeys(*s.Keys)
	if err != nil {
		return nil, err
	}
	return atm.PressKeys(keys...), nil
}
