/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package storage

import (
	"errors"
	"fmt"

	"github.com/massenz/atm-statemachine/pkg/api"
	"github.com/massenz/atm-statemachine/pkg/atm"
)

// StoreErr is returned by all StoreManager operations.
type StoreErr = error

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidData   = errors.New("invalid data")
)

func Error(sentinel error, msg string) func(string) StoreErr {
	return func(key string) StoreErr {
		return fmt.Errorf("%w: "+msg, sentinel, key)
	}
}

var (
	NotFoundError      = Error(ErrNotFound, "key %s")
	AlreadyExistsError = Error(ErrAlreadyExists, "key %s")
	InvalidDataError   = Error(ErrInvalidData, "%s")
)

func IsNotFoundErr(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExistsErr(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

type SessionStorageManager interface {
	// GetSession returns the state of the ATM whose terminal ID is `id`.
	GetSession(id string) (atm.State, StoreErr)

	// CreateSession starts a Waiting ATM session loaded with `cash`; it fails if the terminal
	// already has one.
	CreateSession(id string, cash uint64) StoreErr

	// PutSession creates or replaces the session for `id`.
	PutSession(id string, state atm.State) StoreErr

	// GetAllInPhase returns the IDs of the terminals currently in the given `phase`.
	GetAllInPhase(phase atm.Phase) []string

	// TxProcessAction atomically applies `action` to the session for `id` and stores the
	// resulting state, which is returned.
	TxProcessAction(id string, action atm.Action) (atm.State, StoreErr)
}

type OutcomeStorageManager interface {
	AddOutcome(eventId string, outcome *api.Outcome) StoreErr
	GetOutcome(eventId string) (*api.Outcome, StoreErr)
}

type StoreManager interface {
	SessionStorageManager
	OutcomeStorageManager
	Health() StoreErr
}
