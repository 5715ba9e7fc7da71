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
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/massenz/atm-statemachine/pkg/api"
	"github.com/massenz/atm-statemachine/pkg/atm"
	"github.com/massenz/atm-statemachine/pkg/statemachine"
)

// InMemoryStore keeps ATM sessions and action outcomes in memory; all its methods are safe
// for concurrent use.
type InMemoryStore struct {
	logger   zerolog.Logger
	mux      sync.RWMutex
	machine  statemachine.StateMachine[atm.State, atm.Action]
	sessions map[string]atm.State
	outcomes map[string]api.Outcome
}

func NewInMemoryStore() StoreManager {
	return NewInMemoryStoreFor(atm.Machine{})
}

// NewInMemoryStoreFor uses `machine` to process actions in TxProcessAction.
func NewInMemoryStoreFor(machine statemachine.StateMachine[atm.State, atm.Action]) *InMemoryStore {
	return &InMemoryStore{
		logger:   zlog.With().Str("logger", "InMemoryStore").Logger(),
		machine:  machine,
		sessions: make(map[string]atm.State),
		outcomes: make(map[string]api.Outcome),
	}
}

func (csm *InMemoryStore) GetSession(id string) (atm.State, StoreErr) {
	key := NewKeyForSession(id)
	csm.mux.RLock()
	defer csm.mux.RUnlock()

	state, ok := csm.sessions[key]
	csm.logger.Trace().Msgf("key %s - Found: %t", key, ok)
	if !ok {
		return atm.State{}, NotFoundError(key)
	}
	return state, nil
}

func (csm *InMemoryStore) CreateSession(id string, cash uint64) StoreErr {
	if id == "" {
		return InvalidDataError("empty terminal ID")
	}
	key := NewKeyForSession(id)
	csm.mux.Lock()
	defer csm.mux.Unlock()

	if _, found := csm.sessions[key]; found {
		return AlreadyExistsError(key)
	}
	csm.logger.Debug().Msgf("Creating session [%s] with %d cash", key, cash)
	csm.sessions[key] = atm.NewState(cash)
	return nil
}

func (csm *InMemoryStore) PutSession(id string, state atm.State) StoreErr {
	if id == "" {
		return InvalidDataError("empty terminal ID")
	}
	key := NewKeyForSession(id)
	csm.mux.Lock()
	defer csm.mux.Unlock()

	csm.logger.Debug().Msgf("Storing session [%s]: %s", key, state)
	csm.sessions[key] = state
	return nil
}

func (csm *InMemoryStore) GetAllInPhase(phase atm.Phase) []string {
	csm.mux.RLock()
	defer csm.mux.RUnlock()

	prefix := NewKeyForSession("")
	var ids []string
	for key, state := range csm.sessions {
		if state.Phase() == phase {
			ids = append(ids, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(ids)
	csm.logger.Debug().Msgf("Returning %d items in phase %s", len(ids), phase)
	return ids
}

func (csm *InMemoryStore) TxProcessAction(id string, action atm.Action) (atm.State, StoreErr) {
	if action == nil {
		return atm.State{}, InvalidDataError("nil action")
	}
	key := NewKeyForSession(id)
	csm.mux.Lock()
	defer csm.mux.Unlock()

	state, ok := csm.sessions[key]
	if !ok {
		csm.logger.Debug().Msgf("no session for key %s", key)
		return atm.State{}, NotFoundError(key)
	}
	next := csm.machine.NextState(state, action)
	csm.sessions[key] = next
	csm.logger.Trace().Msgf("Tx [%s] %s: %s -> %s", key, action, state.Auth(), next.Auth())
	return next, nil
}

func (csm *InMemoryStore) AddOutcome(eventId string, outcome *api.Outcome) StoreErr {
	if outcome == nil {
		return InvalidDataError("nil outcome")
	}
	key := NewKeyForOutcome(eventId)
	csm.mux.Lock()
	defer csm.mux.Unlock()

	csm.outcomes[key] = *outcome
	return nil
}

func (csm *InMemoryStore) GetOutcome(eventId string) (*api.Outcome, StoreErr) {
	key := NewKeyForOutcome(eventId)
	csm.mux.RLock()
	defer csm.mux.RUnlock()

	outcome, ok := csm.outcomes[key]
	if !ok {
		return nil, NotFoundError(key)
	}
	return &outcome, nil
}

func (csm *InMemoryStore) Health() StoreErr {
	return nil
}
