/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package api

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/massenz/atm-statemachine/pkg/atm"
)

func NewActionRequest(terminal string, action atm.Action) *ActionRequest {
	return &ActionRequest{
		EventId:   uuid.New().String(),
		Terminal:  terminal,
		Timestamp: time.Now(),
		Action:    action,
	}
}

// UpdateRequest adds the ID and timestamp to the request, if not already set.
func UpdateRequest(request *ActionRequest) {
	if request.EventId == "" {
		request.EventId = uuid.NewString()
	}
	if request.Timestamp.IsZero() {
		request.Timestamp = time.Now()
	}
}

// NewOutcome reports the state of the ATM after an action was processed.
func NewOutcome(request *ActionRequest, state atm.State) *Outcome {
	return &Outcome{
		EventId:  request.EventId,
		Terminal: request.Terminal,
		Code:     Ok,
		Phase:    state.Phase(),
		Cash:     state.Cash(),
	}
}

// NewErrorOutcome reports an ActionRequest which could not be processed.
func NewErrorOutcome(request *ActionRequest, code OutcomeCode, details string) *Outcome {
	return &Outcome{
		EventId:  request.EventId,
		Terminal: request.Terminal,
		Code:     code,
		Details:  details,
	}
}

func (c OutcomeCode) String() string {
	switch c {
	case Ok:
		return "OK"
	case MissingDestination:
		return "MISSING_DESTINATION"
	case MissingAction:
		return "MISSING_ACTION"
	case TerminalNotFound:
		return "TERMINAL_NOT_FOUND"
	case InternalError:
		return "INTERNAL_ERROR"
	}
	return "UNKNOWN(" + strconv.Itoa(int(c)) + ")"
}
