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
	"time"

	"github.com/massenz/atm-statemachine/pkg/atm"
)

// Release is set at build time.
var Release = "dev"

// ActionRequest carries an Action for the ATM session identified by `Terminal`.
type ActionRequest struct {
	EventId   string
	Terminal  string
	Timestamp time.Time
	Action    atm.Action
}

type OutcomeCode int8

const (
	Ok OutcomeCode = iota
	MissingDestination
	MissingAction
	TerminalNotFound
	InternalError
)

// Outcome is the result of processing an ActionRequest.
//
// A rejected PIN or withdrawal is still Ok: only the resulting Phase and Cash are reported,
// never the reason, nor the keys in the register.
type Outcome struct {
	EventId  string
	Terminal string
	Code     OutcomeCode
	Details  string
	Phase    atm.Phase
	Cash     uint64
}

// ActionResponse is posted on the notifications channel for every processed request.
type ActionResponse struct {
	EventId string
	Outcome *Outcome
}
