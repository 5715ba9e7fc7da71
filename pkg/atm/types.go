/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package atm

import "fmt"

// Key is one of the keys on the ATM keypad.
type Key int8

const (
	One Key = iota + 1
	Two
	Three
	Four
	Enter
)

// Action is something a customer can do to the ATM: either a SwipeCard or a PressKey.
type Action interface {
	isAction()
	fmt.Stringer
}

// SwipeCard presents a card to the ATM, carrying the Fingerprint of the PIN that should be
// keyed in next.
type SwipeCard struct {
	Fingerprint uint64
}

// PressKey presses a single key on the keypad.
type PressKey struct {
	Key Key
}

func (SwipeCard) isAction() {}
func (PressKey) isAction()  {}

// Phase is where the ATM is in its authentication lifecycle.
type Phase int8

const (
	// Waiting for a card to be swiped; this is the zero value.
	Waiting Phase = iota
	// Authenticating means a card was swiped and the PIN is being keyed in.
	Authenticating
	// Authenticated means the PIN matched and the amount to withdraw is being keyed in.
	Authenticated
)

// Auth is the authentication status of the ATM; Expected is only meaningful while
// Authenticating, and is the Fingerprint carried by the swiped card.
type Auth struct {
	Phase    Phase
	Expected uint64
}

// State is the full state of the ATM.
//
// State values are immutable: the register is only reachable through copies, and every
// transition builds a new State.
type State struct {
	cash     uint64
	auth     Auth
	register []Key
}

// Machine is the ATM state machine; it carries no state of its own.
type Machine struct{}
