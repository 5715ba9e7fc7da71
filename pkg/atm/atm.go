/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

// Package atm is a state machine for an automated teller machine: a card is swiped, the PIN
// keyed in and checked against the card's fingerprint, then an amount of cash is withdrawn.
//
// Withdrawals are bounded only by the cash inside the machine; there is no account balance.
// Rejected PINs and withdrawals are not reported as errors: the ATM simply goes back to
// Waiting, with its cash unchanged.
package atm

import (
	"math"

	"github.com/massenz/atm-statemachine/pkg/statemachine"
)

var _ statemachine.StateMachine[State, Action] = Machine{}

// NextState computes the state of the ATM after `action`; it never fails.
func (Machine) NextState(atm State, action Action) State {
	switch atm.auth.Phase {
	case Authenticating:
		return authenticating(atm, action)
	case Authenticated:
		return authenticated(atm, action)
	}
	// Keys pressed while Waiting are ignored.
	if swipe, ok := action.(SwipeCard); ok {
		return State{cash: atm.cash, auth: AuthenticatingWith(swipe.Fingerprint)}
	}
	return atm
}

func authenticating(atm State, action Action) State {
	switch a := action.(type) {
	case PressKey:
		if a.Key != Enter {
			return atm.with(a.Key)
		}
		if Fingerprint(atm.register) == atm.auth.Expected {
			return State{cash: atm.cash, auth: Auth{Phase: Authenticated}}
		}
		return State{cash: atm.cash}
	case SwipeCard:
		if a.Fingerprint == atm.auth.Expected {
			return atm
		}
		// A different card: drop whatever the previous customer keyed in.
		return State{cash: atm.cash, auth: AuthenticatingWith(a.Fingerprint)}
	}
	return atm
}

func authenticated(atm State, action Action) State {
	switch a := action.(type) {
	case PressKey:
		if a.Key != Enter {
			return atm.with(a.Key)
		}
		cash := atm.cash
		if len(atm.register) <= digits(cash) {
			if amount, ok := parseAmount(atm.register); ok && amount <= cash {
				cash -= amount
			}
		}
		return State{cash: cash}
	case SwipeCard:
		// Any amount partially keyed in is discarded.
		return State{cash: atm.cash, auth: atm.auth}
	}
	return atm
}

// with is a copy of the State with `key` appended to the register.
func (s State) with(key Key) State {
	register := make([]Key, len(s.register), len(s.register)+1)
	copy(register, s.register)
	return State{cash: s.cash, auth: s.auth, register: append(register, key)}
}

// digits is the number of decimal digits of n; zero has one digit.
func digits(n uint64) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// parseAmount reads the keys as a base-10 number, most significant digit first.
func parseAmount(keys []Key) (uint64, bool) {
	var amount uint64
	for _, k := range keys {
		d, ok := k.Digit()
		if !ok || amount > (math.MaxUint64-d)/10 {
			return 0, false
		}
		amount = amount*10 + d
	}
	return amount, true
}
