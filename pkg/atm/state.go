/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package atm

import (
	"fmt"
	"strconv"
)

// NewState is a Waiting ATM, loaded with `cash` and with an empty register.
func NewState(cash uint64) State {
	return State{cash: cash}
}

// Restore rebuilds a State from its parts; `register` is copied.
func Restore(cash uint64, auth Auth, register ...Key) State {
	return State{cash: cash, auth: auth, register: cloneKeys(register)}
}

// AuthenticatingWith is the Auth for a swiped card carrying `fingerprint`.
func AuthenticatingWith(fingerprint uint64) Auth {
	return Auth{Phase: Authenticating, Expected: fingerprint}
}

func (s State) Cash() uint64 {
	return s.cash
}

func (s State) Auth() Auth {
	return s.auth
}

func (s State) Phase() Phase {
	return s.auth.Phase
}

// Register returns a copy of the keys pressed since the last Enter.
func (s State) Register() []Key {
	return cloneKeys(s.register)
}

func (s State) RegisterLen() int {
	return len(s.register)
}

func (s State) Equal(other State) bool {
	if s.cash != other.cash || s.auth != other.auth || len(s.register) != len(other.register) {
		return false
	}
	for i, k := range s.register {
		if other.register[i] != k {
			return false
		}
	}
	return true
}

// String never shows the register's contents, as they may be a PIN.
func (s State) String() string {
	return fmt.Sprintf("%s [cash: %d, keys: %d]", s.auth, s.cash, len(s.register))
}

func (a Auth) String() string {
	if a.Phase == Authenticating {
		return fmt.Sprintf("%s(%d)", a.Phase, a.Expected)
	}
	return a.Phase.String()
}

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	}
	return "phase(" + strconv.Itoa(int(p)) + ")"
}

func (a SwipeCard) String() string {
	return fmt.Sprintf("swipe(%d)", a.Fingerprint)
}

// String masks digits, as they may be part of a PIN.
func (a PressKey) String() string {
	if a.Key == Enter {
		return "press(enter)"
	}
	return "press(*)"
}

// cloneKeys always returns nil for an empty register, so that equal States are also
// deeply equal.
func cloneKeys(keys []Key) []Key {
	if len(keys) == 0 {
		return nil
	}
	return append(make([]Key, 0, len(keys)), keys...)
}
