/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package statemachine

import "sync"

// StateMachine is implemented by any machine which, given a current `S` state and a
// `T` transition, can compute the next state.
//
// NextState must be pure and total: it never fails, never panics, and has no effect other
// than the returned value.
type StateMachine[S any, T any] interface {
	NextState(current S, transition T) S
}

// Driver owns exactly one state value for a machine and applies transitions to it one at a
// time; concurrent callers are serialized.
type Driver[S any, T any] struct {
	mux         sync.Mutex
	machine     StateMachine[S, T]
	start       S
	state       S
	transitions int
}
