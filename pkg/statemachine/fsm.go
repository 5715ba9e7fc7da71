/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package statemachine

// Run folds the transitions, in order, over `start` and returns the final state.
func Run[S any, T any](machine StateMachine[S, T], start S, transitions ...T) S {
	state := start
	for _, t := range transitions {
		state = machine.NextState(state, t)
	}
	return state
}

func NewDriver[S any, T any](machine StateMachine[S, T], start S) *Driver[S, T] {
	return &Driver[S, T]{
		machine: machine,
		start:   start,
		state:   start,
	}
}

// Send replaces the current state with the one computed by the machine for `transition`,
// and returns it.
func (d *Driver[S, T]) Send(transition T) S {
	d.mux.Lock()
	defer d.mux.Unlock()

	d.state = d.machine.NextState(d.state, transition)
	d.transitions++
	return d.state
}

func (d *Driver[S, T]) State() S {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.state
}

// Transitions is the number of transitions applied since the Driver was created (or last Reset).
func (d *Driver[S, T]) Transitions() int {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.transitions
}

func (d *Driver[S, T]) Reset() {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.state = d.start
	d.transitions = 0
}
