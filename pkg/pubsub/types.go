/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package pubsub

import (
	"github.com/rs/zerolog"

	"github.com/massenz/atm-statemachine/pkg/api"
	"github.com/massenz/atm-statemachine/pkg/storage"
)

// ListenerOptions configures an EventsListener.
type ListenerOptions struct {
	// EventsChannel is where the ActionRequests come from; the listener exits when it is closed.
	EventsChannel <-chan api.ActionRequest

	// NotificationsChannel, if not nil, receives a response for every request which could not
	// be processed, and for every processed one too, if NotifyOutcomes is set.
	NotificationsChannel chan<- api.ActionResponse
	NotifyOutcomes       bool

	SessionsStore storage.StoreManager
}

// EventsListener is the single consumer of ActionRequests for all the ATM terminals: as
// requests are processed one at a time, so are the transitions of every ATM session.
type EventsListener struct {
	logger         zerolog.Logger
	events         <-chan api.ActionRequest
	notifications  chan<- api.ActionResponse
	notifyOutcomes bool
	store          storage.StoreManager
}
