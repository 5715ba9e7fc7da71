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
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/massenz/atm-statemachine/pkg/api"
	"github.com/massenz/atm-statemachine/pkg/storage"
)

func NewEventsListener(options *ListenerOptions) *EventsListener {
	return &EventsListener{
		logger:         zlog.With().Str("logger", "Listener").Logger(),
		events:         options.EventsChannel,
		notifications:  options.NotificationsChannel,
		notifyOutcomes: options.NotifyOutcomes,
		store:          options.SessionsStore,
	}
}

func (listener *EventsListener) PostNotificationAndReportOutcome(response *api.ActionResponse) {
	if response.Outcome.Code != api.Ok {
		listener.logger.Error().Msgf("event [%s]: %s", response.EventId, response.Outcome.Details)
	}
	if listener.notifications != nil && (response.Outcome.Code != api.Ok || listener.notifyOutcomes) {
		listener.logger.Debug().Msgf("posting notification: %v", response.EventId)
		listener.notifications <- *response
	}
	listener.logger.Debug().Msgf("Reporting outcome: %v", response.EventId)
	listener.reportOutcome(response)
}

// ListenForMessages processes requests until the events channel is closed.
func (listener *EventsListener) ListenForMessages() {
	listener.logger.Info().Msg("Events message listener started")
	for request := range listener.events {
		request := request
		api.UpdateRequest(&request)
		listener.logger.Debug().Msgf("Received request %s for [%s]", request.EventId, request.Terminal)
		if request.Terminal == "" {
			listener.PostNotificationAndReportOutcome(makeResponse(api.NewErrorOutcome(&request,
				api.MissingDestination, "no terminal ID specified")))
			continue
		}
		if request.Action == nil {
			listener.PostNotificationAndReportOutcome(makeResponse(api.NewErrorOutcome(&request,
				api.MissingAction, "no action specified")))
			continue
		}
		state, err := listener.store.TxProcessAction(request.Terminal, request.Action)
		if err != nil {
			code := api.InternalError
			if storage.IsNotFoundErr(err) {
				code = api.TerminalNotFound
			}
			listener.PostNotificationAndReportOutcome(makeResponse(api.NewErrorOutcome(&request,
				code, fmt.Sprintf("could not update session [%s]: %v", request.Terminal, err))))
			continue
		}
		listener.logger.Debug().Msgf("Action %s moved ATM [%s] to %s",
			request.Action, request.Terminal, state)
		listener.PostNotificationAndReportOutcome(makeResponse(api.NewOutcome(&request, state)))
	}
	listener.logger.Info().Msg("Events channel closed, listener exiting")
}

func (listener *EventsListener) reportOutcome(response *api.ActionResponse) {
	if err := listener.store.AddOutcome(response.EventId, response.Outcome); err != nil {
		listener.logger.Error().Err(err).Msg("could not save event outcome")
	}
}

func makeResponse(outcome *api.Outcome) *api.ActionResponse {
	return &api.ActionResponse{
		EventId: outcome.EventId,
		Outcome: outcome,
	}
}
