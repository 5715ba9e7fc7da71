/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/massenz/atm-statemachine/internal/config"
	"github.com/massenz/atm-statemachine/pkg/api"
	"github.com/massenz/atm-statemachine/pkg/atm"
	"github.com/massenz/atm-statemachine/pkg/pubsub"
	"github.com/massenz/atm-statemachine/pkg/scenario"
	"github.com/massenz/atm-statemachine/pkg/storage"
)

const (
	CmdRun         = "run"
	CmdFingerprint = "fingerprint"
	CmdVersion     = "version"
)

var logger = zlog.With().Str("logger", "atm").Logger()

func main() {
	// Global zerolog configuration.
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	logger = zlog.With().Str("logger", "atm").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("fatal configuration error")
	}

	var cash = flag.Uint64("cash", cfg.Cash,
		"Cash loaded in terminals which do not specify any (ATM_CASH)")
	var debug = flag.Bool("debug", cfg.Debug,
		"Verbose logs (ATM_DEBUG)")
	var notifications = flag.Bool("notifications", cfg.Notifications,
		"If set, prints the outcome of every action (ATM_NOTIFICATIONS)")
	var trace = flag.Bool("trace", cfg.Trace,
		"Extremely verbose logs for every action; will override the -debug option (ATM_TRACE)")
	flag.Usage = usage
	flag.Parse()
	setLogLevel(*debug, *trace)

	cmd := strings.ToLower(flag.Arg(0))
	switch cmd {
	case CmdRun:
		if flag.NArg() != 2 {
			usage()
			os.Exit(1)
		}
		err = run(flag.Arg(1), *cash, *notifications)
	case CmdFingerprint:
		err = fingerprint(flag.Arg(1))
	case CmdVersion:
		fmt.Println("ATM State Machine Rel.", api.Release)
	default:
		fmt.Printf("unknown or missing command `%s`\n", cmd)
		usage()
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal().Err(err).Msgf("%s failed", cmd)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: atm [flags] run <scenario.yaml | %s>\n"+
			"       atm fingerprint <pin>\n"+
			"       atm version\n\nFlags:\n", scenario.StdinFlag)
	flag.PrintDefaults()
}

// setLogLevel sets the global logging level depending on -debug / -trace.
// If both are set, then -trace takes priority.
func setLogLevel(debug bool, trace bool) {
	level := zerolog.InfoLevel
	if debug && !trace {
		logger.Info().Msg("verbose logging enabled")
		level = zerolog.DebugLevel
	} else if trace {
		logger.Info().Msg("trace logging enabled")
		level = zerolog.TraceLevel
	}
	zerolog.SetGlobalLevel(level)
}

func fingerprint(pin string) error {
	keys, err := atm.ParseKeys(pin)
	if err != nil {
		return err
	}
	fmt.Println(atm.Fingerprint(keys))
	return nil
}

// run creates one session per terminal in the scenario, and sends all their actions to the
// listener; once they have all been processed, prints the final state of every terminal.
func run(path string, defaultCash uint64, notify bool) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	store := storage.NewInMemoryStore()
	var requests [][]*api.ActionRequest
	for _, t := range s.Terminals {
		if err = store.CreateSession(t.Id, t.CashOr(defaultCash)); err != nil {
			return err
		}
		r, err := t.Requests()
		if err != nil {
			return err
		}
		requests = append(requests, r)
	}

	eventsCh := make(chan api.ActionRequest)
	notificationsCh := make(chan api.ActionResponse)
	listener := pubsub.NewEventsListener(&pubsub.ListenerOptions{
		EventsChannel:        eventsCh,
		NotificationsChannel: notificationsCh,
		NotifyOutcomes:       notify,
		SessionsStore:        store,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for n := range notificationsCh {
			printOutcome(n.Outcome)
		}
	}()
	go func() {
		defer close(notificationsCh)
		listener.ListenForMessages()
	}()

	logger.Info().Int("terminals", len(s.Terminals)).Msg("processing scenario")
	// Customers use the terminals at the same time: actions are interleaved across them.
	for i := 0; ; i++ {
		sent := false
		for _, r := range requests {
			if i < len(r) {
				eventsCh <- *r[i]
				sent = true
			}
		}
		if !sent {
			break
		}
	}
	close(eventsCh)
	wg.Wait()

	for _, t := range s.Terminals {
		state, err := store.GetSession(t.Id)
		if err != nil {
			return err
		}
		fmt.Printf("%-16s %-16s cash: %d\n", t.Id, titleCase(state.Phase().String()), state.Cash())
	}
	return nil
}

func printOutcome(outcome *api.Outcome) {
	if outcome.Code != api.Ok {
		fmt.Printf("[%s] %s: %s\n", outcome.Terminal, outcome.Code, outcome.Details)
		return
	}
	fmt.Printf("[%s] %s, cash: %d\n", outcome.Terminal, titleCase(outcome.Phase.String()), outcome.Cash)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
