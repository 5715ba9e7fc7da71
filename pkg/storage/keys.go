/*
 * Copyright (c) 2022 AlertAvert.com.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Author: Marco Massenzio (marco@alertavert.com)
 */

package storage

import (
	"strings"
)

const (
	KeyPrefixComponentsSeparator = ":"
	KeyPrefixIDSeparator         = "#"
)

// NewKeyForSession atm#<terminal:id>
func NewKeyForSession(id string) string {
	return strings.Join([]string{"atm", id}, KeyPrefixIDSeparator)
}

// NewKeyForOutcome events:outcome#<event:id>
func NewKeyForOutcome(id string) string {
	prefix := strings.Join([]string{"events", "outcome"}, KeyPrefixComponentsSeparator)
	return strings.Join([]string{prefix, id}, KeyPrefixIDSeparator)
}
