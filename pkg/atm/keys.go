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
	"errors"
	"fmt"
	"unicode"
)

var InvalidKeyError = errors.New("no such key on the keypad")

// Digit is the numeric value of the key; `ok` is false for Enter (and any invalid Key).
func (k Key) Digit() (digit uint64, ok bool) {
	switch k {
	case One:
		return 1, true
	case Two:
		return 2, true
	case Three:
		return 3, true
	case Four:
		return 4, true
	}
	return 0, false
}

func (k Key) String() string {
	if d, ok := k.Digit(); ok {
		return string(rune('0' + d))
	}
	if k == Enter {
		return "E"
	}
	return fmt.Sprintf("key(%d)", int8(k))
}

// ParseKey maps `1` to `4` to the digit keys; `E`, `e` and a newline are the Enter key.
func ParseKey(r rune) (Key, error) {
	switch r {
	case '1':
		return One, nil
	case '2':
		return Two, nil
	case '3':
		return Three, nil
	case '4':
		return Four, nil
	case 'E', 'e', '\n':
		return Enter, nil
	}
	return 0, fmt.Errorf("%w: %q", InvalidKeyError, r)
}

// ParseKeys parses a sequence of keys such as "1234E"; whitespace other than newlines
// is ignored.
func ParseKeys(s string) ([]Key, error) {
	var keys []Key
	for _, r := range s {
		if r != '\n' && unicode.IsSpace(r) {
			continue
		}
		k, err := ParseKey(r)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// PressKeys is the sequence of actions pressing each of `keys` in turn.
func PressKeys(keys ...Key) []Action {
	actions := make([]Action, 0, len(keys))
	for _, k := range keys {
		actions = append(actions, PressKey{Key: k})
	}
	return actions
}
