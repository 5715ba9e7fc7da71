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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// FingerprintModulus bounds the integer fed into the hash.
const FingerprintModulus uint64 = 2004010501

// Fingerprint is a deterministic 64-bit digest of a sequence of keys, used to compare the PIN
// keyed in against the one carried by the card. It is NOT a cryptographic hash.
//
// Only the first key of the sequence is used; an empty sequence is always 0.
func Fingerprint(keys []Key) uint64 {
	if len(keys) == 0 {
		return 0
	}
	var num uint64
	for _, c := range keys[0].String() {
		if c < '0' || c > '9' {
			// Enter has no digits: it is fingerprinted as 0.
			continue
		}
		num = (10*num + uint64(c-'0')) % FingerprintModulus
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], num)
	return xxhash.Sum64(buf[:])
}
