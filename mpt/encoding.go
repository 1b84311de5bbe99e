// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package mpt

import "fmt"

// Path encoding derived from Ethereum.
// see https://github.com/ethereum/go-ethereum/blob/v1.12.0/trie/encoding.go#L37
//
// The partial path of a leaf or extension node is packed two nibbles per
// byte, preceded by a header nibble encoding two flags: the lowest bit marks
// an odd number of path nibbles (the first path nibble is then stored in the
// lower half of the header byte), the second-lowest bit marks a node
// targeting a value (a leaf).

// encodePartialPath packs the given nibbles into their hex-prefix encoding.
func encodePartialPath(path []Nibble, targetsValue bool) []byte {
	flag := byte(0)
	if targetsValue {
		flag = 2
	}
	res := make([]byte, 0, len(path)/2+1)
	if len(path)%2 == 1 {
		res = append(res, (flag|1)<<4|byte(path[0]))
		path = path[1:]
	} else {
		res = append(res, flag<<4)
	}
	for i := 0; i < len(path); i += 2 {
		res = append(res, byte(path[i])<<4|byte(path[i+1]))
	}
	return res
}

// decodePartialPath unpacks a hex-prefix encoded path, reporting whether the
// encoded node targets a value.
func decodePartialPath(encoded []byte) (path []Nibble, targetsValue bool, err error) {
	if len(encoded) == 0 {
		return nil, false, fmt.Errorf("empty partial path")
	}
	header := encoded[0]
	if header>>4 > 3 {
		return nil, false, fmt.Errorf("invalid partial path header: 0x%x", header)
	}
	targetsValue = header&0x20 != 0
	odd := header&0x10 != 0
	path = make([]Nibble, 0, len(encoded)*2)
	if odd {
		path = append(path, Nibble(header&0xF))
	} else if header&0xF != 0 {
		return nil, false, fmt.Errorf("non-canonical partial path header: 0x%x", header)
	}
	for _, b := range encoded[1:] {
		path = append(path, Nibble(b>>4), Nibble(b&0xF))
	}
	return path, targetsValue, nil
}
