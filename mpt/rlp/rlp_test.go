// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package rlp

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestEncoding_EncodeStrings(t *testing.T) {
	testWithRlpStrings(t, func(t *testing.T, rlp []byte, item String) {
		testEncoder(t, rlp, item)
	})
}

func TestEncoding_EncodeList(t *testing.T) {
	testWithRlpLists(t, func(t *testing.T, rlp []byte, item List) {
		testEncoder(t, rlp, item)
	})
}

func TestEncoding_Uint64(t *testing.T) {
	testWithRlpUint64(t, func(t *testing.T, rlp []byte, item Uint64) {
		testEncoder(t, rlp, item)
	})
}

func TestDecode_Strings(t *testing.T) {
	testWithRlpStrings(t, func(t *testing.T, rlp []byte, item String) {
		testDecoder(t, rlp, item)
	})
}

func TestDecode_List(t *testing.T) {
	testWithRlpLists(t, func(t *testing.T, rlp []byte, item List) {
		testDecoder(t, rlp, item)
	})
}

func TestEncoding_EncodeEncoded(t *testing.T) {
	tests := [][]byte{
		{},
		{1},
		{1, 2},
		{1, 2, 3},
	}

	for _, test := range tests {
		if got, want := Encode(Encoded{test}), test; !bytes.Equal(got, want) {
			t.Errorf("invalid encoding, wanted %v, got %v", want, got)
		}
		if got, want := (Encoded{test}).getEncodedLength(), len(test); got != want {
			t.Errorf("invalid result for encoded length, wanted %d, got %d", want, got)
		}
	}
}

func TestDecode_RejectsMalformedInput(t *testing.T) {
	tests := map[string][]byte{
		"empty input":                     {},
		"truncated short string":          {0x83, 1, 2},
		"truncated long string":           {0xb8, 60, 1, 2, 3},
		"truncated short list":            {0xc3, 0x01, 0x02},
		"truncated long list":             {0xf8, 60, 0x01},
		"missing length bytes":            {0xb8},
		"trailing content":                {0x01, 0x02},
		"non-canonical single byte":       {0x81, 0x05},
		"non-canonical long string":       {0xb8, 0x05, 1, 2, 3, 4, 5},
		"non-canonical long list":         {0xf8, 0x03, 0x01, 0x02, 0x03},
		"length with leading zero":        append([]byte{0xb9, 0x00, 0x38}, make([]byte, 56)...),
		"malformed nested list entry":     {0xc2, 0x81, 0x05},
		"overflowing string length field": {0xbf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xf7},
		"overflowing list length field":   {0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xf7},
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if item, err := Decode(input); err == nil {
				t.Errorf("decoding of %x should have failed, got %v", input, item)
			}
		})
	}
}

func TestDecode_RoundTripsNestedStructures(t *testing.T) {
	item := List{Items: []Item{
		String{Str: []byte("key")},
		List{Items: []Item{
			String{Str: []byte("value")},
			List{},
		}},
		String{Str: bytes.Repeat([]byte{7}, 100)},
	}}

	restored, err := Decode(Encode(item))
	if err != nil {
		t.Fatalf("failed to decode encoded item: %v", err)
	}
	if got, want := Encode(restored), Encode(item); !bytes.Equal(got, want) {
		t.Errorf("decoding is not the inverse of encoding, got %x, wanted %x", got, want)
	}
}

func testEncoder[I Item](t *testing.T, expected []byte, item I) {
	t.Helper()
	if got, want := Encode(item), expected; !bytes.Equal(got, want) {
		t.Fatalf("invalid encoding, wanted %x, got %x", want, got)
	}
	if got, want := item.getEncodedLength(), len(expected); got != want {
		t.Fatalf("invalid encoded length, wanted %d, got %d", want, got)
	}
}

func testDecoder[I Item](t *testing.T, input []byte, expected I) {
	t.Helper()
	item, err := Decode(input)
	if err != nil {
		t.Fatalf("failed to decode %x: %v", input, err)
	}
	if !reflect.DeepEqual(normalize(item), normalize(expected)) {
		t.Fatalf("invalid decoding of %x, wanted %v, got %v", input, expected, item)
	}
}

// normalize re-encodes an item to compare items structurally; decoded
// strings reference sub-slices of the input and are not comparable to the
// original slices directly.
func normalize(item Item) string {
	return fmt.Sprintf("%x", Encode(item))
}

func testWithRlpStrings(t *testing.T, test func(t *testing.T, rlp []byte, item String)) {
	tests := []struct {
		name string
		rlp  []byte
		item String
	}{
		{"empty string", []byte{0x80}, String{Str: []byte{}}},
		{"single small byte", []byte{0x05}, String{Str: []byte{5}}},
		{"single large byte", []byte{0x81, 0x80}, String{Str: []byte{0x80}}},
		{"dog", []byte{0x83, 'd', 'o', 'g'}, String{Str: []byte("dog")}},
		{"55 bytes", append([]byte{0xb7}, bytes.Repeat([]byte{1}, 55)...), String{Str: bytes.Repeat([]byte{1}, 55)}},
		{"56 bytes", append([]byte{0xb8, 56}, bytes.Repeat([]byte{1}, 56)...), String{Str: bytes.Repeat([]byte{1}, 56)}},
		{"1024 bytes", append([]byte{0xb9, 0x04, 0x00}, make([]byte, 1024)...), String{Str: make([]byte, 1024)}},
	}
	for _, cur := range tests {
		t.Run(cur.name, func(t *testing.T) {
			test(t, cur.rlp, cur.item)
		})
	}
}

func testWithRlpLists(t *testing.T, test func(t *testing.T, rlp []byte, item List)) {
	longList := List{}
	longListRlp := []byte{0xf8, 60}
	for i := 0; i < 20; i++ {
		longList.Items = append(longList.Items, String{Str: []byte{'a', 'b'}})
		longListRlp = append(longListRlp, 0x82, 'a', 'b')
	}

	tests := []struct {
		name string
		rlp  []byte
		item List
	}{
		{"empty list", []byte{0xc0}, List{}},
		{"single element", []byte{0xc4, 0x83, 'd', 'o', 'g'}, List{Items: []Item{String{Str: []byte("dog")}}}},
		{"two elements", []byte{0xc2, 0x01, 0x02}, List{Items: []Item{String{Str: []byte{1}}, String{Str: []byte{2}}}}},
		{"nested lists", []byte{0xc2, 0xc0, 0xc0}, List{Items: []Item{List{}, List{}}}},
		{"long list", longListRlp, longList},
	}
	for _, cur := range tests {
		t.Run(cur.name, func(t *testing.T) {
			test(t, cur.rlp, cur.item)
		})
	}
}

func testWithRlpUint64(t *testing.T, test func(t *testing.T, rlp []byte, item Uint64)) {
	tests := []struct {
		name string
		rlp  []byte
		item Uint64
	}{
		{"zero", []byte{0x80}, Uint64{Value: 0}},
		{"small value", []byte{0x2a}, Uint64{Value: 42}},
		{"one byte", []byte{0x81, 0x80}, Uint64{Value: 128}},
		{"two bytes", []byte{0x82, 0x04, 0x00}, Uint64{Value: 1024}},
		{"full width", append([]byte{0x88}, bytes.Repeat([]byte{0xff}, 8)...), Uint64{Value: ^uint64(0)}},
	}
	for _, cur := range tests {
		t.Run(strings.ReplaceAll(cur.name, " ", "_"), func(t *testing.T) {
			test(t, cur.rlp, cur.item)
		})
	}
}
