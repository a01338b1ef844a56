// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package hexutil implements hex encoding with 0x prefixes for the byte
// sequences and words this module's disassembler reads and emits.
package hexutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
)

const uintBits = 32 << (uint64(^uint(0)) >> 63)

var (
	ErrEmptyString = errors.New("empty hex string")
	ErrSyntax      = errors.New("invalid hex string")
	ErrMissingPrefix = errors.New("hex string without 0x prefix")
	ErrOddLength     = errors.New("hex string of odd length")
	ErrEmptyNumber   = errors.New("hex string \"0x\"")
	ErrLeadingZero   = errors.New("hex number with leading zero digits")
	ErrUint64Range   = errors.New("hex number > 64 bits")
	ErrUintRange     = fmt.Errorf("hex number > %d bits", uintBits)
	ErrBig256Range   = errors.New("hex number > 256 bits")
)

// Decode decodes a hex string with a 0x prefix into raw bytes.
func Decode(input string) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyString
	}
	if !has0xPrefix(input) {
		return nil, ErrMissingPrefix
	}
	b, err := hex.DecodeString(input[2:])
	if err != nil {
		err = mapError(err)
	}
	return b, err
}

// Encode encodes b as a 0x-prefixed hex string.
func Encode(b []byte) string {
	enc := make([]byte, len(b)*2+2)
	copy(enc, "0x")
	hex.Encode(enc[2:], b)
	return string(enc)
}

// DecodeBig decodes a 0x-prefixed hex string into a big integer.
// Numbers larger than 256 bits are not accepted, matching the word
// width this module's abstract interpreter operates over.
func DecodeBig(input string) (*big.Int, error) {
	raw, err := checkNumber(input)
	if err != nil {
		return nil, err
	}
	if len(raw) > 64 {
		return nil, ErrBig256Range
	}
	words := make([]big.Word, len(raw)/bigWordNibbles+1)
	end := len(raw)
	for i := range words {
		start := end - bigWordNibbles
		if start < 0 {
			start = 0
		}
		for ri := start; ri < end; ri++ {
			nib := decodeNibble(raw[ri])
			if nib == badNibble {
				return nil, ErrSyntax
			}
			words[i] *= 16
			words[i] += big.Word(nib)
		}
		end = start
	}
	dec := new(big.Int).SetBits(words)
	return dec, nil
}

// EncodeBig encodes bigint as a 0x-prefixed hex string.
func EncodeBig(bigint *big.Int) string {
	nbits := bigint.BitLen()
	if nbits == 0 {
		return "0x0"
	}
	return fmt.Sprintf("%#x", bigint)
}

// DecodeUint64 decodes a 0x-prefixed hex string into a uint64.
func DecodeUint64(input string) (uint64, error) {
	raw, err := checkNumber(input)
	if err != nil {
		return 0, err
	}
	dec, err := parseUint64(raw)
	if err != nil {
		return 0, err
	}
	return dec, nil
}

// EncodeUint64 encodes i as a 0x-prefixed hex string.
func EncodeUint64(i uint64) string {
	enc := make([]byte, 2, 10)
	copy(enc, "0x")
	return string(appendUint64(enc, i))
}

// bigWordNibbles is the number of hex nibbles per big.Word on this
// platform, discovered the same roundabout way the teacher's own
// hexutil does: big.Word's bit width isn't exported, so probe it with
// a known value and look at how many words it split into.
var bigWordNibbles int

func init() {
	b, _ := new(big.Int).SetString("FFFFFFFFFF", 16)
	switch len(b.Bits()) {
	case 1:
		bigWordNibbles = 16
	case 2:
		bigWordNibbles = 8
	default:
		panic("unsupported big.Word size")
	}
}

const badNibble = ^uint64(0)

func decodeNibble(in byte) uint64 {
	switch {
	case in >= '0' && in <= '9':
		return uint64(in - '0')
	case in >= 'A' && in <= 'F':
		return uint64(in-'A') + 10
	case in >= 'a' && in <= 'f':
		return uint64(in-'a') + 10
	default:
		return badNibble
	}
}

func parseUint64(s []byte) (uint64, error) {
	var value uint64
	for _, b := range s {
		nib := decodeNibble(b)
		if nib == badNibble {
			return 0, ErrSyntax
		}
		if value > 0x0FFFFFFFFFFFFFFF {
			return 0, ErrUint64Range
		}
		value = value*16 + nib
	}
	return value, nil
}

func appendUint64(dst []byte, i uint64) []byte {
	if i == 0 {
		return append(dst, '0')
	}
	for start := len(dst); i > 0; i /= 16 {
		dst = append(dst, 0)
		copy(dst[start+1:], dst[start:])
		dst[start] = hexDigits[i%16]
	}
	return dst
}

const hexDigits = "0123456789abcdef"

func has0xPrefix(input string) bool {
	return len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X')
}

// checkNumber validates the 0x prefix and the no-leading-zero rule
// shared by DecodeBig/DecodeUint64, returning the nibble bytes after
// the prefix.
func checkNumber(input string) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyString
	}
	if !has0xPrefix(input) {
		return nil, ErrMissingPrefix
	}
	input = input[2:]
	if len(input) == 0 {
		return nil, ErrEmptyNumber
	}
	if len(input) > 1 && input[0] == '0' {
		return nil, ErrLeadingZero
	}
	return []byte(input), nil
}

func mapError(err error) error {
	if err, ok := err.(hex.InvalidByteError); ok {
		return err
	}
	if errors.Is(err, hex.ErrLength) {
		return hex.ErrLength
	}
	return err
}
