// Copyright 2024 The EvmIL Authors
// This file is part of the EvmIL library.
//
// The EvmIL library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The EvmIL library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the EvmIL library. If not, see <http://www.gnu.org/licenses/>.

package vm

import "github.com/holiman/uint256"

// Word is a fixed-width 256-bit unsigned integer, the concrete payload
// type underlying every Known value in the abstract lattice.
type Word = uint256.Int

// MaxCodeSize is the maximum byte length of a valid contract. A constant
// word greater than this can never be a legal jump destination.
const MaxCodeSize = 24576

// wordFromBigEndian decodes 1..32 big-endian bytes into a Word. Inputs
// shorter than 32 bytes zero-extend from the left, matching
// uint256.Int.SetBytes.
func wordFromBigEndian(bs []byte) Word {
	var w Word
	w.SetBytes(bs)
	return w
}

// wordIsValidPC reports whether w is small enough to be interpreted as a
// program counter into a contract of at most MaxCodeSize bytes.
func wordIsValidPC(w *Word) bool {
	return w.LtUint64(MaxCodeSize + 1)
}

// wordToPC converts a Word known to satisfy wordIsValidPC into a PC. The
// caller must check wordIsValidPC first.
func wordToPC(w *Word) uint64 {
	return w.Uint64()
}
