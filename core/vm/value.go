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

import "fmt"

// Value is an element of the two-point-per-constant lattice
// `Known(word) | Top`. The zero Value is Top, so a freshly zeroed slice
// of Values (e.g. from make()) is already the all-unknown state.
type Value struct {
	word  Word
	known bool
}

// KnownValue constructs a Value representing exactly the constant w.
func KnownValue(w Word) Value {
	return Value{word: w, known: true}
}

// Top is the unknown value: "could be anything".
var Top = Value{}

// IsKnown reports whether v is a single known constant.
func (v Value) IsKnown() bool { return v.known }

// IsTop reports whether v is the unknown element of the lattice.
func (v Value) IsTop() bool { return !v.known }

// Const returns the constant word v represents. Only valid when
// v.IsKnown(); callers must check first.
func (v Value) Const() Word { return v.word }

// Equal reports structural equality: two Top values are equal, two Known
// values are equal iff their words are equal, and Known is never equal
// to Top.
func (v Value) Equal(o Value) bool {
	if v.known != o.known {
		return false
	}
	if !v.known {
		return true
	}
	return v.word.Eq(&o.word)
}

// Join implements the lattice join: `a ⊔ a = a`, `a ⊔ b = ⊤` when `a ≠
// b`, `⊤ ⊔ x = ⊤`.
func (v Value) Join(o Value) Value {
	if v.Equal(o) {
		return v
	}
	return Top
}

// ValidJumpTarget reports whether v is a constant eligible to be
// interpreted as a jump destination PC (i.e. within MaxCodeSize).
func (v Value) ValidJumpTarget() bool {
	return v.known && wordIsValidPC(&v.word)
}

// String renders "⊤" for the unknown element and the hex constant
// otherwise, used by disassembly listings and test failure messages.
func (v Value) String() string {
	if !v.known {
		return "⊤"
	}
	return fmt.Sprintf("0x%x", v.word.Bytes())
}
