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

import "errors"

// ExceptionKind names a statically-detected fault that terminates a
// single control-flow path during the abstract trace. None of these are
// fatal to the trace engine itself (see Outcome.Exception).
type ExceptionKind int

const (
	StackUnderflow ExceptionKind = iota
	StackOverflow
	InvalidOpcode
	InvalidJumpDest
	CodeSizeExceeded
)

func (k ExceptionKind) String() string {
	switch k {
	case StackUnderflow:
		return "StackUnderflow"
	case StackOverflow:
		return "StackOverflow"
	case InvalidOpcode:
		return "InvalidOpcode"
	case InvalidJumpDest:
		return "InvalidJumpDest"
	case CodeSizeExceeded:
		return "CodeSizeExceeded"
	default:
		return "ExceptionKind(?)"
	}
}

// Sentinel errors returned by Stack operations and the transfer
// function; each corresponds 1:1 to an ExceptionKind via exceptionFor.
var (
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrStackOverflow    = errors.New("stack overflow")
	ErrInvalidOpcode    = errors.New("invalid opcode")
	ErrInvalidJumpDest  = errors.New("invalid jump destination")
	ErrCodeSizeExceeded = errors.New("push constant exceeds max code size")
)

// exceptionFor maps a sentinel error from the Stack/transfer layer to
// its ExceptionKind for inclusion in the diagnostics list. Panics if err
// is not one of the sentinels above — that would be an internal bug
// (an invariant breach), not a normal analysis outcome.
func exceptionFor(err error) ExceptionKind {
	switch err {
	case ErrStackUnderflow:
		return StackUnderflow
	case ErrStackOverflow:
		return StackOverflow
	case ErrInvalidOpcode:
		return InvalidOpcode
	case ErrInvalidJumpDest:
		return InvalidJumpDest
	case ErrCodeSizeExceeded:
		return CodeSizeExceeded
	default:
		panic("vm: exceptionFor called with an unrecognised error: " + err.Error())
	}
}

// Diagnostic records a statically detected fault at a specific PC.
type Diagnostic struct {
	PC   uint64
	Kind ExceptionKind
}
