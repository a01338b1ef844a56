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

// Outcome is the result of applying the transfer function to a single
// instruction in a single state. It is a closed sum type: every
// instruction produces exactly one of the four concrete types below.
// Encoded as an interface with an unexported marker method (rather than
// a single struct with unused fields per variant) so a type switch at
// the call site is exhaustive and self-documenting, mirroring how the
// original Rust implementation's `enum Outcome` reads.
type Outcome interface {
	outcome()
}

// Continue is the straight-line successor: advance to Next.
type Continue struct{ Next State }

// Split is produced only by JUMPI: Fall advances past the instruction,
// Branch goes to the popped address. Both have already popped the
// condition. BranchOK is false when the popped address could not be
// resolved to a valid JUMPDEST (non-constant, out of range, or not a
// JUMPDEST): the fall-through side is still live (JUMPI always falls
// through on condition-pop success), but the caller must not treat
// Branch as a reachable successor and should instead record an
// InvalidJumpDest (or CodeSizeExceeded) diagnostic at the JUMPI's PC.
type Split struct {
	Fall      State
	Branch    State
	BranchOK  bool
	BranchExc ExceptionKind // meaningful only when !BranchOK
}

// Return is a terminator with no successors (STOP, RETURN, REVERT,
// INVALID, SELFDESTRUCT).
type Return struct{}

// Exception is a terminator with no successors, caused by a statically
// detected fault.
type Exception struct{ Kind ExceptionKind }

func (Continue) outcome()  {}
func (Split) outcome()     {}
func (Return) outcome()    {}
func (Exception) outcome() {}
