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

// Storage is an optional abstraction of the VM's persistent key/value
// store. Unlike Memory, the default model (UnknownStorage, named after
// the original implementation this module is derived from) never tracks
// any slot: every SLOAD reads Top, and SSTORE is a no-op. Contract
// storage semantics (reentrancy-relevant aliasing, prior transaction
// state) are well outside what a pure bytecode-only analysis can know,
// so there is no sound way to do better than "all slots unknown".
type Storage struct{}

// newStorage returns the all-⊤ storage abstraction.
func newStorage() *Storage { return &Storage{} }

// Read always returns Top: storage slots are never modeled concretely.
func (s *Storage) Read(Value) Value { return Top }

// Write is a no-op: storage writes don't affect subsequent abstract
// reads, since reads never depend on tracked state.
func (s *Storage) Write(Value, Value) {}

func (s *Storage) clone() *Storage { return &Storage{} }

// joinStorage is trivial: UnknownStorage has exactly one value, so join
// never changes anything.
func joinStorage(*Storage, *Storage) (*Storage, bool) { return &Storage{}, false }
