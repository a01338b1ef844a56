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

// Memory is an optional abstraction of the VM's byte-addressable
// memory. The default (newMemory) answers every read with Top without
// tracking any cells at all, which is always sound. A Memory only needs
// to track a cell once something has actually been written to it at a
// statically-known offset; offsets that are themselves unknown, or that
// differ from the address a tracked cell was written at, force the
// read to Top rather than guess.
//
// Cells are keyed by the exact byte address of the 32-byte word written
// there, mirroring how MLOAD/MSTORE operate a word at a time. A write
// drops every other tracked cell whose 32 bytes overlap the ones it
// writes.
type Memory struct {
	cells map[uint64]Value
}

// newMemory returns an empty memory abstraction (all reads are Top
// until something is written at a known offset).
func newMemory() *Memory {
	return &Memory{}
}

// Read returns the abstract value stored at addr, or Top if addr is
// unknown or was never written (or was written through an unknown
// address, which invalidates every previously tracked cell — see
// Write).
func (m *Memory) Read(addr Value) Value {
	if !addr.IsKnown() || m.cells == nil {
		return Top
	}
	off, ok := wordAsCellOffset(addr.Const())
	if !ok {
		return Top
	}
	if v, ok := m.cells[off]; ok {
		return v
	}
	return Top
}

// Write records that v was stored at addr. A write through an unknown
// address could alias any tracked cell, so it invalidates the whole map
// (a sound, if coarse, widening) rather than trying to reason about
// partial overlap.
func (m *Memory) Write(addr, v Value) {
	if !addr.IsKnown() {
		m.cells = nil
		return
	}
	off, ok := wordAsCellOffset(addr.Const())
	if !ok {
		m.cells = nil
		return
	}
	if m.cells == nil {
		m.cells = make(map[uint64]Value)
	}
	// Unsigned distance in both directions avoids overflow near 2^64.
	for k := range m.cells {
		if k != off && (k-off < 32 || off-k < 32) {
			delete(m.cells, k)
		}
	}
	m.cells[off] = v
}

// wordAsCellOffset converts a known address word into a cell offset,
// rejecting addresses too large to be a plausible memory offset (this
// is purely a sizing guard so the map never grows unbounded from a
// single adversarial constant; it does not model the VM's real memory
// expansion cost, which is explicitly out of scope).
func wordAsCellOffset(w Word) (uint64, bool) {
	if !w.IsUint64() {
		return 0, false
	}
	return w.Uint64(), true
}

func (m *Memory) clone() *Memory {
	if m == nil {
		return nil
	}
	out := &Memory{}
	if m.cells != nil {
		out.cells = make(map[uint64]Value, len(m.cells))
		for k, v := range m.cells {
			out.cells[k] = v
		}
	}
	return out
}

// joinMemory widens pointwise: a cell survives the join only if both
// sides tracked it and their values are equal; anything else (missing
// on one side, or differing) becomes untracked (implicitly Top on
// read).
func joinMemory(a, b *Memory) (*Memory, bool) {
	out := &Memory{}
	changed := false
	if a.cells == nil || b.cells == nil {
		changed = len(a.cells) != 0
		return out, changed
	}
	out.cells = make(map[uint64]Value)
	for off, av := range a.cells {
		if bv, ok := b.cells[off]; ok {
			jv := av.Join(bv)
			if jv.IsKnown() {
				out.cells[off] = jv
			}
			if !jv.Equal(av) {
				changed = true
			}
		} else {
			changed = true
		}
	}
	if len(out.cells) != len(a.cells) {
		changed = true
	}
	return out, changed
}
