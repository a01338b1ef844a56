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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func traceAndBuild(t *testing.T, code []byte) (*BlockGraph, *Tracer) {
	insns := Decode(code)
	tr := Trace(code, insns, NewState())
	return BuildBlockGraph(insns, tr), tr
}

// PUSH1 0x03 JUMP JUMPDEST STOP — unconditional jump straight to the
// JUMPDEST at pc=3, exercising a plain two-block split.
func TestBlockGraphUnconditionalJump(t *testing.T) {
	code := []byte{byte(PUSH1), 0x03, byte(JUMP), byte(JUMPDEST), byte(STOP)}
	g, _ := traceAndBuild(t, code)

	require.Len(t, g.Blocks, 2)
	b0, ok := g.LookupPC(0)
	require.True(t, ok)
	b1, ok := g.LookupPC(3)
	require.True(t, ok)

	edges := g.Successors(b0)
	require.Len(t, edges, 1)
	require.False(t, edges[0].Unresolved)
	require.Equal(t, b1, edges[0].To)

	require.Empty(t, g.Successors(b1))
}

// PUSH1 0x01 PUSH1 0x06 JUMPI STOP JUMPDEST STOP — conditional jump:
// both the fall-through and the taken edge must appear.
func TestBlockGraphConditionalJump(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x06,
		byte(JUMPI),
		byte(STOP),
		byte(JUMPDEST),
		byte(STOP),
	}
	g, _ := traceAndBuild(t, code)

	b0, ok := g.LookupPC(0)
	require.True(t, ok)
	bFall, ok := g.LookupPC(5)
	require.True(t, ok)
	bTaken, ok := g.LookupPC(6)
	require.True(t, ok)

	edges := g.Successors(b0)
	require.Len(t, edges, 2)

	var sawFall, sawTaken bool
	for _, e := range edges {
		require.False(t, e.Unresolved)
		switch e.To {
		case bFall:
			sawFall = true
		case bTaken:
			sawTaken = true
		}
	}
	require.True(t, sawFall)
	require.True(t, sawTaken)
}

// A JUMP whose target address was joined from two distinct constants
// (both valid JUMPDESTs) must produce an edge to each — the reason the
// block graph consults Tracer.Targets rather than re-peeking the joined
// (and by then possibly ⊤) stack cell directly.
func TestBlockGraphIndirectJumpTwoTargets(t *testing.T) {
	// A single JUMP at pc=0 is fed by two independently-seeded entry
	// states carrying different constant addresses, 1 and 7, both
	// landing on JUMPDESTs.
	code := []byte{
		byte(JUMP),                // pc0
		byte(JUMPDEST), byte(STOP), // pc1..2
		byte(STOP), byte(STOP), byte(STOP), byte(STOP), // pc3..6
		byte(JUMPDEST), byte(STOP), // pc7..8
	}
	insns := Decode(code)
	tr := &Tracer{
		code:           code,
		bits:           codeBitmap(code),
		byPC:           make(map[uint64]Instruction, len(insns)),
		states:         make(map[uint64]State),
		targets:        make(map[uint64]map[uint64]bool),
		unresolved:     make(map[uint64]bool),
		seenDiagnostic: make(map[Diagnostic]bool),
	}
	for _, insn := range insns {
		tr.byPC[insn.PC] = insn
	}

	var wl []uint64
	s1 := NewState()
	require.NoError(t, s1.Push(KnownValue(wordFromBigEndian([]byte{1}))))
	tr.enqueue(&wl, 0, s1)
	s7 := NewState()
	require.NoError(t, s7.Push(KnownValue(wordFromBigEndian([]byte{7}))))
	tr.enqueue(&wl, 0, s7)

	for len(wl) > 0 {
		pc := wl[len(wl)-1]
		wl = wl[:len(wl)-1]
		s, ok := tr.states[pc]
		if !ok || s.IsBottom() {
			continue
		}
		insn, ok := tr.byPC[pc]
		if !ok {
			continue
		}
		outcome := Transfer(insn, s, code, tr.bits)
		if c, ok := outcome.(Continue); ok {
			tr.enqueue(&wl, c.Next.PC, c.Next)
			if insn.Op == JUMP {
				tr.recordTarget(pc, c.Next.PC)
			}
		}
	}

	targets, unresolved := tr.Targets(0)
	require.False(t, unresolved)
	require.ElementsMatch(t, []uint64{1, 7}, targets)

	g := BuildBlockGraph(insns, tr)
	b0, ok := g.LookupPC(0)
	require.True(t, ok)
	b1, ok := g.LookupPC(1)
	require.True(t, ok)
	b7, ok := g.LookupPC(7)
	require.True(t, ok)

	edges := g.Successors(b0)
	require.Len(t, edges, 2)
	var to []int
	for _, e := range edges {
		require.False(t, e.Unresolved)
		to = append(to, e.To)
	}
	require.ElementsMatch(t, []int{b1, b7}, to)
}

func TestBlockGraphUnresolvedJumpIsFlagged(t *testing.T) {
	// PUSH1 0xff JUMP: 0xff is a constant but not a JUMPDEST anywhere in
	// this program, so the edge must be recorded as unresolved rather
	// than silently omitted.
	code := []byte{byte(PUSH1), 0xff, byte(JUMP)}
	g, _ := traceAndBuild(t, code)

	b0, ok := g.LookupPC(0)
	require.True(t, ok)
	edges := g.Successors(b0)
	require.Len(t, edges, 1)
	require.True(t, edges[0].Unresolved)
}

func TestBlockGraphUnreachableBlockHasNoEdges(t *testing.T) {
	// Dead code after an unconditional STOP, reachable only by falling
	// off a JUMPDEST that nothing ever jumps to, contributes no edges —
	// the trace engine never visits it.
	code := []byte{byte(STOP), byte(JUMPDEST), byte(PUSH1), 0x00, byte(JUMP)}
	g, _ := traceAndBuild(t, code)

	b1, ok := g.LookupPC(1)
	require.True(t, ok)
	require.Empty(t, g.Successors(b1))
}

func TestBlockGraphFallThroughIntoJumpdest(t *testing.T) {
	// ADD falls straight through into a JUMPDEST boundary with no
	// explicit jump.
	code := []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x02,
		byte(ADD),
		byte(JUMPDEST),
		byte(STOP),
	}
	g, _ := traceAndBuild(t, code)
	require.Len(t, g.Blocks, 2)

	b0, _ := g.LookupPC(0)
	b1, _ := g.LookupPC(5)
	edges := g.Successors(b0)
	require.Len(t, edges, 1)
	require.Equal(t, b1, edges[0].To)
	require.False(t, edges[0].Unresolved)
}
