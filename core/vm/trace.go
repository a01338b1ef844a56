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

// Tracer runs the forward dataflow (fixpoint) engine described in spec
// §4.E: a worklist of pending PCs, applying the transfer function and
// joining successor states until no PC's state changes further.
//
// Rather than retaining the full set of distinct states that ever
// arrived at each PC, Tracer keeps a single joined state per PC (the
// simpler variant spec §4.E explicitly permits), plus — for PCs that
// are JUMP/JUMPI sites specifically — the set of distinct concrete
// target PCs ever observed feeding that branch. This is enough for the
// block graph builder (§4.F) to produce precise edges even across a
// fixpoint that eventually widens the joined stack cell itself to ⊤.
type Tracer struct {
	code []byte
	bits bitvec
	byPC map[uint64]Instruction

	states map[uint64]State
	// targets[pc] is the set of distinct resolved jump-target PCs ever
	// observed at the JUMP/JUMPI instruction starting at pc.
	targets map[uint64]map[uint64]bool
	// unresolved[pc] is set once the branch at pc was ever seen with a
	// non-constant, out-of-range, or non-JUMPDEST top-of-stack.
	unresolved map[uint64]bool

	diagnostics    []Diagnostic
	seenDiagnostic map[Diagnostic]bool
}

// Trace runs the worklist fixpoint over insns, the already-decoded
// instructions of code, starting from init at PC 0 (or wherever init.PC
// is set, for callers that want to seed analysis mid-stream). Returns
// the Tracer holding the fixpoint results.
func Trace(code []byte, insns []Instruction, init State) *Tracer {
	t := &Tracer{
		code:           code,
		bits:           codeBitmap(code),
		byPC:           make(map[uint64]Instruction, len(insns)),
		states:         make(map[uint64]State),
		targets:        make(map[uint64]map[uint64]bool),
		unresolved:     make(map[uint64]bool),
		seenDiagnostic: make(map[Diagnostic]bool),
	}
	for _, insn := range insns {
		t.byPC[insn.PC] = insn
	}

	var worklist []uint64
	t.enqueue(&worklist, init.PC, init)

	for len(worklist) > 0 {
		pc := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		s, ok := t.states[pc]
		if !ok || s.IsBottom() {
			continue
		}
		insn, ok := t.byPC[pc]
		if !ok {
			// Control fell off the end of decoded code, or onto a PC
			// that isn't an instruction start: nothing more to trace
			// from here.
			continue
		}

		outcome := Transfer(insn, s, code, t.bits)
		switch o := outcome.(type) {
		case Continue:
			t.enqueue(&worklist, o.Next.PC, o.Next)
			if insn.Op == JUMP {
				t.recordTarget(pc, o.Next.PC)
			}
		case Split:
			t.enqueue(&worklist, o.Fall.PC, o.Fall)
			if o.BranchOK {
				t.enqueue(&worklist, o.Branch.PC, o.Branch)
				t.recordTarget(pc, o.Branch.PC)
			} else {
				t.markUnresolved(pc)
				t.recordDiagnostic(pc, o.BranchExc)
			}
		case Return:
			// Terminal; no successors.
		case Exception:
			t.recordDiagnostic(pc, o.Kind)
			if insn.Op == JUMP && (o.Kind == InvalidJumpDest || o.Kind == CodeSizeExceeded) {
				t.markUnresolved(pc)
			}
		}
	}
	return t
}

func (t *Tracer) enqueue(worklist *[]uint64, pc uint64, s State) {
	t.captureBranchTarget(pc, s)

	cur, existed := t.states[pc]
	if !existed {
		cur = Bottom()
	}
	joined, changed := cur.Join(s)
	if changed {
		joined.PC = pc
		t.states[pc] = joined
		*worklist = append(*worklist, pc)
	}
}

// captureBranchTarget records the jump target that s — a single
// predecessor's contribution arriving at pc, not yet folded into pc's
// stored joined state — would resolve to, when pc is a JUMP/JUMPI site.
//
// This has to happen here, before the join, rather than by waiting for
// Transfer to run on the stored state: two distinct constants joined
// together collapse the stack's top cell to ⊤, so once a second
// predecessor's contribution has been folded in, neither address is
// individually observable any more. Capturing per predecessor is what
// lets two constants that merge before a JUMP still produce an edge to
// each of their targets (spec's worked "two constants joined" scenario),
// instead of only ever seeing the post-join ⊤ and recording nothing.
func (t *Tracer) captureBranchTarget(pc uint64, s State) {
	insn, ok := t.byPC[pc]
	if !ok || (insn.Op != JUMP && insn.Op != JUMPI) {
		return
	}
	addr, err := s.Peek(0)
	if err != nil {
		return // underflow; Transfer's own pass over the stored state records this
	}
	if !addr.IsKnown() {
		t.markUnresolved(pc)
		return
	}
	// A known but invalid constant (bad JUMPDEST, or out of range) records
	// no target here: Transfer's pass over the stored state turns it into
	// a diagnostic and marks the site unresolved.
	if target, _, ok := validateJumpTarget(addr, t.code, t.bits); ok {
		t.recordTarget(pc, target)
	}
}

func (t *Tracer) recordTarget(site, target uint64) {
	set, ok := t.targets[site]
	if !ok {
		set = make(map[uint64]bool)
		t.targets[site] = set
	}
	set[target] = true
}

func (t *Tracer) markUnresolved(site uint64) {
	t.unresolved[site] = true
}

func (t *Tracer) recordDiagnostic(pc uint64, kind ExceptionKind) {
	d := Diagnostic{PC: pc, Kind: kind}
	if t.seenDiagnostic[d] {
		return
	}
	t.seenDiagnostic[d] = true
	t.diagnostics = append(t.diagnostics, d)
}

// StateAt returns the fixpoint's joined incoming state at pc, or ⊥ if
// pc was never reached.
func (t *Tracer) StateAt(pc uint64) State {
	return t.states[pc]
}

// Targets returns the set of distinct constant jump-target PCs ever
// observed at the JUMP/JUMPI instruction starting at site, plus whether
// that site also ever produced an unresolved (non-constant or invalid)
// target.
func (t *Tracer) Targets(site uint64) (targets []uint64, unresolved bool) {
	for pc := range t.targets[site] {
		targets = append(targets, pc)
	}
	return targets, t.unresolved[site]
}

// Diagnostics returns every statically detected fault recorded during
// the trace, in first-seen order.
func (t *Tracer) Diagnostics() []Diagnostic {
	return t.diagnostics
}
