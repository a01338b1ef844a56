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

// Disassembly is the top-level façade over the pipeline described in
// spec §2: decode, trace to a fixpoint, then build the block graph.
// Callers that only need one stage (e.g. just Decode) can use the
// package-level functions directly; Disassembly is for callers that
// want the whole analysis wired together, mirroring the original
// implementation's `Disassembly::new(code).build()` entry point.
type Disassembly struct {
	Code   []byte
	Insns  []Instruction
	Blocks *BlockGraph

	tracer *Tracer
}

// Disassemble runs the full pipeline over code starting from the
// default initial state (empty stack, empty memory, ⊤-storage, pc=0).
func Disassemble(code []byte) *Disassembly {
	return DisassembleFrom(code, NewState())
}

// DisassembleFrom runs the full pipeline starting from an
// caller-supplied initial state, for callers analyzing a code fragment
// reached with already-known abstract values on the stack.
func DisassembleFrom(code []byte, init State) *Disassembly {
	insns := Decode(code)
	tracer := Trace(code, insns, init)
	blocks := BuildBlockGraph(insns, tracer)
	return &Disassembly{Code: code, Insns: insns, Blocks: blocks, tracer: tracer}
}

// StateAt returns the fixpoint's incoming abstract state at pc.
func (d *Disassembly) StateAt(pc uint64) State { return d.tracer.StateAt(pc) }

// Targets returns the resolved jump targets observed at the branch
// instruction starting at site, plus whether an unresolved target was
// also observed there.
func (d *Disassembly) Targets(site uint64) (targets []uint64, unresolved bool) {
	return d.tracer.Targets(site)
}

// Diagnostics returns every statically detected fault, in first-seen
// order.
func (d *Disassembly) Diagnostics() []Diagnostic { return d.tracer.Diagnostics() }
