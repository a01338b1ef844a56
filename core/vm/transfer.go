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

// Transfer applies insn's abstract semantics to s, producing a single
// Outcome: Continue, Split, Return, or Exception. s is never mutated in
// place; insn's code argument supplies the bytes needed to validate a
// dynamic jump target. Applying Transfer to ⊥ is an invariant breach
// and panics with the instruction and its PC.
func Transfer(insn Instruction, s State, code []byte, bits bitvec) Outcome {
	if s.IsBottom() {
		panic(fmt.Sprintf("vm: Transfer applied to ⊥ state at pc %d (%s)", insn.PC, insn))
	}
	switch insn.Op {
	case STOP, RETURN, REVERT, INVALID, SELFDESTRUCT:
		return Return{}

	case JUMPDEST:
		return Continue{Next: s.Skip(insn.Len())}

	case POP:
		next := s.clone()
		if _, err := next.Pop(); err != nil {
			return Exception{Kind: exceptionFor(err)}
		}
		return Continue{Next: next.Skip(insn.Len())}

	case MLOAD:
		return transferMLoad(insn, s)
	case MSTORE:
		return transferMStore(insn, s, false)
	case MSTORE8:
		return transferMStore(insn, s, true)
	case SLOAD:
		return transferSLoad(insn, s)
	case SSTORE:
		return transferSStore(insn, s)

	case JUMP:
		return transferJump(insn, s, code, bits)
	case JUMPI:
		return transferJumpI(insn, s, code, bits)

	default:
		if insn.Op.IsPush() {
			return transferPush(insn, s)
		}
		if insn.Op.IsDup() {
			return transferDup(insn, s)
		}
		if insn.Op.IsSwap() {
			return transferSwap(insn, s)
		}
		if eff, ok := jumpTable[insn.Op]; ok {
			return transferStackEffect(insn, s, eff)
		}
		return Exception{Kind: InvalidOpcode}
	}
}

// transferStackEffect implements the common "pop n, push m×Top" shape
// shared by arithmetic, bitwise, comparison, and environment opcodes.
func transferStackEffect(insn Instruction, s State, eff stackEffect) Outcome {
	next := s.clone()
	for i := 0; i < eff.pops; i++ {
		if _, err := next.Pop(); err != nil {
			return Exception{Kind: exceptionFor(err)}
		}
	}
	for i := 0; i < eff.pushes; i++ {
		if err := next.Push(Top); err != nil {
			return Exception{Kind: exceptionFor(err)}
		}
	}
	return Continue{Next: next.Skip(insn.Len())}
}

func transferPush(insn Instruction, s State) Outcome {
	next := s.clone()
	v := KnownValue(wordFromBigEndian(insn.Payload))
	if err := next.Push(v); err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	return Continue{Next: next.Skip(insn.Len())}
}

func transferDup(insn Instruction, s State) Outcome {
	next := s.clone()
	if err := next.Stack.Dup(insn.Op.DupPos()); err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	return Continue{Next: next.Skip(insn.Len())}
}

func transferSwap(insn Instruction, s State) Outcome {
	next := s.clone()
	if err := next.Stack.Swap(insn.Op.SwapPos()); err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	return Continue{Next: next.Skip(insn.Len())}
}

func transferMLoad(insn Instruction, s State) Outcome {
	next := s.clone()
	addr, err := next.Pop()
	if err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	v := next.Memory.Read(addr)
	if err := next.Push(v); err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	return Continue{Next: next.Skip(insn.Len())}
}

func transferMStore(insn Instruction, s State, byteStore bool) Outcome {
	next := s.clone()
	addr, err := next.Pop()
	if err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	v, err := next.Pop()
	if err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	// MSTORE8's single-byte write stores Top at addr, which also drops
	// every tracked cell overlapping it (see Memory.Write), since this
	// abstraction only tracks whole 32-byte cells; only a full-word
	// MSTORE can install a Known cell.
	if byteStore {
		next.Memory.Write(addr, Top)
	} else {
		next.Memory.Write(addr, v)
	}
	return Continue{Next: next.Skip(insn.Len())}
}

func transferSLoad(insn Instruction, s State) Outcome {
	next := s.clone()
	key, err := next.Pop()
	if err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	v := next.Storage.Read(key)
	if err := next.Push(v); err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	return Continue{Next: next.Skip(insn.Len())}
}

func transferSStore(insn Instruction, s State) Outcome {
	next := s.clone()
	key, err := next.Pop()
	if err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	val, err := next.Pop()
	if err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	next.Storage.Write(key, val)
	return Continue{Next: next.Skip(insn.Len())}
}

// validateJumpTarget reports whether addr names a genuine JUMPDEST,
// returning its PC. Does not touch the stack; callers pop the address
// themselves so both JUMP and the always-popping JUMPI can share this.
func validateJumpTarget(addr Value, code []byte, bits bitvec) (pc uint64, kind ExceptionKind, ok bool) {
	if !addr.IsKnown() {
		return 0, InvalidJumpDest, false
	}
	if !addr.ValidJumpTarget() {
		return 0, CodeSizeExceeded, false
	}
	pc = wordToPC(&addr.word)
	if !isJumpDest(code, bits, pc) {
		return 0, InvalidJumpDest, false
	}
	return pc, 0, true
}

func transferJump(insn Instruction, s State, code []byte, bits bitvec) Outcome {
	next := s.clone()
	addr, err := next.Pop()
	if err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	pc, kind, ok := validateJumpTarget(addr, code, bits)
	if !ok {
		return Exception{Kind: kind}
	}
	return Continue{Next: next.Goto(pc)}
}

// transferJumpI pops (destination, condition) on both the fall-through
// and branch paths — JUMPI always consumes both operands regardless of
// which way it branches — and only additionally resolves the
// destination on the branch side.
func transferJumpI(insn Instruction, s State, code []byte, bits bitvec) Outcome {
	fall := s.clone()
	addr, err := fall.Pop()
	if err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	if _, err := fall.Pop(); err != nil {
		return Exception{Kind: exceptionFor(err)}
	}

	branch := s.clone()
	if _, err := branch.Pop(); err != nil {
		return Exception{Kind: exceptionFor(err)}
	}
	if _, err := branch.Pop(); err != nil {
		return Exception{Kind: exceptionFor(err)}
	}

	pc, kind, ok := validateJumpTarget(addr, code, bits)
	if !ok {
		return Split{Fall: fall.Skip(insn.Len()), BranchOK: false, BranchExc: kind}
	}
	return Split{Fall: fall.Skip(insn.Len()), Branch: branch.Goto(pc), BranchOK: true}
}
