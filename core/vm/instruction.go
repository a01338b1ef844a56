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

// Instruction is a decoded instruction together with the PC at which it
// starts. Every opcode other than PUSH occupies a single byte; PUSH
// carries 1..32 immediate payload bytes. DUP/SWAP carry their position
// inline in the opcode itself (see OpCode.DupPos/SwapPos) and need no
// separate payload field.
type Instruction struct {
	PC      uint64
	Op      OpCode
	Payload []byte // PUSH immediate bytes only; nil otherwise
}

// Len returns the encoded byte length of the instruction: 1 plus the
// push payload length for PUSH, 1 otherwise. This is the only place PC
// advance is computed in this module.
func (insn Instruction) Len() uint64 {
	if insn.Op.IsPush() {
		return 1 + uint64(len(insn.Payload))
	}
	return 1
}

// String renders the instruction the way a disassembly listing would:
// the opcode mnemonic, plus the push payload as a hex literal when
// present.
func (insn Instruction) String() string {
	if insn.Op.IsPush() && insn.Payload != nil {
		return fmt.Sprintf("%s 0x%x", insn.Op, insn.Payload)
	}
	return insn.Op.String()
}

// Decode linearly decodes a byte stream into instructions in order.
// Decoding never fails: bytes after a STOP/terminator are still decoded
// (the stream is not trusted to be well-terminated), and a PUSH whose
// payload runs past the end of the stream is emitted as an INVALID
// instruction terminating the sequence at end-of-stream, per spec.
func Decode(code []byte) []Instruction {
	var out []Instruction
	pc := uint64(0)
	for int(pc) < len(code) {
		op := OpCode(code[pc])
		if op.IsPush() {
			n := op.PushSize()
			start := int(pc) + 1
			end := start + n
			if end > len(code) {
				out = append(out, Instruction{PC: pc, Op: INVALID})
				break
			}
			out = append(out, Instruction{PC: pc, Op: op, Payload: append([]byte(nil), code[start:end]...)})
			pc += uint64(1 + n)
			continue
		}
		out = append(out, Instruction{PC: pc, Op: op})
		pc++
	}
	return out
}

// Encode is the inverse of Decode: decode(encode(xs)) == xs for any
// sequence of well-formed instructions (no ill-formed INVALID
// placeholders produced by truncated input).
func Encode(insns []Instruction) []byte {
	var out []byte
	for _, insn := range insns {
		out = append(out, byte(insn.Op))
		if insn.Op.IsPush() {
			out = append(out, insn.Payload...)
		}
	}
	return out
}
