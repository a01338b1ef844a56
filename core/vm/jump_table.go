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

// stackEffect describes an opcode whose abstract semantics are exactly
// "pop n operands, push m Top values" — the overwhelming majority of the
// instruction set (arithmetic, bitwise, comparison, and the
// environment-producer/consumer groups from spec §4.D). This is the
// jump-table architecture the teacher's own core/vm package uses for
// concrete execution (one entry per opcode in a fixed table rather than
// one branch of a giant switch), generalized here to abstract transfer.
type stackEffect struct {
	pops, pushes int
}

// jumpTable maps every opcode with pure pop-n/push-Top semantics to its
// stack effect. Opcodes with bespoke behaviour (PUSH, DUP, SWAP, POP,
// MLOAD/MSTORE/MSTORE8, SLOAD/SSTORE, JUMP/JUMPI/JUMPDEST, and the
// terminators) are handled directly in transfer and are deliberately
// absent here.
var jumpTable = map[OpCode]stackEffect{
	ADD: {2, 1}, MUL: {2, 1}, SUB: {2, 1}, DIV: {2, 1}, SDIV: {2, 1},
	MOD: {2, 1}, SMOD: {2, 1}, EXP: {2, 1}, SIGNEXTEND: {2, 1},
	LT: {2, 1}, GT: {2, 1}, SLT: {2, 1}, SGT: {2, 1}, EQ: {2, 1},
	AND: {2, 1}, OR: {2, 1}, XOR: {2, 1}, BYTE: {2, 1}, SHL: {2, 1}, SHR: {2, 1}, SAR: {2, 1},

	ISZERO: {1, 1}, NOT: {1, 1},

	ADDMOD: {3, 1}, MULMOD: {3, 1},

	ADDRESS: {0, 1}, ORIGIN: {0, 1}, CALLER: {0, 1}, CALLVALUE: {0, 1},
	CALLDATASIZE: {0, 1}, CODESIZE: {0, 1}, GASPRICE: {0, 1}, RETURNDATASIZE: {0, 1},
	COINBASE: {0, 1}, TIMESTAMP: {0, 1}, NUMBER: {0, 1}, DIFFICULTY: {0, 1},
	GASLIMIT: {0, 1}, CHAINID: {0, 1}, SELFBALANCE: {0, 1}, PC: {0, 1}, MSIZE: {0, 1}, GAS: {0, 1},

	BALANCE: {1, 1}, CALLDATALOAD: {1, 1}, EXTCODESIZE: {1, 1}, EXTCODEHASH: {1, 1}, BLOCKHASH: {1, 1},
}
