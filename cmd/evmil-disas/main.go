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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ConsenSys/EvmIL/common/hexutil"
	"github.com/ConsenSys/EvmIL/core/vm"
	"github.com/ConsenSys/EvmIL/internal/evmlog"
)

func main() {
	app := &cli.App{
		Name:    "evmil-disas",
		Usage:   "disassemble and analyze EVM-style bytecode",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "accepted; the listings are the same with or without it"},
		},
		Commands: []*cli.Command{
			disassembleCommand,
			blocksCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		evmlog.Error("evmil-disas failed", "err", err)
		os.Exit(1)
	}
}

var codeFlag = &cli.StringFlag{
	Name:  "code",
	Usage: "disassemble the given hex string directly, instead of treating the argument as a file path",
}

var disassembleCommand = &cli.Command{
	Name:    "disassemble",
	Aliases: []string{"d"},
	Usage:   "disassemble a raw hex string or file into annotated instructions",
	Flags:   []cli.Flag{codeFlag},
	Action: func(c *cli.Context) error {
		code, err := loadCode(c)
		if err != nil {
			return err
		}
		d := vm.Disassemble(code)
		printInstructions(d)
		printDiagnostics(d)
		return nil
	},
}

var blocksCommand = &cli.Command{
	Name:  "blocks",
	Usage: "print the block graph and flag unresolved jump edges",
	Flags: []cli.Flag{codeFlag},
	Action: func(c *cli.Context) error {
		code, err := loadCode(c)
		if err != nil {
			return err
		}
		d := vm.Disassemble(code)
		printBlocks(d)
		printDiagnostics(d)
		return nil
	},
}

func loadCode(c *cli.Context) ([]byte, error) {
	target := c.Args().First()
	if target == "" && !c.IsSet("code") {
		return nil, cli.Exit("a target (hex string or file path) is required", 1)
	}
	var raw string
	if c.IsSet("code") {
		raw = c.String("code")
	} else {
		buf, err := os.ReadFile(target)
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(string(buf))
	}
	if !strings.HasPrefix(raw, "0x") && !strings.HasPrefix(raw, "0X") {
		raw = "0x" + raw
	}
	return hexutil.Decode(raw)
}

// printInstructions reproduces the original tool's annotated listing:
// stack height at every JUMPDEST, resolved target at every JUMP/JUMPI.
func printInstructions(d *vm.Disassembly) {
	for _, insn := range d.Insns {
		switch insn.Op {
		case vm.JUMPDEST:
			fmt.Println()
			fmt.Printf("// stack height %s\n", stackHeight(d.StateAt(insn.PC)))
			fmt.Printf("%#08x: %s\n", insn.PC, insn)
		case vm.JUMP, vm.JUMPI:
			targets, unresolved := d.Targets(insn.PC)
			fmt.Printf("%#08x: %s // targets=%v unresolved=%v\n", insn.PC, insn, targets, unresolved)
		default:
			fmt.Printf("%#08x: %s\n", insn.PC, insn)
		}
	}
}

func stackHeight(s vm.State) string {
	if s.IsBottom() {
		return "unreachable"
	}
	return fmt.Sprintf("%d", s.Stack.Len())
}

func printBlocks(d *vm.Disassembly) {
	for _, blk := range d.Blocks.Blocks {
		fmt.Printf("block %d [%#x, %#x)\n", blk.ID, blk.Start, blk.End)
		for _, e := range d.Blocks.Successors(blk.ID) {
			if e.Unresolved {
				fmt.Printf("  -> unresolved\n")
				continue
			}
			fmt.Printf("  -> block %d\n", e.To)
		}
	}
}

func printDiagnostics(d *vm.Disassembly) {
	diags := d.Diagnostics()
	if len(diags) == 0 {
		return
	}
	fmt.Println()
	for _, diag := range diags {
		fmt.Printf("// %#08x: %s\n", diag.PC, diag.Kind)
	}
}
