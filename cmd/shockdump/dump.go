// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Quackster/LibreShockwave-sub002"
	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

func runDump(cmd *cobra.Command, args []string) {
	filename := args[0]

	wantChunks, _ := cmd.Flags().GetBool("chunks")
	wantCasts, _ := cmd.Flags().GetBool("casts")
	wantScripts, _ := cmd.Flags().GetBool("scripts")
	wantAll, _ := cmd.Flags().GetBool("all")
	if wantAll {
		wantChunks, wantCasts, wantScripts = true, true, true
	}
	if !wantChunks && !wantCasts && !wantScripts {
		wantChunks = true
	}

	f, err := director.Open(filename, nil)
	if err != nil {
		log.Fatalf("director: failed to open %s: %v", filename, err)
	}
	defer f.Close()

	fmt.Printf("%s: %d chunks, pipeline=%s, order=%s\n", filename, f.Chunks.Len(), pipelineName(f.Pipeline), orderName(f.Order))

	if wantChunks {
		dumpChunks(f)
	}
	if wantCasts {
		dumpCasts(f)
	}
	if wantScripts {
		dumpScripts(f)
	}
}

func pipelineName(p director.PipelineKind) string {
	if p == director.PipelineAfterburner {
		return "afterburner"
	}
	return "uncompressed"
}

func orderName(order binary.ByteOrder) string {
	if order == binary.LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

func dumpChunks(f *director.File) {
	fmt.Println("\n-- chunks --")
	for _, id := range f.Chunks.IDs() {
		c, ok := f.Chunks.Get(id)
		if !ok {
			continue
		}
		fmt.Printf("  [%4d] %s  (%d raw bytes)\n", c.ResourceID, c.Tag, len(c.RawBytes))
	}
}

func dumpCasts(f *director.File) {
	fmt.Println("\n-- cast libraries --")
	for _, lib := range f.Casts.Libraries() {
		fmt.Printf("  #%d %q  preload=%s  state=%s  external=%v\n", lib.Number, lib.Name, lib.PreloadMode, lib.State, lib.IsExternal())
		for _, slot := range lib.MemberSlots() {
			m, _ := lib.GetMember(slot)
			fmt.Printf("    [%3d] %-10s %q\n", slot, m.Type, m.Name)
		}
	}
}

func dumpScripts(f *director.File) {
	fmt.Println("\n-- scripts --")
	for _, lib := range f.Casts.Libraries() {
		for _, slot := range lib.MemberSlots() {
			script, ok := lib.GetScript(slot)
			if !ok {
				continue
			}
			m, _ := lib.GetMember(slot)
			fmt.Printf("  script %q (castLib %d, member %d)\n", m.Name, lib.Number, slot)
			for _, h := range script.Handlers {
				fmt.Printf("    handler %s\n", h.Name(script.Names))
				disassemble(h)
			}
		}
	}
}

// disassemble prints opcode mnemonics only; decompiling bytecode back
// to Lingo source text is out of scope.
func disassemble(h *lingo.Handler) {
	for _, instr := range h.Instructions {
		fmt.Printf("      %04x  %-12s %d\n", instr.ByteOffset, instr.Opcode, instr.Arg)
	}
}
