// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Quackster/LibreShockwave-sub002"
	"github.com/Quackster/LibreShockwave-sub002/lingo"
)

func runHandler(cmd *cobra.Command, args []string) {
	filename := args[0]
	handlerName, _ := cmd.Flags().GetString("handler")
	rawArgs, _ := cmd.Flags().GetStringArray("arg")

	f, err := director.Open(filename, nil)
	if err != nil {
		log.Fatalf("director: failed to open %s: %v", filename, err)
	}
	defer f.Close()

	script, handler := findHandler(f, handlerName)
	if handler == nil {
		log.Fatalf("director: no script member declares handler %q", handlerName)
	}

	callArgs := make([]lingo.Datum, len(rawArgs))
	for i, raw := range rawArgs {
		callArgs[i] = parseArgDatum(raw)
	}

	result := f.VM.CallHandler(script, handler, lingo.Void(), callArgs)
	fmt.Printf("%s(%s) = %s\n", handlerName, rawArgs, result.ToStr())
}

// findHandler scans every cast library's compiled scripts for the
// first one declaring handlerName, matching the teacher's
// first-directory-match resolution pattern for ambiguous lookups.
func findHandler(f *director.File, handlerName string) (*lingo.Script, *lingo.Handler) {
	for _, lib := range f.Casts.Libraries() {
		for _, slot := range lib.MemberSlots() {
			script, ok := lib.GetScript(slot)
			if !ok {
				continue
			}
			if h := script.FindHandler(handlerName); h != nil {
				return script, h
			}
		}
	}
	return nil, nil
}

// parseArgDatum interprets a CLI argument as an int, float, or string,
// the closest a command line can get to Lingo's dynamic typing.
func parseArgDatum(raw string) lingo.Datum {
	if i, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return lingo.Int(int32(i))
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil {
		return lingo.Float(fl)
	}
	return lingo.Str(raw)
}
