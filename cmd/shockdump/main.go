// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	var rootCmd = &cobra.Command{
		Use:   "shockdump",
		Short: "A Director/Shockwave container inspector and Lingo runner",
		Long:  "A RIFX/XFIR container parser and Lingo bytecode runner, built for reverse-engineering Director movies.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Long:  "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("You are using version %s\n", version)
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump <file>",
		Short: "Dumps the structure of a Director/Shockwave container",
		Long:  "Dumps the resource map, cast library list, and handler disassembly of a Director/Shockwave container",
		Args:  cobra.MinimumNArgs(1),
		Run:   runDump,
	}
	dumpCmd.Flags().Bool("chunks", false, "Dump the resource/chunk table")
	dumpCmd.Flags().Bool("casts", false, "Dump cast libraries and members")
	dumpCmd.Flags().Bool("scripts", false, "Dump handler disassembly")
	dumpCmd.Flags().Bool("all", false, "Dump chunks, casts, and scripts")

	var runCmd = &cobra.Command{
		Use:   "run <file>",
		Short: "Invokes a Lingo handler from a container",
		Long:  "Loads a container, finds the first script member declaring the named handler, and invokes it",
		Args:  cobra.MinimumNArgs(1),
		Run:   runHandler,
	}
	runCmd.Flags().String("handler", "", "Handler name to invoke")
	runCmd.Flags().StringArray("arg", nil, "Argument to pass to the handler, repeatable")
	runCmd.MarkFlagRequired("handler")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
