// Package main is the entry point for the vectordb CLI.
//
// vectordb renders the desired state of a pgvector-enabled Aurora PostgreSQL
// database as Crossplane managed resources. It reads a VectorDatabase
// composite (or a full function request) and prints the resources the
// composition would create, in dependency order.
//
// Commands: render, plan, init, version, completion.
//
// For detailed usage information, run:
//
//	vectordb --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/vectordb/cmd/vectordb/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
