// Package main is the entry point for the rlcluster CLI.
//
// rlcluster deploys a distributed reinforcement-learning training cluster
// (a parameter server, workers, and their gym environments) onto a remote
// platform, and tears it down again.
//
// Commands: deploy, teardown, plan, version.
//
// For detailed usage information, run:
//
//	rlcluster --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/rlcluster/cmd/rlcluster/commands"
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
