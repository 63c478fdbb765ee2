package main

import (
	"os"

	"github.com/talentscout/candidatevault/cmd/candidatevault/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
