package main

import (
	"os"

	"pufsim/cmd/pufsim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
