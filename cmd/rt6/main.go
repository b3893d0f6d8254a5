package main

import (
	"os"

	"github.com/ajustes-contables/rt6/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
