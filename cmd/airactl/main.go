package main

import (
	"os"

	"github.com/adityachauhan/aira-apiserver/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
