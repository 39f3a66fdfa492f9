package main

import (
	"os"

	"github.com/groovebot/groover/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
