package main

import (
	"os"

	"github.com/bramv/brainsparks/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
