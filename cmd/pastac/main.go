package main

import (
	"os"

	"github.com/cwbudde/go-pastac/cmd/pastac/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
