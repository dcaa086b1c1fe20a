package main

import (
	"os"

	"github.com/viant/jsrepl/cmd/jsrepl/command"
)

func main() {
	if err := command.New().Execute(); err != nil {
		os.Exit(1)
	}
}
