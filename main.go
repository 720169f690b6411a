package main

import (
	"os"

	"github.com/inkpress/inkpress/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
