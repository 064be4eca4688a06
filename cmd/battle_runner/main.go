package main

import (
	"os"

	"github.com/botarena/battlesim/internal/runner"
)

func main() {
	os.Exit(runner.Run(os.Args[1:], os.Stdout))
}
