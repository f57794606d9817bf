package main

import (
	"fmt"
	"os"

	"github.com/danmuck/modhost/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "modhost: %v\n", err)
		os.Exit(1)
	}
}
