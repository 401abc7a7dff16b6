package main

import (
	"fmt"
	"os"

	"github.com/tphakala/fishcast-go/cmd"
	"github.com/tphakala/fishcast-go/internal/conf"
	"github.com/tphakala/fishcast-go/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	rootCmd := cmd.RootCommand(settings)

	return rootCmd.Execute()
}
