// Package main is the entry point for the perch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/perchhq/perch/internal/app"
	"github.com/perchhq/perch/internal/cli"
	"github.com/perchhq/perch/internal/infra/config"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	container, err := app.New(configPath())
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		_ = container.Close()
	}()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// configPath resolves the config file: $PERCH_CONFIG wins, then perch.toml in
// the working directory. A missing file means defaults.
func configPath() string {
	if path := os.Getenv("PERCH_CONFIG"); path != "" {
		return path
	}
	return config.DefaultConfigFileName
}
