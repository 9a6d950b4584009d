package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/de-tools/backup-atlas/pkg/runtime/terminal"
)

func main() {
	// Optional; environment variables win over .env entries.
	_ = godotenv.Load()

	cli := terminal.NewCLI()
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(terminal.ExitCode(err))
	}
}
