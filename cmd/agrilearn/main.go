package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/agrilearn/agrilearn/internal/cli"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	// A local .env can override AGRILEARN_* settings during
	// development. Absence is not an error.
	_ = godotenv.Load()

	if err := cli.New(Version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
