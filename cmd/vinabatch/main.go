package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/me/vinabatch/internal/cli"
)

func main() {
	// Optional .env for tool paths and ledger location; absence is fine.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
