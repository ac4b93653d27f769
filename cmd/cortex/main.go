package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/nathanvale/cortex/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
