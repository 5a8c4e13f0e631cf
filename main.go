package main

import (
	"os"

	"github.com/alexbotov/engine-go/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
