package main

import (
	"os"

	"github.com/baaaaaaaka/cipherrank/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
