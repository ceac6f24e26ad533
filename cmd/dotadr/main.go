// Command dotadr manages Architectural Decision Records.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/aidanlsb/dotadr/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
