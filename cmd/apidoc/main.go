// Command apidoc builds API documentation from YAML, JSON and TOML fragments.
package main

import (
	"context"
	"os"

	"github.com/lucasvieiramay/apidoc/cmd/apidoc/commands"
)

func main() {
	if err := commands.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
