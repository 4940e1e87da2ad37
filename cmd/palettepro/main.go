// palettepro generates, searches and exports color palettes.
package main

import (
	"os"

	"github.com/wethinkt/go-palettepro/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
