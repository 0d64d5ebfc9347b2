// # cmd/docwatch/main.go
package main

import (
	"os"

	"docwatch/internal/cliapp"
)

func main() {
	os.Exit(cliapp.Run(os.Args[1:]))
}
