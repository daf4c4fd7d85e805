// Command concoll checks connected type declaration files and describes the
// relationship schemas they produce.
//
//	concoll check garage.yaml fleet.yaml
//	concoll describe --format yaml garage.yaml
package main

import (
	"os"

	"connected-collections/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
