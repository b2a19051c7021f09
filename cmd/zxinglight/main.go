// Command zxinglight decodes the barcodes in image files.
package main

import (
	"os"

	"github.com/thotypous/zxinglight/cmd/zxinglight/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:], os.Stdout, os.Stderr))
}
