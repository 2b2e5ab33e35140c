// wvtool runs, supervises and reformats programs speaking the WvTest
// output protocol.
//
// Usage:
//
//	wvtool run -- ./tests/all.sh
//	wvtool runall t/*.t
//	prove -v | wvtool format
//	wvtool format --junit-xml report.xml results.txt
package main

import (
	"os"

	"github.com/wvtest/wvtool/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
