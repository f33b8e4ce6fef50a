// shuttlectl - ShuttleFile extraction and repair tool
//
// shuttlectl parses the fixed-width text logs produced by trail-counter
// hardware, corrects their timestamps across daylight-saving transitions,
// and reports the hours no count was recorded for.
package main

import (
	"os"

	"github.com/trailops/shuttlectl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
