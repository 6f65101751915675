// Command sscpctl is an operator console for SpringCard SSCP readers: open
// a serial session, authenticate, scan for a tag, exchange an APDU, drive
// the outputs, or print session statistics.
package main

import (
	"github.com/springcard/sscp-host/cmd/sscpctl/internal/cli"
)

func main() {
	cli.Execute()
}
