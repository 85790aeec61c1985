// Command amlich converts dates between the Gregorian and Vietnamese lunar
// calendars.
package main

import "github.com/zapponejosh/amlich/internal/cli"

func main() {
	cli.Execute()
}
