// nuurctl is a command line client for the NuuR personal-safety API.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
