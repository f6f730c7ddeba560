// airev is a terminal-resident code review workstation.
package main

import (
	"os"

	"github.com/airev/airev/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
