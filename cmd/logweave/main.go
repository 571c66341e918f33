package main

import (
	"github.com/livp123/logweave/cmd/logweave/commands"
)

func main() {
	commands.Execute()
}
