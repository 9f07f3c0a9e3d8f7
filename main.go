package main

import (
	"github.com/axellelanca/newsboard/cmd"
	_ "github.com/axellelanca/newsboard/cmd/cli"
	_ "github.com/axellelanca/newsboard/cmd/server"
)

// main delegates everything to the Cobra root command.
// Subcommands register themselves via their package init() functions,
// which is why cmd/cli and cmd/server are imported for side effects only.
func main() {
	cmd.Execute()
}
