// Command glr reconstructs and reconciles a General Ledger report.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/glreport/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests and exits, a no-op otherwise.
	cmd.Completion().Complete("glr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands are looked up as glr-<name> extensions.
	if name := flag.Arg(0); name != "" && !cmd.Registered(commander, name) {
		if ran, code := cmd.RunExtension(name, flag.Args()[1:]); ran {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
