package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Run     *RunCommand
	Status  *StatusCommand
	History *HistoryCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "tickethawk"
	parser.LongDescription = "Track Ticketmaster events and record their prices in a local SQLite database."

	cmds := &commands{
		Run:     &RunCommand{globals: &globals, version: version},
		Status:  &StatusCommand{globals: &globals, version: version},
		History: &HistoryCommand{globals: &globals, version: version},
	}

	parser.AddCommand("run", "Search, track and snapshot an event", "Search the Discovery API, store the first result if it is new, and record a price snapshot for it.", cmds.Run)
	parser.AddCommand("status", "Show database statistics and tracked events", "Show database statistics and every active event with its latest price snapshot.", cmds.Status)
	parser.AddCommand("history", "Show recent price snapshots for an event", "Show the most recent price snapshots recorded for one tracked event.", cmds.History)

	return parser, &globals, cmds
}

// Run is the main entry point for the Ticket Hawk CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// go-flags requires a subcommand, but --version is valid without one.
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("tickethawk %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
