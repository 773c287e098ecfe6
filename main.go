package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Seth7171/TaleWeaver-sub000/internal/cli"
	"github.com/Seth7171/TaleWeaver-sub000/internal/config"
	"github.com/Seth7171/TaleWeaver-sub000/internal/entrypoint"
)

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

type command struct {
	name    string
	summary string
	run     func(args []string) error
}

var commands = []command{
	{"serve", "Start the HTTP control API (default)", serve},
	{"simulate", "Run one page jump on a headless book and print the timeline", simulate},
	{"version", "Print the version", version},
}

func main() {
	name, args := "serve", []string(nil)
	if len(os.Args) > 1 {
		name, args = os.Args[1], os.Args[2:]
	}

	if name == "-h" || name == "--help" || name == "help" {
		printUsage()
		return
	}

	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if err := cmd.run(args); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			os.Exit(1)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
	printUsage()
	os.Exit(1)
}

func serve(_ []string) error {
	entrypoint.Run(config.NewConfig(), Version)
	return nil
}

func simulate(args []string) error {
	cmd := cli.NewSimulateCommand()
	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	return cmd.Run()
}

func version(_ []string) error {
	fmt.Printf("TaleWeaver %s (%s)\n", Version, Commit)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\nCommands:\n", os.Args[0])
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
