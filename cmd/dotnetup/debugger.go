package main

import (
	"context"
	"fmt"
	"time"
)

// acquireTimeout bounds a single acquisition end to end, download included.
const acquireTimeout = 10 * time.Minute

// DebuggerFlags holds parsed flags for the debugger command
type DebuggerFlags struct {
	showHelp   bool
	verbose    bool
	configPath string
	binPath    string
}

// parseDebuggerFlags parses command-line flags for the debugger command
func parseDebuggerFlags(args []string) (*DebuggerFlags, error) {
	flags := &DebuggerFlags{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			flags.showHelp = true
		case "--verbose", "-v":
			flags.verbose = true
		case "--config":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--config requires a file path")
			}
			i++
			flags.configPath = args[i]
		case "--path":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--path requires a binary path")
			}
			i++
			flags.binPath = args[i]
		default:
			return nil, fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	return flags, nil
}

// runDebugger handles the `dotnetup debugger` subcommand
func runDebugger(args []string) error {
	flags, err := parseDebuggerFlags(args)
	if err != nil {
		return err
	}

	if flags.showHelp {
		printDebuggerHelp()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), acquireTimeout)
	defer cancel()

	logger := newLogger(flags.verbose)
	m, cfg, err := newManager(ctx, logger, flags.configPath)
	if err != nil {
		return err
	}

	// The command-line override wins over the config-file one.
	override := flags.binPath
	if override == "" {
		override = cfg.Debugger.Path
	}

	path, err := m.DebuggerPath(ctx, override)
	if err != nil {
		return err
	}

	// The resolved path is the only stdout output, so callers can capture it.
	fmt.Println(path)
	return nil
}

// printDebuggerHelp prints help for the debugger command
func printDebuggerHelp() {
	fmt.Println("Usage: dotnetup debugger [options]")
	fmt.Println()
	fmt.Println("Resolve a runnable netcoredbg binary and print its absolute path.")
	fmt.Println()
	fmt.Println("The latest stable release is downloaded on first use and cached in a")
	fmt.Println("version directory under the working directory. Later runs reuse the")
	fmt.Println("cached install without downloading.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --verbose    Show acquisition progress on stderr")
	fmt.Println("  --config <file>  Read configuration from this file")
	fmt.Println("  --path <binary>  Use this binary, skipping acquisition")
	fmt.Println()
	fmt.Println("Configuration (dotnetup.toml):")
	fmt.Println("  [debugger]")
	fmt.Println("  path = \"/custom/netcoredbg\"   Use this binary, skipping acquisition")
	fmt.Println("  repo = \"owner/repo\"           Alternative release registry coordinate")
}
