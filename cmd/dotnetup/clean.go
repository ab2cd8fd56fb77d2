package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotnetup/dotnetup/internal/binary"
)

// CleanFlags holds parsed flags for the clean command
type CleanFlags struct {
	showHelp bool
	dryRun   bool
	keep     string
}

// parseCleanFlags parses command-line flags for the clean command
func parseCleanFlags(args []string) (*CleanFlags, error) {
	flags := &CleanFlags{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			flags.showHelp = true
		case "--dry-run", "-n":
			flags.dryRun = true
		case "--keep":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--keep requires a version directory name")
			}
			i++
			flags.keep = args[i]
		default:
			return nil, fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	return flags, nil
}

// runClean handles the `dotnetup clean` subcommand
func runClean(args []string) error {
	flags, err := parseCleanFlags(args)
	if err != nil {
		return err
	}

	if flags.showHelp {
		printCleanHelp()
		return nil
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	if flags.dryRun {
		installs, err := binary.ListInstalls(workDir)
		if err != nil {
			return err
		}
		var targets []binary.Install
		for _, inst := range installs {
			if flags.keep != "" && filepath.Base(inst.Dir) == flags.keep {
				continue
			}
			targets = append(targets, inst)
		}
		if len(targets) == 0 {
			fmt.Println("Nothing to remove.")
			return nil
		}
		fmt.Println("Would remove:")
		for _, inst := range targets {
			fmt.Printf("  %s\n", inst.Dir)
		}
		return nil
	}

	removed, err := binary.RemoveInstalls(workDir, flags.keep)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Println("Nothing to remove.")
		return nil
	}
	for _, inst := range removed {
		fmt.Printf("Removed %s %s\n", inst.Component, inst.Version)
	}
	return nil
}

// printCleanHelp prints help for the clean command
func printCleanHelp() {
	fmt.Println("Usage: dotnetup clean [options]")
	fmt.Println()
	fmt.Println("Remove cached tool installs from the working directory. The next")
	fmt.Println("debugger or server invocation downloads fresh copies.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -n, --dry-run  List what would be removed without removing it")
	fmt.Println("  --keep <dir>   Keep this version directory (e.g. roslyn-5.0.0)")
}
