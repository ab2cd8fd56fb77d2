package main

import (
	"context"
	"fmt"

	"github.com/dotnetup/dotnetup/internal/binary"
)

// ServerFlags holds parsed flags for the server command
type ServerFlags struct {
	showHelp   bool
	verbose    bool
	configPath string
	binPath    string
}

// parseServerFlags parses command-line flags for the server command
func parseServerFlags(args []string) (*ServerFlags, error) {
	flags := &ServerFlags{}

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

// runServer handles the `dotnetup server` subcommand
func runServer(args []string) error {
	flags, err := parseServerFlags(args)
	if err != nil {
		return err
	}

	if flags.showHelp {
		printServerHelp()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), acquireTimeout)
	defer cancel()

	logger := newLogger(flags.verbose)
	m, cfg, err := newManager(ctx, logger, flags.configPath)
	if err != nil {
		return err
	}

	override := flags.binPath
	if override == "" {
		override = cfg.LanguageServer.Path
	}

	sp, err := m.LanguageServerPath(ctx, override)
	if err != nil {
		return err
	}

	if sp.Kind == binary.LaunchManagedPayload {
		logger.Info("managed payload, launch through the dotnet host", "path", sp.Path)
	}
	fmt.Println(sp.Path)
	return nil
}

// printServerHelp prints help for the server command
func printServerHelp() {
	fmt.Println("Usage: dotnetup server [options]")
	fmt.Println()
	fmt.Println("Resolve the Roslyn language server binary and print its absolute path.")
	fmt.Println()
	fmt.Println("The newest package version is downloaded from the NuGet feed on first")
	fmt.Println("use and cached in a version directory under the working directory.")
	fmt.Println("Platforms without a native payload resolve to a managed assembly that")
	fmt.Println("must be launched through the dotnet host; a note is printed on stderr")
	fmt.Println("when that happens.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --verbose    Show acquisition progress on stderr")
	fmt.Println("  --config <file>  Read configuration from this file")
	fmt.Println("  --path <binary>  Use this binary, skipping acquisition")
	fmt.Println()
	fmt.Println("Configuration (dotnetup.toml):")
	fmt.Println("  [language_server]")
	fmt.Println("  path = \"/custom/server\"       Use this binary, skipping acquisition")
	fmt.Println("  package = \"Package.Id\"        Alternative package id")
	fmt.Println("  feed_url = \"https://...\"      Alternative NuGet v3 service index")
}
