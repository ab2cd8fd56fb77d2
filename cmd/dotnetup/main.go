package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	// Handle subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("dotnetup %s\n", Version)
			return
		case "debugger":
			// Handle dotnetup debugger subcommand
			if err := runDebugger(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "server":
			// Handle dotnetup server subcommand
			if err := runServer(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "info":
			// Handle dotnetup info subcommand
			if err := runInfo(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "clean":
			// Handle dotnetup clean subcommand
			if err := runClean(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Default: show help
	fmt.Println("dotnetup - .NET tool binary manager")
	fmt.Println()
	fmt.Println("Acquires and caches the netcoredbg debugger and the Roslyn")
	fmt.Println("language server in the current working directory.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dotnetup --version          Show version information")
	fmt.Println("  dotnetup debugger [options] Resolve the netcoredbg binary, downloading if needed")
	fmt.Println("  dotnetup server [options]   Resolve the Roslyn language server, downloading if needed")
	fmt.Println("  dotnetup info [options]     Show platform detection and registry coordinates")
	fmt.Println("  dotnetup clean [options]    Remove all cached tool installs")
	fmt.Println()
	fmt.Println("Configuration is read from dotnetup.toml in the working directory,")
	fmt.Println("if present.")
}
