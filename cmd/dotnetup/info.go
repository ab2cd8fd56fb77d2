package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dotnetup/dotnetup/internal/binary"
	"github.com/dotnetup/dotnetup/internal/config"
	"github.com/dotnetup/dotnetup/internal/platform"
)

// runInfo handles the `dotnetup info` subcommand
func runInfo(args []string) error {
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			printInfoHelp()
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(filepath.Join(workDir, configFileName))
	if err != nil {
		return err
	}

	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("dotnetup %s\n", Version)
	fmt.Println()
	fmt.Println("Platform:")
	fmt.Printf("  OS:           %s\n", info.OS)
	fmt.Printf("  Architecture: %s\n", info.Arch)
	if info.Distro != "" {
		fmt.Printf("  Distribution: %s %s (%s family)\n", info.Distro, info.Release, info.Family)
	}
	if suffix, err := platform.AssetSuffix(info); err == nil {
		fmt.Printf("  Asset suffix: %s\n", suffix)
	} else {
		fmt.Printf("  Asset suffix: unavailable (%v)\n", err)
	}
	if rid, err := platform.RuntimeIdentifier(info); err == nil {
		fmt.Printf("  Runtime id:   %s\n", rid)
	} else {
		fmt.Printf("  Runtime id:   unavailable (%v)\n", err)
	}

	fmt.Println()
	fmt.Println("Registries:")
	fmt.Printf("  Debugger release repo: %s\n", cfg.Debugger.Repo)
	fmt.Printf("  Server package:        %s\n", cfg.LanguageServer.Package)
	fmt.Printf("  Server feed:           %s\n", cfg.LanguageServer.FeedURL)

	if cfg.Debugger.Path != "" || cfg.LanguageServer.Path != "" {
		fmt.Println()
		fmt.Println("Overrides:")
		if cfg.Debugger.Path != "" {
			fmt.Printf("  Debugger path: %s\n", cfg.Debugger.Path)
		}
		if cfg.LanguageServer.Path != "" {
			fmt.Printf("  Server path:   %s\n", cfg.LanguageServer.Path)
		}
	}

	installs, err := binary.ListInstalls(workDir)
	if err != nil {
		return err
	}

	fmt.Println()
	if len(installs) == 0 {
		fmt.Println("No cached installs in this directory.")
		return nil
	}
	fmt.Println("Cached installs:")
	for _, inst := range installs {
		fmt.Printf("  %-11s %s\n", inst.Component, inst.Version)
	}
	return nil
}

// printInfoHelp prints help for the info command
func printInfoHelp() {
	fmt.Println("Usage: dotnetup info [options]")
	fmt.Println()
	fmt.Println("Show the detected platform, the registry coordinates in effect, and")
	fmt.Println("the tool installs cached in the working directory. No network access.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -h, --help  Show this help message")
}
