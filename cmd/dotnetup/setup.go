package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotnetup/dotnetup/internal/binary"
	"github.com/dotnetup/dotnetup/internal/config"
	"github.com/dotnetup/dotnetup/internal/platform"
)

// configFileName is the optional configuration file looked up in the
// working directory.
const configFileName = "dotnetup.toml"

// newManager wires up the acquisition engine for the current working
// directory: load the config file (the default one may be absent, an
// explicitly named one must exist), detect the platform, and build a
// manager on top of both.
func newManager(ctx context.Context, logger config.Logger, configPath string) (*binary.Manager, config.Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("get working directory: %w", err)
	}

	if configPath == "" {
		configPath = filepath.Join(workDir, configFileName)
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, config.Config{}, fmt.Errorf("config file %s: %w", configPath, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return nil, config.Config{}, err
	}
	logger.Debug("detected platform", "os", info.OS, "arch", info.Arch, "distro", info.Distro)

	m, err := binary.NewManager(binary.ManagerConfig{
		WorkDir:      workDir,
		PlatformInfo: info,
		Config:       cfg,
		Logger:       logger,
	})
	if err != nil {
		return nil, config.Config{}, err
	}
	return m, cfg, nil
}
