package binary

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotnetup/dotnetup/internal/config"
	"github.com/dotnetup/dotnetup/internal/errdefs"
	"github.com/dotnetup/dotnetup/internal/platform"
)

// debuggerBinaryBase is the netcoredbg executable's base name.
const debuggerBinaryBase = "netcoredbg"

// Manager orchestrates acquisition of both components: resolve the latest
// remote version, reuse the on-disk install when present, otherwise
// download, extract, locate, validate, and prune older versions.
type Manager struct {
	workDir      string
	cfg          config.Config
	platformInfo *platform.Info
	github       *GitHubClient
	nuget        *NuGetClient
	downloader   *Downloader

	debuggerCache PathCache
	serverCache   PathCache
	logger        config.Logger
}

// ManagerConfig holds construction parameters for a Manager.
type ManagerConfig struct {
	// WorkDir is the directory version directories live under. Callers
	// pass the process working directory; tests pass a temp dir.
	WorkDir string
	// PlatformInfo is the detected platform.
	PlatformInfo *platform.Info
	// Config carries registry coordinates and user overrides.
	Config config.Config
	// Logger receives acquisition progress. Optional.
	Logger config.Logger
	// GitHub overrides the release-registry client. Optional.
	GitHub *GitHubClient
	// NuGet overrides the package-feed client. Optional.
	NuGet *NuGetClient
	// DebuggerCache and ServerCache override the in-memory path cells.
	// Optional; fresh single-assignment cells by default.
	DebuggerCache PathCache
	ServerCache   PathCache
}

// NewManager creates a manager for the given working directory and platform.
func NewManager(mc ManagerConfig) (*Manager, error) {
	if mc.WorkDir == "" {
		return nil, fmt.Errorf("WorkDir is required")
	}
	if mc.PlatformInfo == nil {
		return nil, fmt.Errorf("PlatformInfo is required")
	}

	logger := mc.Logger
	if logger == nil {
		logger = config.NopLogger()
	}

	downloader := NewDownloader(logger)

	github := mc.GitHub
	if github == nil {
		github = NewGitHubClient()
	}

	nuget := mc.NuGet
	if nuget == nil {
		nuget = NewNuGetClient(mc.Config.LanguageServer.FeedURL, downloader)
	}

	debuggerCache := mc.DebuggerCache
	if debuggerCache == nil {
		debuggerCache = NewPathCache()
	}
	serverCache := mc.ServerCache
	if serverCache == nil {
		serverCache = NewPathCache()
	}

	return &Manager{
		workDir:       mc.WorkDir,
		cfg:           mc.Config,
		platformInfo:  mc.PlatformInfo,
		github:        github,
		nuget:         nuget,
		downloader:    downloader,
		debuggerCache: debuggerCache,
		serverCache:   serverCache,
		logger:        logger,
	}, nil
}

// DebuggerPath returns a runnable absolute path to the netcoredbg binary,
// downloading the latest release if no usable install exists. A non-empty
// override short-circuits everything and is returned unvalidated: the
// caller is trusted.
func (m *Manager) DebuggerPath(ctx context.Context, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if cached, ok := m.debuggerCache.Get(); ok {
		if fileExists(cached) {
			return cached, nil
		}
		m.logger.Debug("cached debugger path no longer exists", "path", cached)
	}

	suffix, err := platform.AssetSuffix(m.platformInfo)
	if err != nil {
		return "", err
	}
	assetName := debuggerBinaryBase + "-" + suffix
	exeName := m.platformInfo.ExecutableName(debuggerBinaryBase)

	release, err := m.github.LatestRelease(ctx, m.cfg.Debugger.Repo)
	if err != nil {
		return "", fmt.Errorf("resolve latest debugger release: %w", err)
	}
	m.logger.Debug("resolved debugger release", "tag", release.TagName)

	dirName := debuggerDirPrefix + release.TagName
	versionDir := filepath.Join(m.workDir, dirName)
	binaryPath := filepath.Join(versionDir, exeName)

	if !fileExists(binaryPath) {
		asset, err := release.FindAsset(assetName)
		if err != nil {
			return "", err
		}

		if err := m.installDebugger(ctx, asset, dirName, versionDir, exeName); err != nil {
			return "", fmt.Errorf("acquire %s: %w", ComponentDebugger, err)
		}

		PruneSiblings(m.workDir, dirName, debuggerDirPrefix, m.logger)
	}

	if err := validateBinary(binaryPath); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(binaryPath)
	if err != nil {
		return "", errdefs.Wrapf(errdefs.KindFilesystem, err, "resolve absolute path for %s", binaryPath)
	}

	m.debuggerCache.TrySet(abs)
	return abs, nil
}

// installDebugger runs the download pipeline for one release asset: stage,
// extract, find the executable anywhere in the tree, then flatten its
// directory into the version directory.
func (m *Manager) installDebugger(ctx context.Context, asset *Asset, dirName, versionDir, exeName string) error {
	kind, err := ArchiveKindForAsset(asset.Name)
	if err != nil {
		return err
	}

	m.logger.Info("downloading debugger", "asset", asset.Name)

	err = WithStagingDir(m.workDir, dirName+"_", func(staging string) error {
		if err := m.downloader.DownloadAndExtract(ctx, asset.DownloadURL, staging, kind); err != nil {
			return err
		}

		found, err := FindNamed(staging, exeName)
		if err != nil {
			return err
		}

		// The binary's directory becomes the install, regardless of how
		// deeply the archive nested it.
		return copyDirContents(filepath.Dir(found), versionDir)
	})
	if err != nil {
		return err
	}

	binaryPath := filepath.Join(versionDir, exeName)
	if !fileExists(binaryPath) {
		return &errdefs.Error{
			Kind:     errdefs.KindBinaryNotFound,
			Msg:      "debugger executable missing after install",
			Expected: exeName,
			Path:     versionDir,
		}
	}

	if !m.platformInfo.IsWindows() {
		if err := SetExecutable(binaryPath); err != nil {
			return err
		}
	}
	return nil
}

// LanguageServerPath returns the resolved Roslyn language server binary and
// how to launch it. A non-empty override is trusted as-is, with the launch
// kind inferred from its extension.
func (m *Manager) LanguageServerPath(ctx context.Context, override string) (*ServerPath, error) {
	if override != "" {
		return &ServerPath{Path: override, Kind: launchKindForPath(override)}, nil
	}

	rid, err := platform.RuntimeIdentifier(m.platformInfo)
	if err != nil {
		return nil, err
	}

	if cached, ok := m.serverCache.Get(); ok {
		if fileExists(cached) {
			return &ServerPath{Path: cached, Kind: launchKindForPath(cached)}, nil
		}
		m.logger.Debug("cached server path no longer exists", "path", cached)
	}

	pkg := m.cfg.LanguageServer.Package
	ver, err := m.nuget.LatestVersion(ctx, pkg)
	if err != nil {
		return nil, fmt.Errorf("resolve latest server version: %w", err)
	}
	m.logger.Debug("resolved server version", "package", pkg, "version", ver)

	dirName := serverDirPrefix + ver
	versionDir := filepath.Join(m.workDir, dirName)

	sp, err := LocateServerBinary(versionDir, rid)
	if err != nil {
		if err := m.installServer(ctx, pkg, ver, rid, versionDir); err != nil {
			return nil, fmt.Errorf("acquire %s: %w", ComponentServer, err)
		}

		sp, err = LocateServerBinary(versionDir, rid)
		if err != nil {
			return nil, err
		}

		PruneSiblings(m.workDir, dirName, serverDirPrefix, m.logger)
	}

	if sp.Kind == LaunchExecutable && !m.platformInfo.IsWindows() {
		if err := SetExecutable(sp.Path); err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(sp.Path)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.KindFilesystem, err, "resolve absolute path for %s", sp.Path)
	}
	sp.Path = abs

	m.serverCache.TrySet(abs)
	return sp, nil
}

// installServer downloads one package version into a staging directory,
// verifies the payload layout, and promotes the tree to the version
// directory.
func (m *Manager) installServer(ctx context.Context, pkg, ver, rid, versionDir string) error {
	m.logger.Info("downloading language server", "package", pkg, "version", ver)

	return WithStagingDir(m.workDir, serverDirPrefix+ver+"_", func(staging string) error {
		if err := m.nuget.DownloadAndExtract(ctx, pkg, ver, staging); err != nil {
			return err
		}

		// Validate before promotion so a broken payload never becomes a
		// version directory that later runs would trust.
		if _, err := LocateServerBinary(staging, rid); err != nil {
			return err
		}

		if err := os.Rename(staging, versionDir); err != nil {
			// A concurrent process may have promoted the same version
			// already; otherwise fall back to copying across filesystems.
			if fileExists(filepath.Join(versionDir, "tools")) {
				return nil
			}
			return copyDirContents(staging, versionDir)
		}
		return nil
	})
}

// launchKindForPath infers how a user-supplied server path must be invoked.
func launchKindForPath(path string) LaunchKind {
	if strings.EqualFold(filepath.Ext(path), ".dll") {
		return LaunchManagedPayload
	}
	return LaunchExecutable
}

// validateBinary checks that the resolved path is a usable regular file.
func validateBinary(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &errdefs.Error{
			Kind: errdefs.KindBinaryNotFound,
			Msg:  "binary not found",
			Path: path,
			Err:  err,
		}
	}
	if !info.Mode().IsRegular() {
		return &errdefs.Error{
			Kind: errdefs.KindBinaryNotFound,
			Msg:  "binary path is not a regular file",
			Path: path,
		}
	}
	return nil
}

// copyDirContents copies everything under srcDir into destDir, preserving
// file modes and symlinks.
func copyDirContents(srcDir, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errdefs.Wrapf(errdefs.KindFilesystem, err, "create directory %s", destDir)
	}

	err := filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destDir, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0755)
		case d.Type()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target)
		}
	})
	if err != nil {
		return errdefs.Wrapf(errdefs.KindFilesystem, err, "copy %s to %s", srcDir, destDir)
	}
	return nil
}

// copyFile copies a single regular file, carrying over its mode.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
