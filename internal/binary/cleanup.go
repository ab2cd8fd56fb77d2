package binary

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dotnetup/dotnetup/internal/config"
)

// PruneSiblings removes version directories of the same component other
// than keepName from scanDir. Only entries sharing prefix are touched, so
// the debugger and language-server installs cannot delete each other.
// Pruning is strictly best-effort: every failure is logged and ignored,
// since stale directories never affect the just-completed acquisition.
func PruneSiblings(scanDir, keepName, prefix string, logger config.Logger) {
	if logger == nil {
		logger = config.NopLogger()
	}

	entries, err := os.ReadDir(scanDir)
	if err != nil {
		logger.Warn("skipping stale version cleanup", "dir", scanDir, "error", err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == keepName || !strings.HasPrefix(name, prefix) {
			continue
		}

		path := filepath.Join(scanDir, name)
		if err := os.RemoveAll(path); err != nil {
			logger.Warn("failed to remove stale version directory", "path", path, "error", err)
			continue
		}
		logger.Debug("removed stale version directory", "path", path)
	}
}
