package binary

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dotnetup/dotnetup/internal/errdefs"
)

// Install is one on-disk version directory.
type Install struct {
	Component Component
	Version   string
	Dir       string
}

// ListInstalls enumerates the version directories under workDir, for both
// components. A missing workDir yields an empty list.
func ListInstalls(workDir string) ([]Install, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errdefs.Wrapf(errdefs.KindFilesystem, err, "read directory %s", workDir)
	}

	var installs []Install
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasPrefix(name, debuggerDirPrefix):
			installs = append(installs, Install{
				Component: ComponentDebugger,
				Version:   strings.TrimPrefix(name, debuggerDirPrefix),
				Dir:       filepath.Join(workDir, name),
			})
		case strings.HasPrefix(name, serverDirPrefix):
			installs = append(installs, Install{
				Component: ComponentServer,
				Version:   strings.TrimPrefix(name, serverDirPrefix),
				Dir:       filepath.Join(workDir, name),
			})
		}
	}
	return installs, nil
}

// RemoveInstalls deletes the version directories under workDir, sparing the
// one named keepName when non-empty, and returns what was removed. Unlike
// pruning this is strict: any removal failure is reported to the caller.
func RemoveInstalls(workDir, keepName string) ([]Install, error) {
	installs, err := ListInstalls(workDir)
	if err != nil {
		return nil, err
	}

	var removed []Install
	for _, inst := range installs {
		if keepName != "" && filepath.Base(inst.Dir) == keepName {
			continue
		}
		if err := os.RemoveAll(inst.Dir); err != nil {
			return removed, errdefs.Wrapf(errdefs.KindFilesystem, err, "remove %s", inst.Dir)
		}
		removed = append(removed, inst)
	}
	return removed, nil
}
