package binary

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dotnetup/dotnetup/internal/errdefs"
	"github.com/dotnetup/dotnetup/internal/platform"
)

// serverBinaryBase is the fixed base name of the Roslyn language server
// binary inside a package payload.
const serverBinaryBase = "Microsoft.CodeAnalysis.LanguageServer"

// FindNamed searches the directory tree rooted at rootDir for a regular
// file whose name equals exactName exactly. The traversal is an explicit
// worklist rather than recursion, so adversarially deep archive nesting
// cannot grow the call stack. The first match wins; absent a match the
// whole tree is visited before failing.
func FindNamed(rootDir, exactName string) (string, error) {
	stack := []string{rootDir}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", errdefs.Wrapf(errdefs.KindFilesystem, err, "read directory %s", dir)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				stack = append(stack, path)
				continue
			}
			if entry.Name() == exactName && entry.Type().IsRegular() {
				return path, nil
			}
		}
	}

	return "", &errdefs.Error{
		Kind:     errdefs.KindBinaryNotFound,
		Msg:      "binary not found in extracted content",
		Expected: exactName,
		Path:     rootDir,
	}
}

// ServerBinaryName resolves the file name and launch kind of the language
// server for a runtime identifier. The neutral RID ships a managed assembly
// that needs the dotnet host; Windows RIDs ship a self-contained .exe;
// everything else ships a bare native executable.
func ServerBinaryName(rid string) (string, LaunchKind) {
	switch {
	case rid == platform.RIDAny:
		return serverBinaryBase + ".dll", LaunchManagedPayload
	case strings.HasPrefix(rid, "win-"):
		return serverBinaryBase + ".exe", LaunchExecutable
	default:
		return serverBinaryBase, LaunchExecutable
	}
}

// LocateServerBinary finds the language server inside an extracted package
// tree. Unlike FindNamed this is structural: the payload always lives at
// tools/{tfm}/{rid}/, where exactly one target-framework folder must exist
// under tools. Zero or multiple candidates is an error naming the folder.
func LocateServerBinary(extractDir, rid string) (*ServerPath, error) {
	toolsDir := filepath.Join(extractDir, "tools")

	entries, err := os.ReadDir(toolsDir)
	if err != nil {
		return nil, &errdefs.Error{
			Kind: errdefs.KindBinaryNotFound,
			Msg:  "package payload has no tools folder",
			Path: toolsDir,
			Err:  err,
		}
	}

	var frameworks []string
	for _, entry := range entries {
		if entry.IsDir() {
			frameworks = append(frameworks, entry.Name())
		}
	}
	if len(frameworks) != 1 {
		return nil, &errdefs.Error{
			Kind:      errdefs.KindBinaryNotFound,
			Msg:       "expected exactly one target framework folder under tools",
			Path:      toolsDir,
			Available: frameworks,
		}
	}

	name, kind := ServerBinaryName(rid)
	binaryPath := filepath.Join(toolsDir, frameworks[0], rid, name)

	info, err := os.Stat(binaryPath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &errdefs.Error{
			Kind:     errdefs.KindBinaryNotFound,
			Msg:      "language server binary missing from package payload",
			Expected: name,
			Path:     filepath.Join(toolsDir, frameworks[0], rid),
			Err:      err,
		}
	}

	return &ServerPath{Path: binaryPath, Kind: kind}, nil
}
