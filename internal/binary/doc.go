// Package binary acquires, versions, caches, and locates the external tool
// binaries dotnetup manages: the netcoredbg debugger, pulled from GitHub
// releases, and the Roslyn language server, pulled from a NuGet v3 flat
// container feed.
//
// # Acquisition pipeline
//
// A caller asks the Manager for a runnable path. The Manager checks, in
// order: a user-supplied override (trusted as-is), the in-memory
// single-assignment cache (revalidated against the filesystem), and an
// on-disk version directory matching the latest remote version. Only when
// all three miss does it download: the archive is staged into a disposable
// directory, extracted, the binary located inside the tree, validated, and
// promoted into a version-named directory that doubles as the durable cache
// key. After a fresh install, stale sibling version directories of the same
// component are pruned best-effort.
//
// # Architecture
//
//   - Manager: orchestration and the cache state machine
//   - GitHubClient: latest-release and asset resolution
//   - NuGetClient: service-index discovery, version listing, nupkg download
//   - Downloader: retrying HTTP transfer with atomic writes
//   - Extractor: tar.gz and zip extraction with traversal guards
//   - FindNamed / LocateServerBinary: payload location inside extracted trees
//   - PathCache: process-lifetime first-writer-wins memoization
//
// All failures carry a kind from internal/errdefs; only cleanup-phase
// filesystem errors are logged and swallowed.
package binary
