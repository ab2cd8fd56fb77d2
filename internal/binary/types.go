package binary

// Component identifies a tool managed by dotnetup.
type Component string

const (
	// ComponentDebugger is the netcoredbg debug adapter.
	ComponentDebugger Component = "netcoredbg"
	// ComponentServer is the Roslyn language server.
	ComponentServer Component = "roslyn"
)

// String returns the string representation of the component.
func (c Component) String() string {
	return string(c)
}

// Version directory naming. The directory name is both the cache key and
// the install marker: if the expected binary exists beneath it, the install
// is considered complete.
const (
	debuggerDirPrefix = "netcoredbg_v"
	serverDirPrefix   = "roslyn-"
)

// ResolvedVersion is the outcome of a release-registry lookup: the version
// tag and the download URL of the platform-matched asset.
type ResolvedVersion struct {
	Tag         string
	DownloadURL string
}

// LaunchKind tells the caller how a resolved binary must be invoked.
type LaunchKind int

const (
	// LaunchExecutable means the path is launched directly.
	LaunchExecutable LaunchKind = iota
	// LaunchManagedPayload means the path is a managed assembly that must
	// be launched through the dotnet host.
	LaunchManagedPayload
)

// String returns a human-readable name for the launch kind.
func (k LaunchKind) String() string {
	switch k {
	case LaunchExecutable:
		return "executable"
	case LaunchManagedPayload:
		return "managed payload"
	default:
		return "unknown"
	}
}

// ServerPath is a resolved language-server binary plus its launch kind.
type ServerPath struct {
	Path string
	Kind LaunchKind
}
