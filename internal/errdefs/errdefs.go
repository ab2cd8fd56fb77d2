// Package errdefs defines the closed set of error kinds produced by the
// acquisition engine. Every failure that crosses a package boundary is an
// *Error carrying one of these kinds plus structured context (the asset name
// that was expected, the names that were available, the filesystem path
// involved), so callers and tests can inspect failures programmatically
// instead of matching on message text.
package errdefs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an acquisition failure.
type Kind int

const (
	// KindUnknown is the zero kind, reported for errors that did not
	// originate in this module.
	KindUnknown Kind = iota
	// KindUnsupportedPlatform indicates the running OS/arch pair has no
	// remote artifact (e.g. 32-bit x86).
	KindUnsupportedPlatform
	// KindRegistryFetch indicates a network or transport failure while
	// talking to a registry.
	KindRegistryFetch
	// KindMetadataParse indicates malformed registry metadata (bad JSON,
	// missing expected fields).
	KindMetadataParse
	// KindAssetNotFound indicates the registry has no asset matching the
	// platform-resolved name.
	KindAssetNotFound
	// KindDownload indicates an artifact download failed.
	KindDownload
	// KindFilesystem indicates a directory or file operation failed.
	KindFilesystem
	// KindBinaryNotFound indicates the locator exhausted an extracted tree
	// without finding the expected binary, or the tree layout was ambiguous.
	KindBinaryNotFound
	// KindVersionParse indicates a version string could not be parsed.
	KindVersionParse
)

// String returns a short stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedPlatform:
		return "unsupported platform"
	case KindRegistryFetch:
		return "registry fetch"
	case KindMetadataParse:
		return "metadata parse"
	case KindAssetNotFound:
		return "asset not found"
	case KindDownload:
		return "download"
	case KindFilesystem:
		return "filesystem"
	case KindBinaryNotFound:
		return "binary not found"
	case KindVersionParse:
		return "version parse"
	default:
		return "unknown"
	}
}

// Error is a classified acquisition failure. Msg is always set; the
// remaining fields are populated when they add diagnostic value.
type Error struct {
	Kind      Kind
	Msg       string
	Expected  string   // name the engine was looking for
	Available []string // names that were actually present
	Path      string   // filesystem path involved
	Err       error    // wrapped cause
}

// Error formats the failure with all attached context. The available-name
// enumeration is part of the contract for asset lookups: it is what makes a
// platform mismatch diagnosable from the message alone.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	if e.Expected != "" {
		fmt.Fprintf(&b, ": looking for %q", e.Expected)
	}
	if len(e.Available) > 0 {
		fmt.Fprintf(&b, ", available: [%s]", strings.Join(e.Available, ", "))
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (path: %s)", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Wrapf attaches a kind and formatted message to an underlying cause.
func Wrapf(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from an error chain. Errors that do not carry an
// *Error anywhere in the chain report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
