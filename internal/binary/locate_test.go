package binary

import (
	"path/filepath"
	"testing"

	"github.com/dotnetup/dotnetup/internal/errdefs"
	"github.com/dotnetup/dotnetup/internal/platform"
)

func TestFindNamed(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		target   string
		wantPath string // relative to root
		wantErr  bool
	}{
		{
			name: "top_level",
			files: map[string]string{
				"netcoredbg": "bin",
			},
			target:   "netcoredbg",
			wantPath: "netcoredbg",
		},
		{
			name: "nested_three_deep_with_noise",
			files: map[string]string{
				"readme.txt":                 "docs",
				"a/unrelated":                "x",
				"a/b/c/netcoredbg":           "bin",
				"a/b/c/libdbgshim.so":        "lib",
				"other/netcoredbg.something": "not it",
			},
			target:   "netcoredbg",
			wantPath: filepath.Join("a", "b", "c", "netcoredbg"),
		},
		{
			name: "exact_match_only",
			files: map[string]string{
				"dir/netcoredbg.exe": "wrong name",
			},
			target:  "netcoredbg",
			wantErr: true,
		},
		{
			name: "empty_tree",
			files: map[string]string{
				"a/b/.keep": "",
			},
			target:  "netcoredbg",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			got, err := FindNamed(root, tt.target)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errdefs.IsKind(err, errdefs.KindBinaryNotFound) {
					t.Errorf("expected binary not found kind, got %v", errdefs.KindOf(err))
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := filepath.Join(root, tt.wantPath); got != want {
				t.Errorf("FindNamed = %q, want %q", got, want)
			}
		})
	}
}

func TestFindNamedDeepNesting(t *testing.T) {
	// A pathological archive layout must not blow the stack: the
	// traversal is iterative.
	root := t.TempDir()
	deep := ""
	for i := 0; i < 64; i++ {
		deep = filepath.Join(deep, "d")
	}
	writeTree(t, root, map[string]string{
		filepath.Join(deep, "netcoredbg"): "bin",
	})

	got, err := FindNamed(root, "netcoredbg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(got) != "netcoredbg" {
		t.Errorf("unexpected path %q", got)
	}
}

func TestServerBinaryName(t *testing.T) {
	tests := []struct {
		rid      string
		wantName string
		wantKind LaunchKind
	}{
		{rid: platform.RIDAny, wantName: "Microsoft.CodeAnalysis.LanguageServer.dll", wantKind: LaunchManagedPayload},
		{rid: "win-x64", wantName: "Microsoft.CodeAnalysis.LanguageServer.exe", wantKind: LaunchExecutable},
		{rid: "win-arm64", wantName: "Microsoft.CodeAnalysis.LanguageServer.exe", wantKind: LaunchExecutable},
		{rid: "linux-x64", wantName: "Microsoft.CodeAnalysis.LanguageServer", wantKind: LaunchExecutable},
		{rid: "osx-arm64", wantName: "Microsoft.CodeAnalysis.LanguageServer", wantKind: LaunchExecutable},
	}

	for _, tt := range tests {
		t.Run(tt.rid, func(t *testing.T) {
			name, kind := ServerBinaryName(tt.rid)
			if name != tt.wantName || kind != tt.wantKind {
				t.Errorf("ServerBinaryName(%q) = (%q, %v), want (%q, %v)",
					tt.rid, name, kind, tt.wantName, tt.wantKind)
			}
		})
	}
}

func TestLocateServerBinary(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		rid      string
		wantKind LaunchKind
		wantErr  bool
	}{
		{
			name: "native_linux_payload",
			files: map[string]string{
				"tools/net9.0/linux-x64/Microsoft.CodeAnalysis.LanguageServer": "elf",
				"tools/net9.0/linux-x64/some.dependency.dll":                   "dep",
			},
			rid:      "linux-x64",
			wantKind: LaunchExecutable,
		},
		{
			name: "neutral_managed_payload",
			files: map[string]string{
				"tools/net9.0/any/Microsoft.CodeAnalysis.LanguageServer.dll": "il",
			},
			rid:      platform.RIDAny,
			wantKind: LaunchManagedPayload,
		},
		{
			name: "windows_payload",
			files: map[string]string{
				"tools/net9.0/win-x64/Microsoft.CodeAnalysis.LanguageServer.exe": "pe",
			},
			rid:      "win-x64",
			wantKind: LaunchExecutable,
		},
		{
			name: "missing_tools_folder",
			files: map[string]string{
				"lib/whatever.dll": "x",
			},
			rid:     "linux-x64",
			wantErr: true,
		},
		{
			name: "multiple_framework_folders",
			files: map[string]string{
				"tools/net8.0/linux-x64/Microsoft.CodeAnalysis.LanguageServer": "a",
				"tools/net9.0/linux-x64/Microsoft.CodeAnalysis.LanguageServer": "b",
			},
			rid:     "linux-x64",
			wantErr: true,
		},
		{
			name: "binary_missing_from_rid_folder",
			files: map[string]string{
				"tools/net9.0/linux-x64/readme.txt": "no binary here",
			},
			rid:     "linux-x64",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			sp, err := LocateServerBinary(root, tt.rid)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errdefs.IsKind(err, errdefs.KindBinaryNotFound) {
					t.Errorf("expected binary not found kind, got %v", errdefs.KindOf(err))
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sp.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", sp.Kind, tt.wantKind)
			}
			if filepath.Dir(sp.Path) != filepath.Join(root, "tools", "net9.0", tt.rid) {
				t.Errorf("unexpected path %q", sp.Path)
			}
		})
	}
}
