package binary

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dotnetup/dotnetup/internal/errdefs"
)

func TestArchiveKindForAsset(t *testing.T) {
	tests := []struct {
		name    string
		want    ArchiveKind
		wantErr bool
	}{
		{name: "netcoredbg-linux-amd64.tar.gz", want: ArchiveTarGz},
		{name: "netcoredbg-win64.zip", want: ArchiveZip},
		{name: "microsoft.codeanalysis.languageserver.5.0.0.nupkg", want: ArchiveZip},
		{name: "netcoredbg.tar.bz2", wantErr: true},
		{name: "netcoredbg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ArchiveKindForAsset(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errdefs.IsKind(err, errdefs.KindDownload) {
					t.Errorf("expected download kind, got %v", errdefs.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ArchiveKindForAsset(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestExtractTarGz(t *testing.T) {
	archivePath := createTestTarGz(t, map[string]string{
		"netcoredbg/netcoredbg":       "binary content",
		"netcoredbg/libdbgshim.so":    "library content",
		"netcoredbg/ManagedPart.dll":  "managed content",
		"netcoredbg/docs/LICENSE.txt": "license",
	})

	destDir := t.TempDir()
	if err := NewExtractor().Extract(archivePath, destDir, ArchiveTarGz); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for name, wantContent := range map[string]string{
		"netcoredbg/netcoredbg":       "binary content",
		"netcoredbg/docs/LICENSE.txt": "license",
	} {
		data, err := os.ReadFile(filepath.Join(destDir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != wantContent {
			t.Errorf("%s content = %q, want %q", name, data, wantContent)
		}
	}
}

func TestExtractTarGzPreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes not preserved on windows")
	}

	archivePath := createTestTarGz(t, map[string]string{
		"netcoredbg": "binary",
	})

	destDir := t.TempDir()
	if err := NewExtractor().Extract(archivePath, destDir, ArchiveTarGz); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	info, err := os.Stat(filepath.Join(destDir, "netcoredbg"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("extracted binary is not executable: %v", info.Mode())
	}
}

func TestExtractZip(t *testing.T) {
	archivePath := createTestZip(t, map[string]string{
		"tools/net9.0/linux-x64/Microsoft.CodeAnalysis.LanguageServer": "elf",
		"tools/net9.0/linux-x64/server.dll":                            "il",
		"icon.png": "png",
	})

	destDir := t.TempDir()
	if err := NewExtractor().Extract(archivePath, destDir, ArchiveZip); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(destDir, "tools", "net9.0", "linux-x64", "Microsoft.CodeAnalysis.LanguageServer"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(data) != "elf" {
		t.Errorf("content = %q, want %q", data, "elf")
	}
}

func TestExtractRejectsTraversal(t *testing.T) {
	archivePath := createTestTarGz(t, map[string]string{
		"../escape": "outside",
	})

	destDir := t.TempDir()
	err := NewExtractor().Extract(archivePath, destDir, ArchiveTarGz)
	if err == nil {
		t.Fatal("expected error for path traversal entry")
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(destDir), "escape")); statErr == nil {
		t.Error("traversal entry was written outside the destination")
	}
}

func TestExtractCorruptArchive(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "bad.tar.gz")
	if err := os.WriteFile(archivePath, []byte("not a gzip stream"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := NewExtractor().Extract(archivePath, t.TempDir(), ArchiveTarGz)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errdefs.IsKind(err, errdefs.KindDownload) {
		t.Errorf("expected download kind, got %v", errdefs.KindOf(err))
	}
}

func TestSetExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod is a no-op on windows")
	}

	path := filepath.Join(t.TempDir(), "bin")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := SetExecutable(path); err != nil {
		t.Fatalf("SetExecutable: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}
