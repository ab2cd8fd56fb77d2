package binary

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotnetup/dotnetup/internal/errdefs"
)

// ArchiveKind identifies the container format of a downloaded artifact.
type ArchiveKind int

const (
	// ArchiveTarGz is a gzip-compressed tarball (Linux/macOS assets).
	ArchiveTarGz ArchiveKind = iota
	// ArchiveZip is a zip container (Windows assets and nupkg packages).
	ArchiveZip
)

// ArchiveKindForAsset infers the archive kind from an asset file name.
func ArchiveKindForAsset(name string) (ArchiveKind, error) {
	switch {
	case strings.HasSuffix(name, ".tar.gz"):
		return ArchiveTarGz, nil
	case strings.HasSuffix(name, ".zip") || strings.HasSuffix(name, ".nupkg"):
		return ArchiveZip, nil
	default:
		return 0, errdefs.Newf(errdefs.KindDownload, "unsupported archive type for asset %q", name)
	}
}

// Extractor handles archive extraction.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks an archive into destDir, dispatching on kind.
func (e *Extractor) Extract(archivePath, destDir string, kind ArchiveKind) error {
	switch kind {
	case ArchiveTarGz:
		return e.extractTarGz(archivePath, destDir)
	case ArchiveZip:
		return e.extractZip(archivePath, destDir)
	default:
		return errdefs.Newf(errdefs.KindDownload, "unknown archive kind %d", kind)
	}
}

// extractTarGz extracts a .tar.gz archive to a destination directory.
func (e *Extractor) extractTarGz(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return errdefs.Wrap(errdefs.KindFilesystem, err, "open archive")
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return errdefs.Wrap(errdefs.KindDownload, err, "create gzip reader")
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errdefs.Wrap(errdefs.KindFilesystem, err, "create dest dir")
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errdefs.Wrap(errdefs.KindDownload, err, "read tar header")
		}

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return errdefs.Wrapf(errdefs.KindFilesystem, err, "create directory %s", target)
			}

		case tar.TypeReg:
			if err := writeFileFrom(target, tarReader, os.FileMode(header.Mode)); err != nil {
				return err
			}

		case tar.TypeSymlink:
			if err := os.Symlink(header.Linkname, target); err != nil {
				return errdefs.Wrapf(errdefs.KindFilesystem, err, "create symlink %s", target)
			}

		default:
			// Skip device nodes and other special entries.
			continue
		}
	}

	return nil
}

// extractZip extracts a zip archive (including nupkg containers) to a
// destination directory.
func (e *Extractor) extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return errdefs.Wrap(errdefs.KindDownload, err, "open zip archive")
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errdefs.Wrap(errdefs.KindFilesystem, err, "create dest dir")
	}

	for _, file := range reader.File {
		target, err := safeJoin(destDir, file.Name)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errdefs.Wrapf(errdefs.KindFilesystem, err, "create directory %s", target)
			}
			continue
		}

		src, err := file.Open()
		if err != nil {
			return errdefs.Wrapf(errdefs.KindDownload, err, "open zip entry %s", file.Name)
		}

		mode := file.Mode()
		if mode == 0 {
			mode = 0644
		}
		writeErr := writeFileFrom(target, src, mode)
		src.Close()
		if writeErr != nil {
			return writeErr
		}
	}

	return nil
}

// safeJoin joins an archive entry name onto destDir, rejecting entries that
// would escape the destination tree.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", errdefs.Newf(errdefs.KindDownload, "illegal file path in archive: %s", name)
	}
	return target, nil
}

// writeFileFrom streams r into a freshly created file at target.
func writeFileFrom(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errdefs.Wrapf(errdefs.KindFilesystem, err, "create parent dir for %s", target)
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errdefs.Wrapf(errdefs.KindFilesystem, err, "create file %s", target)
	}

	if _, err := io.Copy(outFile, r); err != nil {
		outFile.Close()
		return errdefs.Wrapf(errdefs.KindFilesystem, err, "write file %s", target)
	}

	return outFile.Close()
}

// SetExecutable sets executable permissions on a file. Required on
// non-Windows targets before a freshly extracted binary is launched.
func SetExecutable(path string) error {
	if err := os.Chmod(path, 0755); err != nil {
		return errdefs.Wrapf(errdefs.KindFilesystem, err, "set executable on %s", path)
	}
	return nil
}
