package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dotnetup/dotnetup/internal/config"
	"github.com/dotnetup/dotnetup/internal/errdefs"
)

const (
	// DefaultTimeout is the HTTP request timeout for artifact transfers.
	DefaultTimeout = 5 * time.Minute
	// DefaultRetries is the number of download retries.
	DefaultRetries = 3
	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "dotnetup/1.0"
)

// Downloader performs HTTP artifact transfers with bounded retries. It is
// the engine's "download" primitive; retry policy for registry metadata
// lives with callers, not here.
type Downloader struct {
	client    *http.Client
	extractor *Extractor
	userAgent string
	retries   int
	logger    config.Logger
}

// NewDownloader creates a downloader. A nil logger disables logging.
func NewDownloader(logger config.Logger) *Downloader {
	if logger == nil {
		logger = config.NopLogger()
	}
	return &Downloader{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		extractor: NewExtractor(),
		userAgent: DefaultUserAgent,
		retries:   DefaultRetries,
		logger:    logger,
	}
}

// DownloadToFile downloads a URL to destPath, retrying with exponential
// backoff. The write is atomic: data lands in a temp file that is renamed
// into place only on success.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) error {
	var lastErr error

	for attempt := 0; attempt <= d.retries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			d.logger.Debug("retrying download", "url", url, "attempt", attempt, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := d.downloadOnce(ctx, url, destPath)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return errdefs.Wrapf(errdefs.KindDownload, lastErr, "download failed after %d retries", d.retries)
}

// downloadOnce performs a single download attempt.
func (d *Downloader) downloadOnce(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errdefs.Wrap(errdefs.KindDownload, err, "create request")
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return errdefs.Wrap(errdefs.KindDownload, err, "execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errdefs.Newf(errdefs.KindDownload, "unexpected status code: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errdefs.Wrap(errdefs.KindFilesystem, err, "create dest dir")
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return errdefs.Wrap(errdefs.KindFilesystem, err, "create temp file")
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return errdefs.Wrap(errdefs.KindDownload, err, "copy response body")
	}

	if err := tmpFile.Close(); err != nil {
		return errdefs.Wrap(errdefs.KindFilesystem, err, "close temp file")
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return errdefs.Wrap(errdefs.KindFilesystem, err, "rename temp file")
	}

	cleanupNeeded = false
	return nil
}

// DownloadAndExtract downloads an archive and unpacks it into destDir. This
// is the engine's "download-and-extract" primitive: the archive itself is
// kept only for the duration of the call.
func (d *Downloader) DownloadAndExtract(ctx context.Context, url, destDir string, kind ArchiveKind) error {
	archivePath := filepath.Join(destDir, ".archive.partial")

	if err := d.DownloadToFile(ctx, url, archivePath); err != nil {
		return err
	}
	defer os.Remove(archivePath)

	if err := d.extractor.Extract(archivePath, destDir, kind); err != nil {
		return fmt.Errorf("extract %s: %w", filepath.Base(url), err)
	}
	return nil
}

// fileExists reports whether path is a non-empty regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}
