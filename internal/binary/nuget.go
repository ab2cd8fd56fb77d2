package binary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dotnetup/dotnetup/internal/errdefs"
	"github.com/dotnetup/dotnetup/internal/version"
)

// packageBaseAddressType is the resource type tag identifying the flat
// container base address in a NuGet v3 service index.
const packageBaseAddressType = "PackageBaseAddress/3.0.0"

type (
	// nugetServiceIndex is the JSON wire format of a v3 service index.
	nugetServiceIndex struct {
		Resources []nugetResource `json:"resources"`
	}

	nugetResource struct {
		ID   string `json:"@id"`
		Type string `json:"@type"`
	}

	// nugetVersionIndex is the JSON wire format of a per-package version
	// listing ({base}/{id}/index.json).
	nugetVersionIndex struct {
		Versions []string `json:"versions"`
	}

	// NuGetClient talks to a NuGet v3 package feed. The flat container base
	// address is discovered from the service index once per client and
	// memoized, so repeated version lookups and downloads cost a single
	// discovery round trip per process.
	NuGetClient struct {
		httpClient      *http.Client
		serviceIndexURL string
		userAgent       string
		downloader      *Downloader

		mu          sync.Mutex
		packageBase string
	}

	// NuGetOption configures a NuGetClient during construction.
	NuGetOption func(*NuGetClient)
)

// WithNuGetHTTPClient sets a custom HTTP client for metadata fetches.
func WithNuGetHTTPClient(c *http.Client) NuGetOption {
	return func(n *NuGetClient) {
		n.httpClient = c
	}
}

// WithNuGetUserAgent sets the User-Agent header for metadata fetches.
func WithNuGetUserAgent(ua string) NuGetOption {
	return func(n *NuGetClient) {
		n.userAgent = ua
	}
}

// NewNuGetClient creates a feed client rooted at the given service index.
// The downloader handles artifact transfers; a nil downloader gets a
// default one with logging disabled.
func NewNuGetClient(serviceIndexURL string, downloader *Downloader, opts ...NuGetOption) *NuGetClient {
	if downloader == nil {
		downloader = NewDownloader(nil)
	}
	c := &NuGetClient{
		httpClient:      http.DefaultClient,
		serviceIndexURL: serviceIndexURL,
		userAgent:       DefaultUserAgent,
		downloader:      downloader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestVersion fetches the package's version index and returns the maximum
// version. Prereleases participate: whatever orders highest wins.
func (c *NuGetClient) LatestVersion(ctx context.Context, packageID string) (string, error) {
	base, err := c.ensurePackageBase(ctx)
	if err != nil {
		return "", err
	}

	lowerID := strings.ToLower(packageID)
	url := fmt.Sprintf("%s/%s/index.json", base, lowerID)

	var index nugetVersionIndex
	if err := c.getJSON(ctx, url, &index); err != nil {
		return "", fmt.Errorf("fetch version index for %s: %w", packageID, err)
	}
	if len(index.Versions) == 0 {
		return "", errdefs.Newf(errdefs.KindMetadataParse,
			"no versions listed for package %s", packageID)
	}

	max, err := version.SelectMax(index.Versions)
	if err != nil {
		return "", fmt.Errorf("select version for %s: %w", packageID, err)
	}
	return max, nil
}

// DownloadAndExtract downloads one package version and unpacks the nupkg
// container into destDir. The artifact URL is deterministic:
// {base}/{id}/{version}/{id}.{version}.nupkg, all lower-cased per feed
// convention.
func (c *NuGetClient) DownloadAndExtract(ctx context.Context, packageID, ver, destDir string) error {
	base, err := c.ensurePackageBase(ctx)
	if err != nil {
		return err
	}

	lowerID := strings.ToLower(packageID)
	lowerVer := strings.ToLower(ver)
	url := fmt.Sprintf("%s/%s/%s/%s.%s.nupkg", base, lowerID, lowerVer, lowerID, lowerVer)

	if err := c.downloader.DownloadAndExtract(ctx, url, destDir, ArchiveZip); err != nil {
		return fmt.Errorf("download package %s %s: %w", packageID, ver, err)
	}
	return nil
}

// ensurePackageBase discovers and memoizes the flat container base address.
func (c *NuGetClient) ensurePackageBase(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.packageBase != "" {
		return c.packageBase, nil
	}

	var index nugetServiceIndex
	if err := c.getJSON(ctx, c.serviceIndexURL, &index); err != nil {
		return "", fmt.Errorf("fetch service index: %w", err)
	}

	for _, res := range index.Resources {
		if res.Type == packageBaseAddressType && res.ID != "" {
			c.packageBase = strings.TrimRight(res.ID, "/")
			return c.packageBase, nil
		}
	}

	return "", &errdefs.Error{
		Kind:     errdefs.KindMetadataParse,
		Msg:      "service index has no package content resource",
		Expected: packageBaseAddressType,
	}
}

// getJSON fetches a metadata document and decodes it into v.
func (c *NuGetClient) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errdefs.Wrap(errdefs.KindRegistryFetch, err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errdefs.Wrapf(errdefs.KindRegistryFetch, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errdefs.Newf(errdefs.KindRegistryFetch,
			"fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataBytes)).Decode(v); err != nil {
		return errdefs.Wrapf(errdefs.KindMetadataParse, err, "decode %s", filepath.Base(url))
	}
	return nil
}
