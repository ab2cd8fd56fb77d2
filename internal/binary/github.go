package binary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dotnetup/dotnetup/internal/errdefs"
)

const (
	// githubAPIBase is the production GitHub API endpoint.
	githubAPIBase = "https://api.github.com"

	// releasesPerPage is the number of releases fetched when resolving the
	// latest stable release.
	releasesPerPage = 30

	// maxMetadataBytes caps registry metadata responses (10 MB) so a
	// malformed or hostile endpoint cannot exhaust memory.
	maxMetadataBytes = 10 << 20
)

type (
	// Release is a release-registry entry with its downloadable assets.
	Release struct {
		TagName    string
		Prerelease bool
		Draft      bool
		Assets     []Asset
	}

	// Asset is a named downloadable file attached to a release.
	Asset struct {
		Name        string
		DownloadURL string
	}

	// githubRelease is the JSON wire format of a release.
	githubRelease struct {
		TagName    string        `json:"tag_name"`
		Prerelease bool          `json:"prerelease"`
		Draft      bool          `json:"draft"`
		Assets     []githubAsset `json:"assets"`
	}

	// githubAsset is the JSON wire format of a release asset.
	githubAsset struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	}

	// GitHubClient queries a GitHub-style release registry.
	GitHubClient struct {
		httpClient *http.Client
		baseURL    string
		userAgent  string
		token      string
	}

	// GitHubOption configures a GitHubClient during construction.
	GitHubOption func(*GitHubClient)
)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) GitHubOption {
	return func(g *GitHubClient) {
		g.httpClient = c
	}
}

// WithBaseURL overrides the API base URL, primarily for test servers.
func WithBaseURL(base string) GitHubOption {
	return func(g *GitHubClient) {
		g.baseURL = strings.TrimRight(base, "/")
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) GitHubOption {
	return func(g *GitHubClient) {
		g.userAgent = ua
	}
}

// WithToken sets a personal access token for authenticated requests.
func WithToken(token string) GitHubOption {
	return func(g *GitHubClient) {
		g.token = token
	}
}

// NewGitHubClient creates a release-registry client with sensible defaults.
func NewGitHubClient(opts ...GitHubOption) *GitHubClient {
	c := &GitHubClient{
		httpClient: http.DefaultClient,
		baseURL:    githubAPIBase,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestRelease resolves the newest release of ownerRepo that is neither a
// draft nor a prerelease and carries at least one asset. The registry
// returns releases newest-first, so the first entry passing the filter is
// the answer.
func (c *GitHubClient) LatestRelease(ctx context.Context, ownerRepo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases?per_page=%d", c.baseURL, ownerRepo, releasesPerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.KindRegistryFetch, err, "create release request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errdefs.Wrapf(errdefs.KindRegistryFetch, err, "fetch releases for %s", ownerRepo)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errdefs.Newf(errdefs.KindRegistryFetch,
			"fetch releases for %s: unexpected status %d", ownerRepo, resp.StatusCode)
	}

	var raw []githubRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxMetadataBytes)).Decode(&raw); err != nil {
		return nil, errdefs.Wrapf(errdefs.KindMetadataParse, err, "decode releases for %s", ownerRepo)
	}

	for _, gr := range raw {
		if gr.Draft || gr.Prerelease || len(gr.Assets) == 0 {
			continue
		}
		return toRelease(gr), nil
	}

	return nil, errdefs.Newf(errdefs.KindMetadataParse,
		"no stable release with assets found for %s", ownerRepo)
}

// FindAsset returns the single asset whose name equals name exactly. No
// fuzzy matching: a miss enumerates every available asset name so a
// platform mismatch is diagnosable from the message alone.
func (r *Release) FindAsset(name string) (*Asset, error) {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i], nil
		}
	}

	available := make([]string, 0, len(r.Assets))
	for _, a := range r.Assets {
		available = append(available, a.Name)
	}

	return nil, &errdefs.Error{
		Kind:      errdefs.KindAssetNotFound,
		Msg:       "no compatible asset found for platform in release " + r.TagName,
		Expected:  name,
		Available: available,
	}
}

// toRelease converts the wire format to the exported type.
func toRelease(gr githubRelease) *Release {
	assets := make([]Asset, 0, len(gr.Assets))
	for _, ga := range gr.Assets {
		assets = append(assets, Asset{Name: ga.Name, DownloadURL: ga.BrowserDownloadURL})
	}
	return &Release{
		TagName:    gr.TagName,
		Prerelease: gr.Prerelease,
		Draft:      gr.Draft,
		Assets:     assets,
	}
}
