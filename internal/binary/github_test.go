package binary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dotnetup/dotnetup/internal/errdefs"
)

const testReleasesJSON = `[
	{
		"tag_name": "3.2.0-preview1",
		"prerelease": true,
		"draft": false,
		"assets": [
			{"name": "netcoredbg-linux-amd64.tar.gz", "browser_download_url": "https://example.invalid/preview"}
		]
	},
	{
		"tag_name": "3.2.0-rc",
		"prerelease": false,
		"draft": true,
		"assets": [
			{"name": "netcoredbg-linux-amd64.tar.gz", "browser_download_url": "https://example.invalid/draft"}
		]
	},
	{
		"tag_name": "3.1.2-1054",
		"prerelease": false,
		"draft": false,
		"assets": []
	},
	{
		"tag_name": "3.1.2-1049",
		"prerelease": false,
		"draft": false,
		"assets": [
			{"name": "netcoredbg-linux-amd64.tar.gz", "browser_download_url": "https://example.invalid/linux-amd64"},
			{"name": "netcoredbg-linux-arm64.tar.gz", "browser_download_url": "https://example.invalid/linux-arm64"},
			{"name": "netcoredbg-osx-amd64.tar.gz", "browser_download_url": "https://example.invalid/osx-amd64"},
			{"name": "netcoredbg-win64.zip", "browser_download_url": "https://example.invalid/win64"}
		]
	}
]`

func TestLatestReleaseSkipsDraftsAndPrereleases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/qwadrox/netcoredbg/releases" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("per_page"); got != "30" {
			t.Errorf("per_page = %q, want 30", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testReleasesJSON))
	}))
	defer server.Close()

	client := NewGitHubClient(WithBaseURL(server.URL))
	release, err := client.LatestRelease(context.Background(), "qwadrox/netcoredbg")
	if err != nil {
		t.Fatalf("LatestRelease: %v", err)
	}

	// Prerelease, draft, and asset-less releases are all skipped; the first
	// stable release that actually has assets wins.
	if release.TagName != "3.1.2-1049" {
		t.Errorf("tag = %q, want 3.1.2-1049", release.TagName)
	}
	if len(release.Assets) != 4 {
		t.Errorf("assets = %d, want 4", len(release.Assets))
	}
}

func TestLatestReleaseAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(testReleasesJSON))
	}))
	defer server.Close()

	client := NewGitHubClient(WithBaseURL(server.URL), WithToken("token123"))
	if _, err := client.LatestRelease(context.Background(), "qwadrox/netcoredbg"); err != nil {
		t.Fatalf("LatestRelease: %v", err)
	}
}

func TestLatestReleaseErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind errdefs.Kind
	}{
		{
			name: "server_error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			wantKind: errdefs.KindRegistryFetch,
		},
		{
			name: "malformed_json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not": "an array"`))
			},
			wantKind: errdefs.KindMetadataParse,
		},
		{
			name: "no_usable_release",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"tag_name": "v1", "prerelease": true, "draft": false, "assets": []}]`))
			},
			wantKind: errdefs.KindMetadataParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewGitHubClient(WithBaseURL(server.URL))
			_, err := client.LatestRelease(context.Background(), "owner/repo")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errdefs.IsKind(err, tt.wantKind) {
				t.Errorf("kind = %v, want %v (err: %v)", errdefs.KindOf(err), tt.wantKind, err)
			}
		})
	}
}

func TestFindAsset(t *testing.T) {
	release := &Release{
		TagName: "3.1.2-1049",
		Assets: []Asset{
			{Name: "netcoredbg-linux-amd64.tar.gz", DownloadURL: "https://example.invalid/a"},
			{Name: "netcoredbg-win64.zip", DownloadURL: "https://example.invalid/b"},
		},
	}

	asset, err := release.FindAsset("netcoredbg-win64.zip")
	if err != nil {
		t.Fatalf("FindAsset: %v", err)
	}
	if asset.DownloadURL != "https://example.invalid/b" {
		t.Errorf("url = %q", asset.DownloadURL)
	}
}

func TestFindAssetMissListsAvailable(t *testing.T) {
	release := &Release{
		TagName: "3.1.2-1049",
		Assets: []Asset{
			{Name: "netcoredbg-linux-amd64.tar.gz"},
			{Name: "netcoredbg-win64.zip"},
		},
	}

	_, err := release.FindAsset("netcoredbg-osx-arm64.tar.gz")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errdefs.IsKind(err, errdefs.KindAssetNotFound) {
		t.Fatalf("kind = %v, want asset not found", errdefs.KindOf(err))
	}

	var derr *errdefs.Error
	if !errors.As(err, &derr) {
		t.Fatalf("error is not *errdefs.Error: %T", err)
	}
	if derr.Expected != "netcoredbg-osx-arm64.tar.gz" {
		t.Errorf("expected = %q", derr.Expected)
	}
	if len(derr.Available) != 2 {
		t.Errorf("available = %v, want both asset names", derr.Available)
	}
}
