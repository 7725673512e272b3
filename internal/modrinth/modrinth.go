// Package modrinth queries the Modrinth read API for version
// visibility. The sync loop uses it to avoid spending packwiz
// invocations on releases that have not propagated upstream yet.
package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Modrinth v2 API root.
const DefaultBaseURL = "https://api.modrinth.com/v2"

// DefaultTimeout bounds a single visibility query.
const DefaultTimeout = 10 * time.Second

// Client queries the Modrinth API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client against the public API with the given
// request timeout (DefaultTimeout when zero).
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// versionRecord is the subset of the version listing we inspect.
type versionRecord struct {
	VersionNumber string `json:"version_number"`
}

// VersionVisible reports whether any published version of the project
// matches the target version string (substring match on the version
// number), filtered by loader and game version. Errors mean "unknown",
// not "absent" — callers should not treat them as a negative signal.
func (c *Client) VersionVisible(ctx context.Context, slug, version, mcVersion, loader string) (bool, error) {
	endpoint := fmt.Sprintf("%s/project/%s/version", c.BaseURL, url.PathEscape(slug))
	query := url.Values{}
	query.Set("loaders", fmt.Sprintf(`["%s"]`, loader))
	query.Set("game_versions", fmt.Sprintf(`["%s"]`, mcVersion))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return false, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("querying modrinth versions for %s: %w", slug, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("modrinth returned %s for %s", resp.Status, slug)
	}

	var versions []versionRecord
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return false, fmt.Errorf("parsing modrinth version list for %s: %w", slug, err)
	}

	for _, v := range versions {
		if strings.Contains(v.VersionNumber, version) {
			return true, nil
		}
	}
	return false, nil
}
