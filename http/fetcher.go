// Package http provides an HTTP-based implementation of apidex.Fetcher
// for downloading documentation files, with a GitHub contents-API
// fallback for files that are not publicly readable via their raw URL.
package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/apidex/apidex"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements apidex.Fetcher at compile time.
var _ apidex.Fetcher = (*Fetcher)(nil)

// rawGitHubRe matches raw.githubusercontent.com file URLs.
var rawGitHubRe = regexp.MustCompile(`^https://raw\.githubusercontent\.com/([^/]+)/([^/]+)/([^/]+)/(.+)$`)

// Fetcher retrieves raw document bytes from URLs. When a
// raw.githubusercontent.com URL answers 404 and a GitHub token is
// configured, the fetch retries through the GitHub contents API, which
// can read private repositories.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	githubToken string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithGitHubToken enables the GitHub contents-API fallback with the
// given token.
func WithGitHubToken(token string) Option {
	return func(f *Fetcher) { f.githubToken = token }
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the document at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		if apiURL := RawURLToAPIURL(url); apiURL != "" && f.githubToken != "" {
			return f.fetchViaGitHubAPI(ctx, apiURL)
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apidex.Errorf(apidex.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// RawURLToAPIURL converts a raw.githubusercontent.com URL to the
// equivalent GitHub contents-API URL, or "" for any other URL.
func RawURLToAPIURL(rawURL string) string {
	m := rawGitHubRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	owner, repo, ref, path := m[1], m[2], m[3], m[4]
	return fmt.Sprintf("https://api.github.com/repos/%s/%s/contents/%s?ref=%s", owner, repo, path, ref)
}

// fetchViaGitHubAPI fetches file content through the GitHub contents
// API and decodes the base64 payload.
func (f *Fetcher) fetchViaGitHubAPI(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Authorization", "token "+f.githubToken)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apidex.Errorf(apidex.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, apiURL)
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Content == "" {
		return nil, apidex.Errorf(apidex.EINVALID, "no content in GitHub API response for %s", apiURL)
	}

	// The contents API wraps base64 at 60 columns.
	return base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
}
