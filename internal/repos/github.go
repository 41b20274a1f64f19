// Package repos lists a user's public repositories with a last-known-good
// fallback: live fetch first, else the most recent cached snapshot, else an
// error. It is a collaborator of the analysis pipeline, not part of it.
package repos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Repository is one public repository record, shaped like the GitHub REST
// API response so the browser client can consume it unchanged.
type Repository struct {
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	Topics      []string  `json:"topics"`
	Homepage    string    `json:"homepage"`
}

// Client fetches repository listings from the GitHub REST API.
type Client struct {
	apiURL string
	token  string
	client *http.Client
}

// NewClient creates a GitHub API client. token may be empty; unauthenticated
// requests work within GitHub's public rate limits.
func NewClient(apiURL, token string) *Client {
	return &Client{
		apiURL: apiURL,
		token:  token,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ListPublic fetches the user's public repositories, most recently updated
// first, up to one page of 100.
func (c *Client) ListPublic(ctx context.Context, username string) ([]Repository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.apiURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned %d for %s", resp.StatusCode, username)
	}

	var repositories []Repository
	if err := json.Unmarshal(body, &repositories); err != nil {
		return nil, fmt.Errorf("unmarshal repositories: %w", err)
	}
	return repositories, nil
}
