package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"seasonfix/internal/services"
)

// SeasonDetails captures the fields of the TMDB season payload this tool
// reads.
type SeasonDetails struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SeasonNumber int    `json:"season_number"`
}

type authStatus struct {
	Success bool `json:"success"`
}

// Client provides access to the TMDB API.
type Client struct {
	bearer     string
	baseURL    string
	language   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client authenticating with the given bearer token.
func New(bearer, baseURL, language string, opts ...Option) (*Client, error) {
	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		return nil, errors.New("tmdb bearer token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		bearer:     bearer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// VerifyAuth confirms TMDB accepts the bearer token before any library work
// begins. A rejected credential is a configuration error, not a lookup
// failure.
func (c *Client) VerifyAuth(ctx context.Context) error {
	resp, err := c.get(ctx, c.baseURL+"/authentication", nil)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "tmdb", "authenticate", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return services.Wrap(services.ErrConfiguration, "tmdb", "authenticate", "bearer token rejected", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrNetwork, "tmdb", "authenticate", fmt.Sprintf("returned %d", resp.StatusCode), nil)
	}

	var payload authStatus
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return services.Wrap(services.ErrResponseFormat, "tmdb", "authenticate", "decode response", err)
	}
	if !payload.Success {
		return services.Wrap(services.ErrConfiguration, "tmdb", "authenticate", "response yielded no success", nil)
	}
	return nil
}

// SeasonName fetches the canonical display name of one season of a TV show.
// Season 0 (specials) is a valid season number.
func (c *Client) SeasonName(ctx context.Context, showID int64, seasonNumber int) (string, error) {
	if showID <= 0 {
		return "", errors.New("show id must be positive")
	}
	if seasonNumber < 0 {
		return "", errors.New("season number must not be negative")
	}

	params := url.Values{}
	if c.language != "" {
		params.Set("language", c.language)
	}

	requestStart := time.Now()
	resp, err := c.get(ctx, fmt.Sprintf("%s/tv/%d/season/%d", c.baseURL, showID, seasonNumber), params)
	latency := time.Since(requestStart)
	if err != nil {
		return "", services.Wrap(services.ErrNetwork, "tmdb", "season lookup",
			fmt.Sprintf("show %d season %d (latency=%v)", showID, seasonNumber, latency), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", services.Wrap(services.ErrNotFound, "tmdb", "season lookup",
			fmt.Sprintf("show %d season %d unknown to tmdb", showID, seasonNumber), nil)
	case resp.StatusCode != http.StatusOK:
		return "", services.Wrap(services.ErrNetwork, "tmdb", "season lookup",
			fmt.Sprintf("show %d season %d returned %d (latency=%v)", showID, seasonNumber, resp.StatusCode, latency), nil)
	}

	var payload SeasonDetails
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", services.Wrap(services.ErrResponseFormat, "tmdb", "season lookup", "decode season response", err)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return "", services.Wrap(services.ErrResponseFormat, "tmdb", "season lookup",
			fmt.Sprintf("season name missing from response for show %d season %d", showID, seasonNumber), nil)
	}
	return payload.Name, nil
}

func (c *Client) get(ctx context.Context, rawURL string, params url.Values) (*http.Response, error) {
	endpoint, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearer)

	return c.httpClient.Do(req)
}
