package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "homeworkbot/1.0"
	maxErrorBody     = 512
)

// Client represents a homework statuses API client
type Client struct {
	endpoint   *url.URL
	token      string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new client for the given endpoint and OAuth token
func NewClient(endpoint, token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("practicum endpoint is required")
	}
	if token == "" {
		return nil, fmt.Errorf("practicum token is required")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute URL", endpoint)
	}

	client := &Client{
		endpoint: u,
		token:    token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// FetchStatus requests homework statuses changed since windowStart. A 200 response is
// decoded and returned as-is; shape checks belong to the caller.
func (c *Client) FetchStatus(ctx context.Context, windowStart time.Time) (any, error) {
	params := url.Values{}
	params.Set("from_date", strconv.FormatInt(windowStart.Unix(), 10))

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var payload any
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return payload, nil
}

// TestConnection performs a single request for the current instant to verify the
// endpoint and the token.
func (c *Client) TestConnection(ctx context.Context) error {
	body, err := c.doRequest(ctx, url.Values{"from_date": {strconv.FormatInt(time.Now().Unix(), 10)}})
	if err != nil {
		return err
	}
	return body.Close()
}

// doRequest performs an authenticated GET and returns the body of a 200 response.
func (c *Client) doRequest(ctx context.Context, params url.Values) (io.ReadCloser, error) {
	reqURL := *c.endpoint
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().
		Str("url", reqURL.String()).
		Msg("Requesting homework statuses")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := newRequestError(c.endpoint.String(), err)
		c.logger.Error().Err(err).Str("class", reqErr.Class).Msg("Homework API request failed")
		return nil, reqErr
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("Homework API returned a non-200 code")
		return nil, &UnexpectedStatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	return resp.Body, nil
}
