package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cue-cards/internal/config"
	"cue-cards/internal/domain"
	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/logging"
)

// Client fetches and saves the card document over HTTP. It never retries.
// Documents are decoded into domain.AppData, so card fields it does not model
// are dropped on the next save.
type Client struct {
	url        string
	httpClient *http.Client
}

// New creates a client for the document at baseURL+path.
// A nil httpClient uses http.DefaultClient.
func New(baseURL, path string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:        strings.TrimRight(baseURL, "/") + path,
		httpClient: httpClient,
	}
}

// NewFromConfig creates a client from the client and server configuration
func NewFromConfig(cfg *config.Config) *Client {
	return New(cfg.Client.BaseURL, cfg.Server.Path, &http.Client{Timeout: cfg.Client.Timeout})
}

// URL returns the document URL
func (c *Client) URL() string {
	return c.url
}

// GetDocument fetches the whole card document
func (c *Client) GetDocument(ctx context.Context) (*domain.AppData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, apperrors.NewTransportError("fetch cards", 0, err)
	}

	resp, err := c.do(req, "fetch cards")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError("fetch cards", resp.StatusCode, err)
	}

	var data domain.AppData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, apperrors.NewParseError("fetch cards response", err)
	}
	return &data, nil
}

// SaveDocument replaces the whole card document
func (c *Client) SaveDocument(ctx context.Context, data *domain.AppData) error {
	if data == nil {
		data = domain.EmptyAppData()
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return apperrors.NewParseError("save cards request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return apperrors.NewTransportError("save cards", 0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, "save cards")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Load implements store.Backend
func (c *Client) Load(ctx context.Context) (*domain.AppData, error) {
	return c.GetDocument(ctx)
}

// Save implements store.Backend
func (c *Client) Save(ctx context.Context, data *domain.AppData) error {
	return c.SaveDocument(ctx, data)
}

// do sends req and converts network failures and non-2xx responses to transport errors.
// On success the caller owns resp.Body.
func (c *Client) do(req *http.Request, operation string) (*http.Response, error) {
	logging.Debugf("%s %s\n", req.Method, req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewTimeoutError(operation, c.httpClient.Timeout)
		}
		return nil, apperrors.NewTransportError(operation, 0, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewTransportError(operation, resp.StatusCode,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))))
	}
	return resp, nil
}
