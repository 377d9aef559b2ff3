package bitable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB
	// maxMediaSize limits downloaded media size
	maxMediaSize = 20 * 1024 * 1024 // 20MB

	tokenPath = "/open-apis/auth/v3/tenant_access_token/internal"
)

// Client is an authenticated request/response wrapper over the external
// tabular API. Every call acquires a fresh tenant token; nothing is
// cached and no retry is performed, so transient failures propagate to
// the caller unchanged.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// ProductTable returns the configured product table id
func (c *Client) ProductTable() string { return c.config.ProductTable }

// OrderTable returns the configured order table id
func (c *Client) OrderTable() string { return c.config.OrderTable }

// tenantAccessToken acquires a fresh tenant access token
func (c *Client) tenantAccessToken(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"app_id":     c.config.AppID,
		"app_secret": c.config.AppSecret,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrExternalAuth, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+tokenPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrExternalAuth, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrExternalAuth, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrExternalAuth, err)
	}

	var tok tokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrExternalAuth, err)
	}
	if tok.Code != 0 || tok.TenantAccessToken == "" {
		return "", fmt.Errorf("%w: %d - %s", shared.ErrExternalAuth, tok.Code, tok.Msg)
	}

	return tok.TenantAccessToken, nil
}

// request performs one authenticated JSON call and unwraps the response
// envelope. A non-zero envelope code is returned as *APIError.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	token, err := c.tenantAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("bitable: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	u := c.config.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("bitable: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("bitable: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		// The service reports application errors through the envelope even
		// on non-2xx statuses; prefer the envelope code when present.
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Code != 0 {
			return nil, &APIError{Code: env.Code, Msg: env.Msg}
		}
		return nil, fmt.Errorf("%w: HTTP %d", shared.ErrExternalAPI, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("bitable: failed to parse response: %w", err)
	}
	if !env.IsSuccess() {
		return nil, &APIError{Code: env.Code, Msg: env.Msg}
	}

	return env.Data, nil
}

// tablePath builds the records path for a table
func (c *Client) tablePath(table, suffix string) string {
	return fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s%s", c.config.AppToken, table, suffix)
}

// SearchRecords searches a table, forwarding the filter, sort, field
// selection and pagination cursor unchanged.
func (c *Client) SearchRecords(ctx context.Context, table string, req *SearchRequest) (*SearchResult, error) {
	query := url.Values{}
	if req.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(req.PageSize))
	}
	if req.PageToken != "" {
		query.Set("page_token", req.PageToken)
	}

	data, err := c.request(ctx, http.MethodPost, c.tablePath(table, "/records/search"), query, req)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("bitable: failed to parse search result: %w", err)
	}
	return &result, nil
}

// GetRecord fetches a single record by id
func (c *Client) GetRecord(ctx context.Context, table, recordID string) (*Record, error) {
	data, err := c.request(ctx, http.MethodGet, c.tablePath(table, "/records/"+recordID), nil, nil)
	if err != nil {
		return nil, err
	}

	var result recordData
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("bitable: failed to parse record: %w", err)
	}
	return &result.Record, nil
}

// BatchCreateRecords writes multiple rows in a single call. The call is
// atomic from the client's perspective only; the service may apply it
// partially on failure.
func (c *Client) BatchCreateRecords(ctx context.Context, table string, records []RecordFields) ([]Record, error) {
	data, err := c.request(ctx, http.MethodPost, c.tablePath(table, "/records/batch_create"), nil, batchCreateRequest{Records: records})
	if err != nil {
		return nil, err
	}

	var result batchCreateResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("bitable: failed to parse batch result: %w", err)
	}
	return result.Records, nil
}

// ListFields reads the schema metadata of a table
func (c *Client) ListFields(ctx context.Context, table string) ([]Field, error) {
	data, err := c.request(ctx, http.MethodGet, c.tablePath(table, "/fields"), nil, nil)
	if err != nil {
		return nil, err
	}

	var result fieldListResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("bitable: failed to parse field list: %w", err)
	}
	return result.Items, nil
}

// DownloadMedia resolves an opaque file token to binary bytes and a
// content type via the drive media endpoint.
func (c *Client) DownloadMedia(ctx context.Context, fileToken string) ([]byte, string, error) {
	if fileToken == "" {
		return nil, "", shared.ErrInvalidInput
	}

	token, err := c.tenantAccessToken(ctx)
	if err != nil {
		return nil, "", err
	}

	u := fmt.Sprintf("%s/open-apis/drive/v1/medias/%s/download", c.config.BaseURL, url.PathEscape(fileToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", fmt.Errorf("bitable: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", shared.ErrMediaFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: HTTP %d", shared.ErrMediaFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaSize))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", shared.ErrMediaFetch, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return body, contentType, nil
}
