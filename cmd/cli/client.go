package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iho/pintwise/internal/adapter/http/dto"
)

// apiError is a non-2xx response from the pintwise API.
type apiError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *apiError) Error() string {
	msg := fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

// apiClient talks to the pintwise HTTP API.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *apiClient) addEntry(ctx context.Context, req dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	var out dto.EntryResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/entries", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) listEntries(ctx context.Context, status, query string) (*dto.EntryListResponse, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if query != "" {
		params.Set("q", query)
	}

	var out dto.EntryListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) listPending(ctx context.Context, query string) (*dto.EntryListResponse, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}

	var out dto.EntryListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries/pending", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) pay(ctx context.Context, id string) error {
	var out dto.PaidResponse
	return c.do(ctx, http.MethodPost, "/api/v1/entries/"+url.PathEscape(id)+"/pay", nil, nil, &out)
}

func (c *apiClient) delete(ctx context.Context, id string) error {
	var out dto.DeletedResponse
	return c.do(ctx, http.MethodDelete, "/api/v1/entries/"+url.PathEscape(id), nil, nil, &out)
}

func (c *apiClient) balances(ctx context.Context) (*dto.BalancesResponse, error) {
	var out dto.BalancesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/balances", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) stats(ctx context.Context) (*dto.StatsResponse, error) {
	var out dto.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apiError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errResp dto.ErrorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Details = errResp.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
