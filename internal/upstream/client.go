// Package upstream talks to the salon core backend, the system of record for
// product stocks, transfers, orders, kits and cabinets. Responses are returned
// as decoded JSON without further interpretation; shaping them into usable
// records is the normalize package's job.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"salonstock/internal/config"
)

// Fetcher is the read surface the sync pipeline consumes.
type Fetcher interface {
	FetchProductStocks(ctx context.Context, warehouseID string) (interface{}, error)
	FetchTransfers(ctx context.Context, warehouseID string) (interface{}, error)
	FetchOrders(ctx context.Context, warehouseID string) (interface{}, error)
	FetchKits(ctx context.Context, warehouseID string) (interface{}, error)
	FetchCabinets(ctx context.Context) (interface{}, error)
}

// Client handles REST API communication with the salon core backend
type Client struct {
	config     *config.UpstreamConfig
	httpClient *http.Client
}

// NewClient creates a new core backend REST API client
func NewClient(cfg *config.UpstreamConfig) *Client {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// makeRequest performs an HTTP request to the core backend
func (c *Client) makeRequest(ctx context.Context, method, endpoint string, payload interface{}) (*http.Response, error) {
	requestURL := fmt.Sprintf("%s%s", c.config.Upstream.APIEndpoint, endpoint)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.Upstream.APIKey))

	fmt.Printf("Making API request: %s %s\n", method, requestURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	return resp, nil
}

// getJSON issues a GET and decodes whatever JSON document comes back
func (c *Client) getJSON(ctx context.Context, endpoint string) (interface{}, error) {
	resp, err := c.makeRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		fmt.Printf("Failed to fetch %s: %v\n", endpoint, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Core API error: status %d, body: %s\n", resp.StatusCode, string(body))
		return nil, fmt.Errorf("core API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return payload, nil
}

// scopedEndpoint appends the warehouse filter when one is requested
func scopedEndpoint(path, warehouseID string) string {
	if warehouseID == "" {
		return path
	}
	return path + "?warehouseId=" + url.QueryEscape(warehouseID)
}

// FetchProductStocks retrieves the stock rows, optionally scoped to one warehouse
func (c *Client) FetchProductStocks(ctx context.Context, warehouseID string) (interface{}, error) {
	return c.getJSON(ctx, scopedEndpoint("/api/product-stocks", warehouseID))
}

// FetchTransfers retrieves warehouse transfers
func (c *Client) FetchTransfers(ctx context.Context, warehouseID string) (interface{}, error) {
	return c.getJSON(ctx, scopedEndpoint("/api/transfers", warehouseID))
}

// FetchOrders retrieves purchase orders
func (c *Client) FetchOrders(ctx context.Context, warehouseID string) (interface{}, error) {
	return c.getJSON(ctx, scopedEndpoint("/api/orders", warehouseID))
}

// FetchKits retrieves service kits
func (c *Client) FetchKits(ctx context.Context, warehouseID string) (interface{}, error) {
	return c.getJSON(ctx, scopedEndpoint("/api/kits", warehouseID))
}

// FetchCabinets retrieves the cabinet catalog. Cabinets carry their own
// warehouse assignment so the endpoint is never scoped.
func (c *Client) FetchCabinets(ctx context.Context) (interface{}, error) {
	return c.getJSON(ctx, "/api/cabinets")
}
