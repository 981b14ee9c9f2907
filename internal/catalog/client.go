// Package catalog fetches raw product records from the upstream catalog API.
// The records are heterogeneous JSON; callers run them through the normalizer
// before use.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	apperrors "github.com/utafrali/StorefrontGo/pkg/errors"
	"github.com/utafrali/StorefrontGo/pkg/httpclient"
)

// maxRecordBytes bounds a single product record read from upstream.
const maxRecordBytes = 1 << 20

// Client retrieves product records over HTTP. Calls run through a circuit
// breaker so a flapping catalog cannot stall the storefront.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a catalog client for the given base URL, e.g.
// "https://catalog.internal".
func NewClient(baseURL string, logger *slog.Logger) *Client {
	base := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("catalog"), logger)
	return &Client{
		http:    cb,
		baseURL: baseURL,
		logger:  logger,
	}
}

// FetchProduct returns the raw JSON record for the given product id. The
// shape of the record is not interpreted here.
func (c *Client) FetchProduct(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	u := fmt.Sprintf("%s/api/v1/products/%s", c.baseURL, url.PathEscape(id))
	resp, err := c.http.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFound("product", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRecordBytes))
	if err != nil {
		return nil, fmt.Errorf("read product %s: %w", id, err)
	}
	return body, nil
}
