// Package backend implements the product fetch adapter over the marketplace
// HTTP API. It resolves scopes to routes, speaks both pagination styles, and
// normalizes the API's historically inconsistent response shapes into one
// Page type, with retry, circuit breaking, and client-side rate limiting.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"market-client/internal/auth"
	"market-client/internal/common/pagination"
	"market-client/internal/config"
	"market-client/internal/observability/logging"
	"market-client/internal/observability/tracing"
	"market-client/internal/resilience/circuitbreaker"
	"market-client/internal/resilience/retry"
	"market-client/internal/scope"
	"market-client/internal/usecase/listing"
)

// maxResponseBytes bounds how much of a response body is read. Listing pages
// are small; anything larger is a misbehaving endpoint.
const maxResponseBytes = 4 << 20

// Client fetches product pages from the marketplace API. It implements
// listing.ProductFetcher.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         auth.TokenProvider
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	logger         *slog.Logger
}

// NewClient creates a backend client from connection settings. tokens may be
// nil for endpoints that accept anonymous browsing.
func NewClient(cfg config.BackendConfig, tokens auth.TokenProvider, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:        cfg.BaseURL,
		httpClient:     &http.Client{Timeout: cfg.FetchTimeout},
		tokens:         tokens,
		limiter:        rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		circuitBreaker: circuitbreaker.New(circuitbreaker.BackendFetchConfig()),
		retryConfig:    retry.BackendFetchConfig(),
		logger:         logger,
	}
}

// FetchPage fetches and normalizes one page of products. Failures come back
// classified: connectivity problems and timeouts as NetworkError, non-2xx
// statuses as ServerError, unrecognizable payloads as DecodeError.
func (c *Client) FetchPage(ctx context.Context, req listing.FetchRequest) (pagination.Page, error) {
	route, err := scope.Resolve(req.Scope)
	if err != nil {
		return pagination.Page{}, err
	}

	mode := "first_page"
	if !req.Cursor.IsStart() {
		mode = "next_page"
	}
	ctx, span := tracing.StartFetchSpan(ctx, req.Scope.Identifier(), mode)
	defer span.End()

	requestID := uuid.NewString()
	logger := logging.WithScope(logging.WithRequestID(c.logger, requestID), req.Scope.Identifier())

	if err := c.limiter.Wait(ctx); err != nil {
		return pagination.Page{}, &listing.NetworkError{Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	requestURL := c.baseURL + route.Path + "?" + buildQuery(route, req).Encode()

	var page pagination.Page
	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doFetch(ctx, requestURL, requestID)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				logger.Warn("product fetch circuit breaker open, request rejected",
					slog.String("url", requestURL),
					slog.String("state", c.circuitBreaker.State().String()))
			}
			return err
		}
		page = cbResult.(pagination.Page)
		return nil
	})

	if retryErr != nil {
		classified := classifyFetchError(retryErr)
		logger.Warn("product page fetch failed",
			slog.String("url", requestURL),
			slog.Any("error", classified))
		return pagination.Page{}, classified
	}
	return page, nil
}

// doFetch performs one HTTP round trip without retry or circuit breaking.
// Errors come back raw (transport errors, *retry.HTTPError for non-2xx) so
// the retry layer can judge retryability; classification into the listing
// taxonomy happens once retries are exhausted. Decode failures come back
// already typed because retrying a malformed payload cannot help.
func (c *Client) doFetch(ctx context.Context, requestURL, requestID string) (pagination.Page, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return pagination.Page{}, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return pagination.Page{}, fmt.Errorf("obtain bearer token: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pagination.Page{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pagination.Page{}, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    "product fetch failed",
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return pagination.Page{}, err
	}

	return decodePage(body)
}

// classifyFetchError maps the raw failure of an exhausted retry loop onto
// the listing error taxonomy.
func classifyFetchError(err error) error {
	var decodeErr *listing.DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr
	}

	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return &listing.ServerError{Status: httpErr.StatusCode}
	}

	// Everything else - transport errors, timeouts, context expiry, an open
	// circuit - behaves like a connectivity problem from the UI's point of view.
	return &listing.NetworkError{Err: err}
}
