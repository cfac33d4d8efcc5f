// Package resilience provides reliability and fault tolerance patterns for the client.
// It includes implementations of circuit breakers and retry logic to keep the
// product-fetch path responsive when the backend degrades.
//
// The package supports:
//   - Circuit breakers for backend product-fetch calls
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.BackendFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchPage()
//	})
//
//	retryConfig := retry.BackendFetchConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
package resilience
