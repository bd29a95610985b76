// Package resilience provides retry with exponential backoff and jitter.
//
// The model bundle download is the main consumer: transient network and
// server errors are retried, while context cancellation and permanent
// failures abort immediately.
//
//	err := resilience.RetryFunc(ctx, resilience.DefaultRetryConfig(), func() error {
//	    return fetch(ctx, url)
//	})
package resilience
