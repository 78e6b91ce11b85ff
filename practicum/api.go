package practicum

import (
	"context"
	"time"
)

// StatusFetcher is the part of the client the poller depends on.
type StatusFetcher interface {
	// FetchStatus returns the decoded, unvalidated response body for the window
	// starting at windowStart.
	FetchStatus(ctx context.Context, windowStart time.Time) (any, error)
}

// Ensure Client implements StatusFetcher at compile time.
var _ StatusFetcher = (*Client)(nil)
