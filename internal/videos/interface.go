package videos

import "context"

// ClientInterface defines the video discovery provider operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	Search(ctx context.Context, query string, maxResults int) ([]Video, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
