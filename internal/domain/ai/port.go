package ai

import "context"

// Client is the external vision model: image bytes in, free-form text
// out. One request, one response, no retry.
type Client interface {
	Assess(ctx context.Context, image []byte) (string, error)
}
