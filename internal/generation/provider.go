// Package generation coordinates one image generation end to end: gating,
// the provider call, the credit charge and the log entry.
package generation

import "context"

// Image is the raw provider output.
type Image struct {
	Data      []byte
	MediaType string
}

// Provider produces an image for a prompt. Implementations must honor ctx
// cancellation; the orchestrator bounds every call with a deadline.
type Provider interface {
	Generate(ctx context.Context, prompt, size string) (*Image, error)
}
