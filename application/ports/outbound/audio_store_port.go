package outbound

import "context"

// AudioStorePort uploads a narration payload and returns its public URL.
type AudioStorePort interface {
	Save(ctx context.Context, storyID string, audio []byte) (string, error)
}
