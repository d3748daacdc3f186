// Package storage persists generated and uploaded images to a durable media
// store. Generated image URLs returned by the model are ephemeral and must be
// re-hosted before they are recorded anywhere.
package storage

import (
	"context"
	"io"
)

// UploadResult is the durable location of a stored image.
type UploadResult struct {
	URL      string
	PublicID string
}

// Store is implemented by the available media backends.
type Store interface {
	// Upload stores raw image bytes under the given folder scope.
	Upload(ctx context.Context, r io.Reader, contentType, folder string) (*UploadResult, error)
	// UploadFromURL fetches an image from a source URL and stores it under
	// the given folder scope.
	UploadFromURL(ctx context.Context, sourceURL, folder string) (*UploadResult, error)
}
