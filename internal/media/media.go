// Package media stores product photos with an external host and hands back
// durable delivery URLs. The host is opaque to the rest of the application:
// handlers only see the Uploader interface.
package media

import (
	"context"
	"errors"
	"io"
)

// ErrUploadFailed wraps any failure while storing an image. A failed upload
// must abort the item write, never silently store an empty URL.
var ErrUploadFailed = errors.New("media upload failed")

// Uploader stores an image and returns the URL it will be served from.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}
