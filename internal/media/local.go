package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/imaging"
)

// Local stores fill-cropped product photos on disk. It is the development
// fallback when no Cloudinary account is configured; the router serves the
// directory under BaseURL.
type Local struct {
	Dir     string
	BaseURL string
}

// NewLocal creates a local uploader writing into dir, served under /uploads/.
func NewLocal(dir string) *Local {
	return &Local{Dir: dir, BaseURL: "/uploads/"}
}

// Upload fill-crops the image to the catalog's square format and writes it
// under a random name, returning the serving URL.
func (l *Local) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	result, err := imaging.FillCrop(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating upload dir: %v", ErrUploadFailed, err)
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: generating name: %v", ErrUploadFailed, err)
	}
	name := hex.EncodeToString(buf) + ".jpg"

	if err := os.WriteFile(filepath.Join(l.Dir, name), result.Data, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing image: %v", ErrUploadFailed, err)
	}

	return l.BaseURL + name, nil
}
