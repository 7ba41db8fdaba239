package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 500, 300))
	for x := 0; x < 500; x++ {
		for y := 0; y < 300; y++ {
			img.Set(x, y, color.RGBA{0, 128, 0, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCloudinaryUpload(t *testing.T) {
	var gotSignature, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))

		gotSignature = r.FormValue("signature")
		gotAPIKey = r.FormValue("api_key")
		assert.Equal(t, "uploaded", r.FormValue("folder"))
		assert.Equal(t, "true", r.FormValue("use_filename"))

		_, _, err := r.FormFile("file")
		assert.NoError(t, err)

		json.NewEncoder(w).Encode(map[string]any{
			"public_id": "uploaded/test-phone",
			"version":   1719311876,
		})
	}))
	defer server.Close()

	c := NewCloudinary("demo", "key123", "secret456")
	c.APIBase = server.URL

	url, err := c.Upload(context.Background(), bytes.NewReader(testPNG(t)), "test-phone.png")
	require.NoError(t, err)

	assert.Equal(t, "key123", gotAPIKey)
	assert.NotEmpty(t, gotSignature)
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/h_400,w_400/c_fill,g_auto/f_auto/v1719311876/uploaded/test-phone",
		url)
}

func TestCloudinaryUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid Signature"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewCloudinary("demo", "key123", "wrong")
	c.APIBase = server.URL

	_, err := c.Upload(context.Background(), bytes.NewReader(testPNG(t)), "x.png")
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestCloudinaryUploadRejectsNonImage(t *testing.T) {
	c := NewCloudinary("demo", "key123", "secret456")
	c.APIBase = "http://127.0.0.1:0" // must not be reached

	_, err := c.Upload(context.Background(), strings.NewReader("not an image"), "x.txt")
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestSignParams(t *testing.T) {
	// Keys must be sorted before hashing, so ordering of the map is
	// irrelevant.
	sig := signParams(map[string]string{
		"timestamp": "1315060510",
		"public_id": "sample_image",
	}, "abcd")
	want := signParams(map[string]string{
		"public_id": "sample_image",
		"timestamp": "1315060510",
	}, "abcd")
	assert.Equal(t, want, sig)
	assert.Len(t, sig, 40) // SHA-1 hex
}

func TestLocalUpload(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir)

	url, err := l.Upload(context.Background(), bytes.NewReader(testPNG(t)), "photo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	// The stored file must be the 400x400 crop.
	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestLocalUploadRejectsNonImage(t *testing.T) {
	l := NewLocal(t.TempDir())

	_, err := l.Upload(context.Background(), strings.NewReader("junk"), "x.bin")
	assert.True(t, errors.Is(err, ErrUploadFailed))
}
