package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/imaging"
)

// transformation is the fixed delivery transformation applied to every
// product photo: 400x400 fill crop with automatic gravity and format.
const transformation = "h_400,w_400/c_fill,g_auto/f_auto"

// uploadFolder is the Cloudinary folder all catalog photos land in.
const uploadFolder = "uploaded"

// Cloudinary uploads images through the Cloudinary REST API using signed
// upload requests.
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string

	// APIBase and DeliveryBase exist so tests can point the client at a
	// local server. Leave empty for the real endpoints.
	APIBase      string
	DeliveryBase string

	HTTPClient *http.Client
}

// NewCloudinary creates a client for the given account.
func NewCloudinary(cloudName, apiKey, apiSecret string) *Cloudinary {
	return &Cloudinary{
		CloudName:  cloudName,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	PublicID string `json:"public_id"`
	Version  int64  `json:"version"`
}

// Upload sends the image to Cloudinary and returns the transformed delivery
// URL. The raw bytes are validated first so obviously bad uploads fail
// before leaving the process.
func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: reading upload: %v", ErrUploadFailed, err)
	}
	if err := imaging.Validate(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	params := map[string]string{
		"timestamp":       strconv.FormatInt(time.Now().Unix(), 10),
		"folder":          uploadFolder,
		"use_filename":    "true",
		"unique_filename": "false",
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range params {
		if err := mw.WriteField(k, v); err != nil {
			return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
		}
	}
	if err := mw.WriteField("api_key", c.APIKey); err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}
	if err := mw.WriteField("signature", signParams(params, c.APISecret)); err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadEndpoint(), &body)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var upload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUploadFailed, err)
	}
	if upload.PublicID == "" {
		return "", fmt.Errorf("%w: response missing public_id", ErrUploadFailed)
	}

	return c.deliveryURL(upload), nil
}

func (c *Cloudinary) uploadEndpoint() string {
	base := c.APIBase
	if base == "" {
		base = "https://api.cloudinary.com"
	}
	return fmt.Sprintf("%s/v1_1/%s/image/upload", base, c.CloudName)
}

// deliveryURL builds the final image URL carrying the fixed transformation.
func (c *Cloudinary) deliveryURL(upload uploadResponse) string {
	base := c.DeliveryBase
	if base == "" {
		base = "https://res.cloudinary.com"
	}
	return fmt.Sprintf("%s/%s/image/upload/%s/v%d/%s",
		base, c.CloudName, transformation, upload.Version, upload.PublicID)
}

// signParams produces the Cloudinary request signature: parameters sorted by
// key, joined as key=value with '&', then SHA-1 hashed with the API secret
// appended.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
