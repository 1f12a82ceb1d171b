package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Cloudinary uploads images through the signed upload API and returns the
// hosted URL.
type Cloudinary struct {
	cloud     string
	apiKey    string
	apiSecret string
	folder    string
	client    *http.Client
}

func NewCloudinary(cloud, apiKey, apiSecret, folder string) *Cloudinary {
	return &Cloudinary{
		cloud:     cloud,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type uploadResp struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload streams one image to Cloudinary. Signature rule: sha1 of the
// sorted non-file params concatenated with the API secret.
func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	publicID := uuid.NewString()

	toSign := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s%s", c.folder, publicID, ts, c.apiSecret)
	sum := sha1.Sum([]byte(toSign))
	signature := hex.EncodeToString(sum[:])

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer pw.Close()
		_ = mw.WriteField("api_key", c.apiKey)
		_ = mw.WriteField("timestamp", ts)
		_ = mw.WriteField("folder", c.folder)
		_ = mw.WriteField("public_id", publicID)
		_ = mw.WriteField("signature", signature)
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(fw, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	url := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", c.cloud)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out uploadResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("cloudinary: decode response: %w", err)
	}
	if resp.StatusCode >= 300 || out.SecureURL == "" {
		return "", fmt.Errorf("cloudinary: status %d: %s", resp.StatusCode, out.Error.Message)
	}
	return out.SecureURL, nil
}
