package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

const MaxImageSize = 5 << 20 // 5MB

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ValidateImage applies the client-side pre-checks before an upload is even
// attempted: accepted content type and the 5MB ceiling.
func ValidateImage(contentType string, size int64) error {
	if _, ok := imageTypes[contentType]; !ok {
		return fmt.Errorf("Allowed types: JPEG, PNG, WebP, GIF (got %q)", contentType)
	}
	if size > MaxImageSize {
		return fmt.Errorf("file must be 5MB or less (current: %.2fMB)", float64(size)/1024/1024)
	}
	return nil
}

// UploadProductImage sends the image as multipart form data under the
// "image" field and returns the URL to store in product.image.
func (c *Client) UploadProductImage(ctx context.Context, token, filename, contentType string, file io.Reader, size int64) (string, error) {
	if err := ValidateImage(contentType, size); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload/product-image", &buf)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	// Content-Type carries the multipart boundary; never set it by hand.
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &APIError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Status: 0, Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, data),
			Body:    data,
		}
	}

	var payload struct {
		Success  bool   `json:"success"`
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return payload.URL, nil
}
