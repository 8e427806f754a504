package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
)

// single-attempt multipart upload; returns the stored file's URL
func (c *Client) Upload(ctx context.Context, data []byte, fileName string) (*UploadResult, error) {
	if err := validateUpload(fileName); err != nil {
		return nil, invalidRequest(OpUpload, err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, invalidRequest(OpUpload, fmt.Errorf("failed to create form file: %w", err))
	}

	if _, err := part.Write(data); err != nil {
		return nil, invalidRequest(OpUpload, fmt.Errorf("failed to write form file: %w", err))
	}

	if err := writer.Close(); err != nil {
		return nil, invalidRequest(OpUpload, fmt.Errorf("failed to finalize form: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &buf)
	if err != nil {
		return nil, invalidRequest(OpUpload, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, OpUpload)
	if err != nil {
		return nil, err
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, malformed(OpUpload, fmt.Errorf("failed to parse response: %w", err))
	}

	if parsed.FileURL == nil || *parsed.FileURL == "" {
		return nil, malformed(OpUpload, errors.New("response has no file_url"))
	}

	if err := validateFileURL(*parsed.FileURL); err != nil {
		return nil, malformed(OpUpload, err)
	}

	return &UploadResult{URL: *parsed.FileURL}, nil
}
