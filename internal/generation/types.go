package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// issues a structured-generation call
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// stores a file and returns a reference the generation service can read
type Uploader interface {
	Upload(ctx context.Context, data []byte, fileName string) (*UploadResult, error)
}

// a prompt plus an optional response schema; json tags match the wire contract
// so the HTTP pass-through can bind it directly
type Request struct {
	Prompt             string          `json:"prompt" validate:"notblank"`
	ResponseSchema     json.RawMessage `json:"response_json_schema,omitempty"`
	Attachments        []string        `json:"file_urls,omitempty" validate:"omitempty,dive,http_url"`
	UseExternalContext bool            `json:"add_context_from_internet"`
}

// reports whether a schema was supplied (JSON null counts as absent)
func (r *Request) HasSchema() bool {
	return hasContent(r.ResponseSchema)
}

// body POSTed to {base}/llm/invoke
type invokeRequest struct {
	Prompt             string          `json:"prompt"`
	AddContextFromWeb  bool            `json:"add_context_from_internet"`
	ResponseJSONSchema json.RawMessage `json:"response_json_schema"`
	FileURLs           []string        `json:"file_urls"`
}

// the parsed JSON body returned by the service
type Response struct {
	Body json.RawMessage
}

// decodes the body into a generic JSON value
func (r *Response) Value() (any, error) {
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return v, nil
}

// decodes the body into v
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// returns the body as text; JSON strings are unquoted (unstructured mode)
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Body, &s); err == nil {
		return s
	}

	return string(bytes.TrimSpace(r.Body))
}

type UploadResult struct {
	URL string `json:"file_url"`
}

type uploadResponse struct {
	FileURL *string `json:"file_url"`
}

func hasContent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
