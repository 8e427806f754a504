package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	invokePath = "/llm/invoke"
	uploadPath = "/upload"

	// upstream error bodies are kept for diagnostics, truncated to this size
	maxErrorBody = 512

	defaultTimeout = 60 * time.Second
)

type Config struct {
	BaseURL string // e.g. http://localhost:3001/api
	APIKey  string // optional, sent as a bearer token

	// zero means defaultTimeout; negative disables the client-side timeout
	Timeout time.Duration

	// check response JSON against the request schema (off by default: the
	// service is trusted beyond JSON-parseability)
	ValidateResponses bool

	// overrides the transport, mainly for tests
	HTTPClient *http.Client
}

// talks to the remote structured-generation service; safe for concurrent use,
// holds no state beyond its configuration
type Client struct {
	baseURL           string
	apiKey            string
	validateResponses bool
	httpClient        *http.Client
}

func NewClient(config Config) (*Client, error) {
	base, err := url.Parse(config.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid generation base URL %q", config.BaseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}

		if timeout < 0 {
			timeout = 0
		}

		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	return &Client{
		baseURL:           strings.TrimRight(config.BaseURL, "/"),
		apiKey:            config.APIKey,
		validateResponses: config.ValidateResponses,
		httpClient:        httpClient,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// sends the prompt and optional schema once and returns the parsed JSON body
func (c *Client) Generate(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, invalidRequest(OpGenerate, err)
	}

	fileURLs := req.Attachments
	if fileURLs == nil {
		fileURLs = []string{}
	}

	var schema json.RawMessage
	if req.HasSchema() {
		schema = req.ResponseSchema
	}

	payload, err := json.Marshal(invokeRequest{
		Prompt:             req.Prompt,
		AddContextFromWeb:  req.UseExternalContext,
		ResponseJSONSchema: schema,
		FileURLs:           fileURLs,
	})
	if err != nil {
		return nil, invalidRequest(OpGenerate, fmt.Errorf("failed to marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+invokePath, bytes.NewReader(payload))
	if err != nil {
		return nil, invalidRequest(OpGenerate, fmt.Errorf("failed to create request: %w", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	body, err := c.do(httpReq, OpGenerate)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, malformed(OpGenerate, errors.New("response body is not valid JSON"))
	}

	if c.validateResponses && schema != nil {
		var value any
		if err := json.Unmarshal(body, &value); err != nil {
			return nil, malformed(OpGenerate, err)
		}

		if err := Conform(schema, value); err != nil {
			return nil, malformed(OpGenerate, fmt.Errorf("response does not match schema: %w", err))
		}
	}

	return &Response{Body: json.RawMessage(body)}, nil
}

// performs exactly one attempt and classifies the outcome
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(req.Context(), op, err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck
		return nil, &Error{
			Op:     op,
			Kind:   KindUpstream,
			Status: resp.StatusCode,
			Body:   string(excerpt),
			Err:    fmt.Errorf("request failed with status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(req.Context(), op, fmt.Errorf("failed to read response: %w", err))
	}

	return body, nil
}
