package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fake upstream that counts calls and captures the last invoke body
type fakeService struct {
	calls    atomic.Int32
	status   int
	body     string
	lastBody []byte
	lastPath string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.lastPath = r.URL.Path
	f.lastBody, _ = io.ReadAll(r.Body) //nolint:errcheck // test fixture

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, f.body) //nolint:errcheck,gosec // test fixture
}

func newTestClient(t *testing.T, handler http.Handler, opts ...func(*Config)) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{BaseURL: srv.URL + "/api"}
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)

	return client, srv
}

func TestNewClient_RejectsRelativeBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "/api"})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: ""})
	assert.Error(t, err)
}

func TestGenerate_EmptyPromptNeverCallsUpstream(t *testing.T) {
	fake := &fakeService{body: `{}`}
	client, _ := newTestClient(t, fake)

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := client.Generate(context.Background(), &Request{Prompt: prompt})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Equal(t, KindInvalidRequest, KindOf(err))
	}

	assert.Equal(t, int32(0), fake.calls.Load())
}

func TestGenerate_NilRequest(t *testing.T) {
	fake := &fakeService{body: `{}`}
	client, _ := newTestClient(t, fake)

	_, err := client.Generate(context.Background(), nil)

	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, int32(0), fake.calls.Load())
}

func TestGenerate_InvalidSchemaNeverCallsUpstream(t *testing.T) {
	fake := &fakeService{body: `{}`}
	client, _ := newTestClient(t, fake)

	schemas := []string{
		`[]`,
		`"object"`,
		`{"type": "banana"}`,
		`{"type": 5}`,
		`{"type": "object", "properties": []}`,
		`{"type": "array", "items": {"type": "weather"}}`,
		`{"type": "string", "enum": []}`,
		`{"type": "object",`,
		`{"type": "object", "additionalProperties": {"type": "banana"}}`,
		`{"anyOf": [{"type": "banana"}]}`,
	}

	for _, schema := range schemas {
		_, err := client.Generate(context.Background(), &Request{
			Prompt:         "weather please",
			ResponseSchema: json.RawMessage(schema),
		})

		assert.ErrorIs(t, err, ErrInvalidRequest, "schema %s", schema)
	}

	assert.Equal(t, int32(0), fake.calls.Load())
}

func TestGenerate_MalformedAttachmentNeverCallsUpstream(t *testing.T) {
	fake := &fakeService{body: `{}`}
	client, _ := newTestClient(t, fake)

	_, err := client.Generate(context.Background(), &Request{
		Prompt:      "analyze",
		Attachments: []string{"https://files.example.com/leaf.png", "not a url"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "file_urls")
	assert.Equal(t, int32(0), fake.calls.Load())
}

func TestGenerate_SendsWireContract(t *testing.T) {
	fake := &fakeService{body: `{"ok": true}`}
	client, _ := newTestClient(t, fake)

	schema := `{"type":"object","properties":{"temperature":{"type":"number"}}}`
	_, err := client.Generate(context.Background(), &Request{
		Prompt:             "weather",
		ResponseSchema:     json.RawMessage(schema),
		Attachments:        []string{"https://x/y.png"},
		UseExternalContext: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/llm/invoke", fake.lastPath)
	assert.JSONEq(t, `{
		"prompt": "weather",
		"add_context_from_internet": true,
		"response_json_schema": {"type":"object","properties":{"temperature":{"type":"number"}}},
		"file_urls": ["https://x/y.png"]
	}`, string(fake.lastBody))
}

func TestGenerate_DefaultsOnTheWire(t *testing.T) {
	fake := &fakeService{body: `"plain text answer"`}
	client, _ := newTestClient(t, fake)

	resp, err := client.Generate(context.Background(), &Request{Prompt: "hello"})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"prompt": "hello",
		"add_context_from_internet": false,
		"response_json_schema": null,
		"file_urls": []
	}`, string(fake.lastBody))
	assert.Equal(t, "plain text answer", resp.Text())
}

func TestGenerate_NullSchemaTreatedAsAbsent(t *testing.T) {
	fake := &fakeService{body: `{}`}
	client, _ := newTestClient(t, fake)

	_, err := client.Generate(context.Background(), &Request{
		Prompt:         "hello",
		ResponseSchema: json.RawMessage("null"),
	})

	require.NoError(t, err)
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestGenerate_UpstreamError(t *testing.T) {
	fake := &fakeService{status: http.StatusInternalServerError, body: `{"error":"boom"}`}
	client, _ := newTestClient(t, fake)

	_, err := client.Generate(context.Background(), &Request{Prompt: "weather"})
	require.Error(t, err)

	var genErr *Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, KindUpstream, genErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, genErr.Status)
	assert.Equal(t, OpGenerate, genErr.Op)
	assert.Contains(t, genErr.Body, "boom")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, &Error{Kind: KindUpstream, Status: 500})
	assert.NotErrorIs(t, err, &Error{Kind: KindUpstream, Status: 404})
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestGenerate_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close() // connection refused from here on

	client, err := NewClient(Config{BaseURL: baseURL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), &Request{Prompt: "weather"})

	assert.ErrorIs(t, err, ErrNetwork)
	assert.True(t, Retryable(err))
}

func TestGenerate_TimeoutIsNetworkError(t *testing.T) {
	block := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body) //nolint:errcheck // test fixture

		select {
		case <-block:
		case <-r.Context().Done():
		}
	})

	client, _ := newTestClient(t, handler, func(c *Config) { c.Timeout = 50 * time.Millisecond })
	defer close(block)

	_, err := client.Generate(context.Background(), &Request{Prompt: "weather"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)

	var genErr *Error
	require.True(t, errors.As(err, &genErr))
	assert.True(t, genErr.Timeout())
}

func TestGenerate_Cancelled(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the server only notices a client disconnect once the body is read
		io.Copy(io.Discard, r.Body) //nolint:errcheck // test fixture
		close(started)

		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	client, _ := newTestClient(t, handler)
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Generate(ctx, &Request{Prompt: "weather"})

	assert.ErrorIs(t, err, ErrCancelled)
	assert.False(t, Retryable(err))
}

func TestGenerate_MalformedResponse(t *testing.T) {
	fake := &fakeService{body: `not json`}
	client, _ := newTestClient(t, fake)

	_, err := client.Generate(context.Background(), &Request{Prompt: "weather"})

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.False(t, Retryable(err))
}

func TestGenerate_RoundTripIdentity(t *testing.T) {
	fake := &fakeService{body: `{"temperature": 28, "condition": "Sunny"}`}
	client, _ := newTestClient(t, fake)

	resp, err := client.Generate(context.Background(), &Request{Prompt: "weather"})
	require.NoError(t, err)

	assert.JSONEq(t, fake.body, string(resp.Body))

	value, err := resp.Value()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"temperature": float64(28), "condition": "Sunny"}, value)

	var typed struct {
		Temperature float64 `json:"temperature"`
		Condition   string  `json:"condition"`
	}
	require.NoError(t, resp.Decode(&typed))
	assert.Equal(t, 28.0, typed.Temperature)
	assert.Equal(t, "Sunny", typed.Condition)
}

func TestGenerate_TrustsNonConformingResponseByDefault(t *testing.T) {
	fake := &fakeService{body: `{"temperature": "hot"}`}
	client, _ := newTestClient(t, fake)

	_, err := client.Generate(context.Background(), &Request{
		Prompt:         "weather",
		ResponseSchema: json.RawMessage(`{"type":"object","properties":{"temperature":{"type":"number"}}}`),
	})

	assert.NoError(t, err)
}

func TestGenerate_ValidateResponsesRejectsNonConforming(t *testing.T) {
	fake := &fakeService{body: `{"temperature": "hot"}`}
	client, _ := newTestClient(t, fake, func(c *Config) { c.ValidateResponses = true })

	_, err := client.Generate(context.Background(), &Request{
		Prompt:         "weather",
		ResponseSchema: json.RawMessage(`{"type":"object","properties":{"temperature":{"type":"number"}}}`),
	})

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "'/temperature'")
}

func TestGenerate_AcceptsNullableUnionType(t *testing.T) {
	fake := &fakeService{body: `{"condition": "Sunny", "alert": null}`}
	client, _ := newTestClient(t, fake, func(c *Config) { c.ValidateResponses = true })

	resp, err := client.Generate(context.Background(), &Request{
		Prompt:         "weather",
		ResponseSchema: json.RawMessage(`{"type":"object","properties":{"condition":{"type":"string"},"alert":{"type":["string","null"]}}}`),
	})
	require.NoError(t, err)

	assert.JSONEq(t, fake.body, string(resp.Body))
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestGenerate_SendsBearerToken(t *testing.T) {
	var auth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		io.WriteString(w, `{}`) //nolint:errcheck,gosec // test fixture
	})

	client, _ := newTestClient(t, handler, func(c *Config) { c.APIKey = "secret" })

	_, err := client.Generate(context.Background(), &Request{Prompt: "weather"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
}
