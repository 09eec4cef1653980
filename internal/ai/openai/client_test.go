package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/azim128/jobify/internal/shared/apperr"
)

func withServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	apiURL = server.URL

	client, err := NewClient("test-key", "gpt-3.5-turbo", 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestGenerateSendsJSONConstrainedRequest(t *testing.T) {
	var lastBody map[string]any
	var lastAuth string

	client := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		lastAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&lastBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices":[{"message":{"content":"{\"ok\":true}"}}],
			"usage":{"prompt_tokens":10,"completion_tokens":20,"total_tokens":30}
		}`))
	})

	content, usage, err := client.Generate(context.Background(), "system text", "user text")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if content != `{"ok":true}` {
		t.Errorf("content = %q", content)
	}
	if usage.TotalTokens != 30 || usage.PromptTokens != 10 {
		t.Errorf("usage = %+v", usage)
	}
	if lastAuth != "Bearer test-key" {
		t.Errorf("authorization = %q", lastAuth)
	}
	if lastBody["model"] != "gpt-3.5-turbo" {
		t.Errorf("model = %v", lastBody["model"])
	}
	format, _ := lastBody["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Errorf("response_format = %v", lastBody["response_format"])
	}
	messages, _ := lastBody["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("messages = %v", lastBody["messages"])
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "system text" {
		t.Errorf("system message = %v", first)
	}
}

func TestGenerateStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   apperr.Kind
		msg    string
	}{
		{"unauthorized", http.StatusUnauthorized, apperr.KindConfiguration, "Invalid API key configuration"},
		{"rate limited", http.StatusTooManyRequests, apperr.KindRateLimited, "Rate limit exceeded. Please try again later"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := withServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"test"}}`))
			})

			_, _, err := client.Generate(context.Background(), "s", "p")
			if !apperr.IsKind(err, tc.kind) {
				t.Fatalf("kind = %v, err = %v", apperr.KindOf(err), err)
			}
			if apperr.Message(err) != tc.msg {
				t.Errorf("message = %q", apperr.Message(err))
			}
		})
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	client := withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, _, err := client.Generate(context.Background(), "s", "p")
	if !apperr.IsKind(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGenerateConnectionFailure(t *testing.T) {
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	// A server that is already closed refuses connections.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	apiURL = server.URL
	server.Close()

	client, err := NewClient("test-key", "gpt-3.5-turbo", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, _, err = client.Generate(context.Background(), "s", "p")
	if !apperr.IsKind(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-3.5-turbo", time.Second); err == nil {
		t.Error("expected error for empty api key")
	}
	if _, err := NewClient("key", "", time.Second); err == nil {
		t.Error("expected error for empty model")
	}
}
