package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// messageJSON builds a Messages API reply carrying the given text blocks.
func messageJSON(texts ...string) (body []byte) {
	content := make([]map[string]interface{}, 0, len(texts))
	for _, text := range texts {
		content = append(content, map[string]interface{}{"type": "text", "text": text})
	}

	body, _ = json.Marshal(map[string]interface{}{
		"id":            "msg_test",
		"type":          "message",
		"role":          "assistant",
		"model":         ClaudeModel,
		"content":       content,
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"usage": map[string]interface{}{
			"input_tokens":  12,
			"output_tokens": 34,
		},
	})
	return body
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "")

	if client == nil {
		t.Fatal("Expected non-nil client")
	}

	if client.Model() != ClaudeModel {
		t.Errorf("Expected default model '%s', got '%s'", ClaudeModel, client.Model())
	}

	if client.maxTokens != DefaultMaxTokens {
		t.Errorf("Expected max tokens %d, got %d", DefaultMaxTokens, client.maxTokens)
	}

	custom := NewClient("test-api-key", "claude-test", WithMaxTokens(100), WithEndpoint("http://localhost:1"))
	if custom.Model() != "claude-test" {
		t.Errorf("Expected model 'claude-test', got '%s'", custom.Model())
	}
	if custom.maxTokens != 100 {
		t.Errorf("Expected max tokens 100, got %d", custom.maxTokens)
	}
}

func TestGenerate(t *testing.T) {
	var gotPrompt string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request.
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Error("Missing or incorrect API key header")
		}

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content []struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("Failed to parse request: %v", err)
		}
		if req.Model != ClaudeModel {
			t.Errorf("Expected model '%s', got '%s'", ClaudeModel, req.Model)
		}
		if len(req.Messages) == 1 && len(req.Messages[0].Content) == 1 {
			gotPrompt = req.Messages[0].Content[0].Text
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(messageJSON("  Hello Asha!\n\n", "Here is your roadmap.\n"))
	}))
	defer server.Close()

	client := NewClient("test-key", "", WithEndpoint(server.URL))

	text, err := client.Generate(context.Background(), "Build my roadmap")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if gotPrompt != "Build my roadmap" {
		t.Errorf("Expected prompt to be sent verbatim, got '%s'", gotPrompt)
	}

	if text != "Hello Asha!\n\nHere is your roadmap." {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestGenerateSingleAttempt(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "api_error", "message": "boom"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "", WithEndpoint(server.URL))

	_, err := client.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("Expected error for server failure, got nil")
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected exactly 1 request, got %d", got)
	}
}

func TestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "invalid_request_error", "message": "Invalid request"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "", WithEndpoint(server.URL))

	_, err := client.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("Expected error for bad request, got nil")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected GenerationError, got %T", err)
	}

	if genErr.Model != ClaudeModel {
		t.Errorf("Expected model on error, got '%s'", genErr.Model)
	}

	if !strings.Contains(err.Error(), "400") {
		t.Errorf("Error should mention status code 400: %v", err)
	}
}

func TestEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(messageJSON())
	}))
	defer server.Close()

	client := NewClient("test-key", "", WithEndpoint(server.URL))

	_, err := client.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("Expected error for empty content, got nil")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected GenerationError, got %T", err)
	}

	if !strings.Contains(err.Error(), "no text content") {
		t.Errorf("Error should mention 'no text content': %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("test-key", "", WithEndpoint(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "prompt")
	if err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Errorf("Expected GenerationError, got %T", err)
	}
}

func TestGenerationErrorUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := &GenerationError{Model: "m", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("GenerationError should unwrap to its cause")
	}

	if err.Error() != "roadmap generation failed (model m): timeout" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "with markdown code fence",
			input:    "```markdown\n# Roadmap\n\nStep one\n```",
			expected: "# Roadmap\n\nStep one",
		},
		{
			name:     "bare fence",
			input:    "```\nplain\n```",
			expected: "plain",
		},
		{
			name:     "without code fence",
			input:    "# Roadmap",
			expected: "# Roadmap",
		},
		{
			name:     "with extra whitespace",
			input:    "\n```md\nHello\n\n```\n",
			expected: "Hello",
		},
		{
			name:     "inline fence is kept",
			input:    "Use ```go``` blocks",
			expected: "Use ```go``` blocks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripCodeFence(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}
