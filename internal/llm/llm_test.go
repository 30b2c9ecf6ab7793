package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFactory_CreateProvider(t *testing.T) {
	factory := NewFactory()

	if _, err := factory.CreateProvider(ProviderTypeGemini, map[string]string{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Gemini without api_key should return ErrMissingAPIKey, got %v", err)
	}

	if _, err := factory.CreateProvider(ProviderTypeOpenAI, map[string]string{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("OpenAI without api_key should return ErrMissingAPIKey, got %v", err)
	}

	if _, err := factory.CreateProvider(ProviderType("bogus"), nil); !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("Unknown type should return ErrUnsupportedProvider, got %v", err)
	}

	provider, err := factory.CreateProvider(ProviderTypeMock, nil)
	if err != nil {
		t.Fatalf("Mock provider creation failed: %v", err)
	}
	if provider.Name() != "mock" {
		t.Errorf("Expected mock provider name, got %q", provider.Name())
	}

	openai, err := factory.CreateProvider(ProviderTypeOpenAI, map[string]string{"api_key": "sk-test"})
	if err != nil {
		t.Fatalf("OpenAI provider creation failed: %v", err)
	}
	if openai.Name() != "openai" {
		t.Errorf("Expected openai provider name, got %q", openai.Name())
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"generated text"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", "test-model", server.URL)
	text, err := provider.Generate(context.Background(), GenerateRequest{
		System:      "you are a journalist",
		Prompt:      "write something",
		Temperature: 0.5,
		MaxTokens:   256,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if text != "generated text" {
		t.Errorf("Expected generated text, got %q", text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("Expected model threaded through, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("Expected system+user messages, got %+v", gotReq.Messages)
	}
	if gotReq.MaxTokens != 256 {
		t.Errorf("Expected max_tokens threaded through, got %d", gotReq.MaxTokens)
	}
}

func TestOpenAIProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", "", server.URL)
	if _, err := provider.Generate(context.Background(), GenerateRequest{Prompt: "x"}); !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("Non-200 should map to ErrProviderUnavailable, got %v", err)
	}
}

func TestOpenAIProvider_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider("sk-test", "", server.URL)
	if _, err := provider.Generate(context.Background(), GenerateRequest{Prompt: "x"}); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Empty choices should map to ErrEmptyResponse, got %v", err)
	}
}

func TestMockProvider_ResponseSequence(t *testing.T) {
	mock := NewMockProvider().WithResponses("first", "second")

	for i, want := range []string{"first", "second", "second"} {
		got, err := mock.Generate(context.Background(), GenerateRequest{Prompt: "p"})
		if err != nil {
			t.Fatalf("Generate %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("Response %d = %q, want %q", i, got, want)
		}
	}

	if len(mock.Requests()) != 3 {
		t.Errorf("Expected 3 recorded requests, got %d", len(mock.Requests()))
	}
}
