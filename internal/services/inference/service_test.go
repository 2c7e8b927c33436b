package inference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return newService(openai.NewClientWithConfig(cfg), "gpt-3.5-turbo")
}

func TestComplete(t *testing.T) {
	t.Run("returns first choice content", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": "chatcmpl-1",
				"object": "chat.completion",
				"choices": [{"index": 0, "message": {"role": "assistant", "content": "hi there"}}]
			}`))
		})

		reply, err := svc.Complete(context.Background(), "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply != "hi there" {
			t.Errorf("expected %q, got %q", "hi there", reply)
		}
	})

	t.Run("empty choices substitute fallback", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
		})

		reply, err := svc.Complete(context.Background(), "hello")
		if err != nil {
			t.Fatalf("fallback should not be an error, got %v", err)
		}
		if reply != fallbackReply {
			t.Errorf("expected fallback reply, got %q", reply)
		}
	})

	t.Run("upstream failure carries status", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"message": "rate limited", "type": "requests"}}`))
		})

		_, err := svc.Complete(context.Background(), "hello")
		if err == nil {
			t.Fatal("expected error")
		}

		var infErr *Error
		if !errors.As(err, &infErr) {
			t.Fatalf("expected *inference.Error, got %T", err)
		}
		if infErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, infErr.StatusCode)
		}
	})
}
