package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{Endpoint: srv.URL, APIKey: "test-key"})
}

func TestCompleteSendsPromptAndAuth(t *testing.T) {
	var got completionRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		io.WriteString(w, `{"choices":[{"message":{"content":"hello there"}}]}`)
	})

	out, err := client.Complete(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
	assert.Equal(t, "say hi", got.Prompt)
	assert.Equal(t, defaultModel, got.Model)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
}

func TestCompleteResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"chat message", `{"choices":[{"message":{"content":"a"}}]}`, "a"},
		{"plain text choice", `{"choices":[{"text":"b"}]}`, "b"},
		{"result field", `{"result":"c"}`, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			})
			out, err := client.Complete(context.Background(), "p")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCompleteEmptyResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	_, err := client.Complete(context.Background(), "p")
	assert.ErrorContains(t, err, "no text")
}

func TestCompleteNon200(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, "rate limited")
	})

	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteMissingEndpoint(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

func TestCompleteHonorsContext(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Complete(ctx, "p")
	assert.Error(t, err)
}
