package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledAgent(t *testing.T) {
	_, err := Disabled{}.Answer(context.Background(), "cheapest milk", "")
	assert.ErrorIs(t, err, ErrAgentDisabled)
}

func TestClientAnswer(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := chatResponse{Choices: []chatChoice{
			{Message: chatMessage{Role: "assistant", Content: "Milk is cheapest on Zepto at 52."}},
		}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, APIKey: "test-key", Model: "gpt-4o-mini"})

	answer, err := c.Answer(context.Background(), "where is milk cheapest?", "tables: products, prices")
	require.NoError(t, err)
	assert.Equal(t, "Milk is cheapest on Zepto at 52.", answer)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "tables: products, prices")
}

func TestClientAnswerAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{Error: &apiError{Message: "model overloaded", Type: "server_error"}})
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "gpt-4o-mini"})

	_, err := c.Answer(context.Background(), "q", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestClientAnswerHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "gpt-4o-mini"})

	_, err := c.Answer(context.Background(), "q", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClientAnswerNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "gpt-4o-mini"})

	_, err := c.Answer(context.Background(), "q", "")
	assert.Error(t, err)
}
