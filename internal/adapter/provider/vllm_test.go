package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVLLMProviderGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var request map[string]any
		assert.NoError(t, json.Unmarshal(body, &request))
		assert.Equal(t, "Genere des questions", request["prompt"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": ["{\"items\": []}"]}`))
	}))
	defer server.Close()

	vllm, err := NewVLLMProvider(server.URL, 0)
	assert.NoError(t, err)

	raw, err := vllm.Generate(context.Background(), "Genere des questions")
	assert.NoError(t, err)
	assert.Equal(t, `{"items": []}`, raw)
}

func TestVLLMProviderAcceptsStringTextField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text": "reponse directe"}`))
	}))
	defer server.Close()

	vllm, err := NewVLLMProvider(server.URL, 0)
	assert.NoError(t, err)

	raw, err := vllm.Generate(context.Background(), "prompt")
	assert.NoError(t, err)
	assert.Equal(t, "reponse directe", raw)
}

func TestVLLMProviderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	vllm, err := NewVLLMProvider(server.URL, 0)
	assert.NoError(t, err)

	_, err = vllm.Generate(context.Background(), "prompt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestVLLMProviderRequiresServerURL(t *testing.T) {
	_, err := NewVLLMProvider("", 0)
	assert.Error(t, err)
}
