package descriptiongen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitplanhub/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.DescriptionGen{
		APIURL: url,
		APIKey: "test-key",
	})
}

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Power Plan")
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Anna")

		resp := generateResponse{}
		resp.Candidates = []struct {
			Content content `json:"content"`
		}{
			{Content: content{Parts: []part{{Text: "  Great plan description  "}}}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	got, err := client.Generate(context.Background(), "Power Plan", 30, "Anna")
	require.NoError(t, err)
	assert.Equal(t, "Great plan description", got)
}

func TestClient_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	got, err := client.Generate(context.Background(), "Power Plan", 30, "Anna")
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestClient_Generate_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	got, err := client.Generate(context.Background(), "Power Plan", 30, "Anna")
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestClient_Generate_MissingAPIKey(t *testing.T) {
	client := NewClient(config.DescriptionGen{APIURL: "http://localhost:0"})

	got, err := client.Generate(context.Background(), "Power Plan", 30, "Anna")
	assert.Error(t, err)
	assert.Empty(t, got)
}
