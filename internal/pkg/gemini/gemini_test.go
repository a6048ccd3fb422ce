package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComplete_Success(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{
						{"text": "Hello "},
						{"text": "world"},
					},
				}},
			},
		})
	}))
	defer srv.Close()

	c := NewWithBaseURL("key", "gemini-1.5-flash", srv.URL)
	out, err := c.Complete(context.Background(), "say hello")
	require.NoError(t, err)
	require.Equal(t, "Hello world", out)

	require.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	require.Equal(t, "say hello", gotBody.Contents[0].Parts[0].Text)
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 429, "message": "quota exceeded"},
		})
	}))
	defer srv.Close()

	c := NewWithBaseURL("key", "gemini-1.5-flash", srv.URL)
	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestComplete_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	c := NewWithBaseURL("key", "gemini-1.5-flash", srv.URL)
	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
}

func TestComplete_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewWithBaseURL("key", "gemini-1.5-flash", srv.URL)
	_, err := c.Complete(ctx, "prompt")
	require.Error(t, err)
}
