package hsn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-hsn-details", r.URL.Path)
		assert.Equal(t, "9403", r.URL.Query().Get("hsncode"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"message": "ok",
			"data": {
				"hsncode": "9403",
				"sgstrate": 9,
				"cgstrate": 9,
				"igstrate": 18,
				"description": "Other furniture and parts thereof"
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.Lookup(context.Background(), "9403")
	require.NoError(t, err)

	assert.Equal(t, "9403", got.HSNCode)
	assert.Equal(t, 9.0, got.SGSTRate)
	assert.Equal(t, 9.0, got.CGSTRate)
	assert.Equal(t, 18.0, got.IGSTRate)
	assert.Equal(t, "Other furniture and parts thereof", got.Description)
}

func TestLookup_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "message": "invalid hsn code"}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Lookup(context.Background(), "bad")
	require.Error(t, err)

	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "bad", le.Code)
	assert.Contains(t, le.Message, "invalid hsn code")
}

func TestLookup_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Lookup(context.Background(), "9403")
	require.Error(t, err)

	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Message, "502")
}

func TestLookup_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Lookup(ctx, "9403")
	assert.Error(t, err)
}

func TestLookup_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.Lookup(context.Background(), "9403")
	assert.Error(t, err)
}
