package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notably/pkg/core"
)

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/Notes", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]core.Note{
			{ID: "1", Title: "a"},
			{ID: "2", Title: "b"},
		})
	}))
	defer srv.Close()

	notes, err := NewClient(srv.URL).List(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "a", notes[0].Title)
}

func TestClient_CreateSendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "groceries", body["title"])
		assert.Equal(t, "milk", body["content"])
		assert.NotContains(t, body, "id", "the server assigns the id")

		json.NewEncoder(w).Encode(core.Note{ID: "srv-9", Title: "groceries", Content: "milk"})
	}))
	defer srv.Close()

	n, err := NewClient(srv.URL).Create(context.Background(), "tok", "groceries", "milk")
	require.NoError(t, err)
	assert.Equal(t, "srv-9", n.ID)
}

func TestClient_UpdateWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/Notes/42", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id", "the id travels in the URL only")

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n, err := NewClient(srv.URL).Update(context.Background(), "tok", "42", "t", "c")
	require.NoError(t, err)
	assert.Nil(t, n, "no body means success without echo")
}

func TestClient_UpdateWithEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(core.Note{ID: "42", Title: "echoed"})
	}))
	defer srv.Close()

	n, err := NewClient(srv.URL).Update(context.Background(), "tok", "42", "t", "c")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "echoed", n.Title)
}

func TestClient_ErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"401 is an auth error", http.StatusUnauthorized, core.IsAuthError},
		{"403 is an auth error", http.StatusForbidden, core.IsAuthError},
		{"500 is a server error", http.StatusInternalServerError, core.IsServerError},
		{"404 is a server error", http.StatusNotFound, core.IsServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tc.status)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).List(context.Background(), "tok")
			require.Error(t, err)
			assert.True(t, tc.check(err), "got %v", err)

			var re *core.RemoteError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tc.status, re.Status)
			assert.Equal(t, "nope", re.Body)
		})
	}
}

func TestClient_UnreachableServerIsNetworkError(t *testing.T) {
	// Grab a port that is guaranteed closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, WithTimeout(2*time.Second)).List(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, core.IsNetworkError(err), "got %v", err)
}

func TestClient_EscapesNoteID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(core.Note{ID: "a/b"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Get(context.Background(), "tok", "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/api/Notes/a%2Fb", gotPath)
}

func TestClient_NoAuthorizationHeaderWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"token": "fresh"})
	}))
	defer srv.Close()

	tok, err := NewClient(srv.URL).Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
}
