package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/jogjachat/internal/api"
	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/liliang-cn/jogjachat/internal/repository"
	"github.com/liliang-cn/jogjachat/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "stub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewSessionRepository(db)
	router := api.SetupRouter(
		service.NewNPCService(nil, repo, nil),
		service.NewAdminService(nil, repo),
		api.RouterConfig{AllowOrigins: []string{"*"}},
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_AskAndForget(t *testing.T) {
	srv := newStubServer(t)
	c := New(srv.URL+"/", 5*time.Second, nil)
	ctx := context.Background()

	resp, err := c.Ask(ctx, "Harga gudeg?", "abc-123")
	require.NoError(t, err)
	assert.Contains(t, resp.Response, "Gudeg Kaleng")
	assert.False(t, resp.IsError)

	require.NoError(t, c.Forget(ctx, "abc-123"))
	// forgetting an unknown session still succeeds
	require.NoError(t, c.Forget(ctx, "never-seen"))
}

func TestClient_AskSendsPayload(t *testing.T) {
	var got domain.AskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ask-npc", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"**oops**","isError":true}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, time.Second, nil).Ask(context.Background(), "halo", "sid")
	require.NoError(t, err)
	assert.Equal(t, domain.AskRequest{Message: "halo", SessionID: "sid"}, got)
	assert.Equal(t, "**oops**", resp.Response)
	assert.True(t, resp.IsError)
}

func TestClient_AskFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: domain.ErrBadStatus,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
			want: domain.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := New(srv.URL, time.Second, nil).Ask(context.Background(), "halo", "sid")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, nil)
	_, err := c.Ask(context.Background(), "halo", "sid")
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorIs(t, c.Forget(context.Background(), "sid"), domain.ErrTransport)
}

func TestClient_AskCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.URL, 5*time.Second, nil).Ask(ctx, "halo", "sid")
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestClient_ForgetEscapesSessionID(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		path = r.URL.EscapedPath()
		w.Write([]byte(`{"deleted":0}`))
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, time.Second, nil).Forget(context.Background(), "a/b c"))
	assert.Equal(t, "/api/conversation/a%2Fb%20c", path)
}
