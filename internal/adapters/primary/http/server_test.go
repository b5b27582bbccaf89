package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// stubRenderer wraps markdown in a minimal page without goldmark.
type stubRenderer struct {
	failRender bool
}

func (r *stubRenderer) Render(markdown []byte) (string, error) {
	if r.failRender {
		return "", entities.NewRenderError(errors.New("boom"))
	}
	return "<html><body>" + string(markdown) + "</body></html>", nil
}

func (r *stubRenderer) Sanitize(html string) string {
	return strings.ReplaceAll(html, "<script>", "")
}

func newTestServer(t *testing.T) (*PreviewServer, *httptest.Server) {
	t.Helper()

	s := NewPreviewServer(entities.PreviewConfig{Host: "localhost", Port: 0}, &stubRenderer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go s.hub.Run(ctx)

	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)

	return s, ts
}

func TestPreviewServer_Index(t *testing.T) {
	t.Run("no document loaded yet", func(t *testing.T) {
		_, ts := newTestServer(t)

		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("serves the rendered page", func(t *testing.T) {
		s, ts := newTestServer(t)
		require.NoError(t, s.SetDocument([]byte("# demo.pptx\n")))

		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "# demo.pptx")
	})
}

func TestPreviewServer_Markdown(t *testing.T) {
	s, ts := newTestServer(t)
	content := "# demo.pptx\n\n## Intro\n\n---\n\n"
	require.NoError(t, s.SetDocument([]byte(content)))

	resp, err := http.Get(ts.URL + "/markdown")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/markdown; charset=utf-8", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, string(body))
}

func TestPreviewServer_SetDocumentRenderFailure(t *testing.T) {
	s := NewPreviewServer(entities.PreviewConfig{}, &stubRenderer{failRender: true}, nil)

	err := s.SetDocument([]byte("x"))
	require.Error(t, err)
	assert.Equal(t, entities.ErrorTypeRender, entities.ErrorTypeOf(err))
}

func TestPreviewServer_WebSocket(t *testing.T) {
	s, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = conn.Close() }()

	var connected Event
	require.NoError(t, conn.ReadJSON(&connected))
	assert.Equal(t, EventTypeConnected, connected.Type)

	// Wait for the hub to register the client before broadcasting.
	require.Eventually(t, func() bool { return s.hub.Count() == 1 },
		2*time.Second, 10*time.Millisecond)

	s.BroadcastProgress(42)

	var progress Event
	require.NoError(t, conn.ReadJSON(&progress))
	assert.Equal(t, EventTypeProgress, progress.Type)
	assert.Equal(t, 42, progress.Percent)

	s.BroadcastComplete("/out/demo.md")

	var complete Event
	require.NoError(t, conn.ReadJSON(&complete))
	assert.Equal(t, EventTypeComplete, complete.Type)
	assert.Equal(t, 100, complete.Percent)
	assert.Equal(t, "/out/demo.md", complete.Path)
}

func TestPreviewServer_StartStop(t *testing.T) {
	s := NewPreviewServer(entities.PreviewConfig{Host: "127.0.0.1", Port: 0}, &stubRenderer{}, nil)
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	assert.Error(t, s.Start(ctx), "second start must be rejected")

	require.NoError(t, s.Stop(ctx))
	assert.Error(t, s.Stop(ctx), "second stop must be rejected")
}

func TestIsLocalOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"same origin", "", true},
		{"localhost", "http://localhost:5273", true},
		{"loopback", "http://127.0.0.1:8080", true},
		{"remote host", "http://evil.example.com", false},
		{"garbage", "://bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, isLocalOrigin(r))
		})
	}
}
