package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// sseServer serves the given raw SSE chunks for /api/stream/{id}, flushing
// after each. When hold is non-nil the handler blocks on it after writing.
func sseServer(t *testing.T, chunks []string, hold <-chan struct{}) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/stream/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "missing" {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, c := range chunks {
			fmt.Fprint(w, c)
			flusher.Flush()
		}
		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
			}
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func drain(t *testing.T, c *Conn) []Frame {
	t.Helper()
	var frames []Frame
	timeout := time.After(2 * time.Second)
	for {
		select {
		case f, ok := <-c.Frames():
			if !ok {
				return frames
			}
			frames = append(frames, f)
		case <-timeout:
			t.Fatal("timeout waiting for stream to end")
			return frames
		}
	}
}

func TestClientURL(t *testing.T) {
	c := NewClient("http://127.0.0.1:8000/", "/api/stream/{run_id}")
	assert.Equal(t, "http://127.0.0.1:8000/api/stream/abc-123", c.URL("abc-123"))
	assert.Equal(t, "http://127.0.0.1:8000/api/stream/a%2Fb", c.URL("a/b"))
}

func TestDialDeliversFramesThenEnds(t *testing.T) {
	srv := sseServer(t, []string{
		"event: status\ndata: RUNNING\n\n",
		"event: step\ndata: 1\n\n",
	}, nil)

	c := NewClient(srv.URL, "/api/stream/{run_id}")
	conn, err := c.Dial(context.Background(), "r1")
	require.NoError(t, err)
	defer conn.Close()

	frames := drain(t, conn)
	require.Len(t, frames, 2)
	assert.Equal(t, "status", frames[0].Event)
	assert.Equal(t, "1", frames[1].Data)

	<-conn.Done()
	assert.True(t, errors.Is(conn.Err(), ErrStreamEnded), "expected ErrStreamEnded, got %v", conn.Err())
}

func TestDialNonOKStatus(t *testing.T) {
	srv := sseServer(t, nil, nil)

	c := NewClient(srv.URL, "/api/stream/{run_id}")
	conn, err := c.Dial(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Contains(t, err.Error(), "404")
}

func TestDialConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, "/api/stream/{run_id}")
	_, err := c.Dial(context.Background(), "r1")
	require.Error(t, err)
}

func TestCloseIsIdempotentAndSuppressesError(t *testing.T) {
	hold := make(chan struct{})
	defer close(hold)
	srv := sseServer(t, []string{"event: status\ndata: RUNNING\n\n"}, hold)

	c := NewClient(srv.URL, "/api/stream/{run_id}")
	conn, err := c.Dial(context.Background(), "r1")
	require.NoError(t, err)

	f := <-conn.Frames()
	assert.Equal(t, "RUNNING", f.Data)

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	select {
	case <-conn.Done():
	default:
		t.Fatal("expected reader to have exited after Close")
	}
	assert.NoError(t, conn.Err())

	_, ok := <-conn.Frames()
	assert.False(t, ok, "expected frames channel to be closed")
}

func TestDialContextOnlyBoundsConnect(t *testing.T) {
	hold := make(chan struct{})
	defer close(hold)
	srv := sseServer(t, []string{"event: step\ndata: 2\n\n"}, hold)

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(srv.URL, "/api/stream/{run_id}")
	conn, err := c.Dial(ctx, "r1")
	require.NoError(t, err)
	cancel()

	select {
	case f := <-conn.Frames():
		assert.Equal(t, "2", f.Data)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the stream to survive cancelling the dial context")
	}
	conn.Close()
}
