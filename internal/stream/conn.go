package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/justinpbarnett/healtop/internal/run"
	"go.uber.org/zap"
)

// ErrStreamEnded is reported when the agent closes the stream before the
// client did.
var ErrStreamEnded = errors.New("stream: ended by server")

// RunIDPlaceholder is substituted with the run id in the stream path.
const RunIDPlaceholder = "{run_id}"

type Client struct {
	baseURL       string
	path          string
	httpClient    *http.Client
	bufSize       int
	maxEventBytes int
	log           *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option { return func(cl *Client) { cl.httpClient = c } }
func WithBufferSize(n int) Option          { return func(cl *Client) { cl.bufSize = n } }
func WithMaxEventBytes(n int) Option       { return func(cl *Client) { cl.maxEventBytes = n } }
func WithLogger(l *zap.Logger) Option      { return func(cl *Client) { cl.log = l } }

// NewClient builds a stream client. path must contain {run_id}.
func NewClient(baseURL, path string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    path,
		// No client timeout: the stream is expected to stay open.
		httpClient: &http.Client{},
		bufSize:    64,
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// URL returns the stream endpoint for id.
func (c *Client) URL(id run.ID) string {
	return c.baseURL + strings.ReplaceAll(c.path, RunIDPlaceholder, url.PathEscape(string(id)))
}

// Dial opens the subscription for id. The returned Conn owns a reader
// goroutine until it is closed or the stream ends.
func (c *Client) Dial(ctx context.Context, id run.ID) (*Conn, error) {
	readCtx, cancel := context.WithCancel(context.Background())

	req, err := http.NewRequestWithContext(readCtx, http.MethodGet, c.URL(id), nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("stream: creating request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// ctx bounds only the connect phase; readCtx bounds the stream itself.
	stop := context.AfterFunc(ctx, cancel)
	resp, err := c.httpClient.Do(req)
	stop()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("stream: connecting to %s: %w", c.URL(id), err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("stream: %s returned %d", c.URL(id), resp.StatusCode)
	}

	conn := &Conn{
		frames: make(chan Frame, c.bufSize),
		done:   make(chan struct{}),
		cancel: cancel,
		body:   resp.Body,
		log:    c.log.With(zap.String("run_id", string(id))),
	}
	go conn.readLoop(readCtx, c.maxEventBytes)
	return conn, nil
}

// Conn is one live subscription. Frames is closed when the stream ends for
// any reason; Err then tells why.
type Conn struct {
	frames chan Frame
	done   chan struct{}
	cancel context.CancelFunc
	body   io.ReadCloser
	log    *zap.Logger

	closeOnce sync.Once
	mu        sync.Mutex
	closed    bool
	err       error
}

func (c *Conn) Frames() <-chan Frame { return c.frames }

// Done is closed once the reader goroutine has exited.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Err returns the transport error that ended the stream, or nil when the
// connection was closed by Close. Only meaningful after Done.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close tears the subscription down. It is idempotent and returns once the
// reader goroutine has exited, so no frame is sent after it returns.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		c.cancel()
		c.body.Close()
	})
	<-c.done
	return nil
}

func (c *Conn) readLoop(ctx context.Context, maxEventBytes int) {
	defer close(c.done)
	defer close(c.frames)
	defer c.body.Close()

	err := readFrames(c.body, maxEventBytes, func(f Frame) bool {
		select {
		case <-ctx.Done():
			return false
		case c.frames <- f:
			return true
		}
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if err == nil {
		err = ErrStreamEnded
	}
	c.err = err
	c.log.Warn("stream ended", zap.Error(err))
}
