// Package agent starts remote repair runs.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/justinpbarnett/healtop/internal/run"
	"go.uber.org/zap"
)

// ErrInvalidInput is returned before any request is made when the operator
// input is incomplete.
var ErrInvalidInput = errors.New("agent: invalid input")

// Started is the agent's answer to a trigger request.
type Started struct {
	RunID  run.ID
	Branch string
}

type Client struct {
	baseURL     string
	triggerPath string
	httpClient  *http.Client
	log         *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option { return func(cl *Client) { cl.httpClient = c } }
func WithLogger(l *zap.Logger) Option      { return func(cl *Client) { cl.log = l } }

func NewClient(baseURL, triggerPath string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		triggerPath: triggerPath,
		httpClient:  &http.Client{Timeout: timeout},
		log:         zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) URL() string {
	return c.baseURL + c.triggerPath
}

type triggerRequest struct {
	RepoURL    string `json:"repoUrl"`
	TeamName   string `json:"teamName"`
	LeaderName string `json:"leaderName"`
}

type triggerResponse struct {
	RunID  string `json:"run_id"`
	Branch string `json:"branch"`
}

// StartRun asks the agent to begin a run. It makes exactly one request and
// never retries.
func (c *Client) StartRun(ctx context.Context, in run.Input) (*Started, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	body, err := json.Marshal(triggerRequest{
		RepoURL:    in.RepoURL,
		TeamName:   in.TeamName,
		LeaderName: in.LeaderName,
	})
	if err != nil {
		return nil, fmt.Errorf("agent: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("agent: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("agent: reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("agent: trigger returned %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(raw)), 200))
	}

	var tr triggerResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return nil, fmt.Errorf("agent: parsing response: %w", err)
	}
	id := strings.TrimSpace(tr.RunID)
	if id == "" {
		return nil, errors.New("agent: response has no run_id")
	}

	c.log.Info("run started",
		zap.String("run_id", id),
		zap.String("repo", in.RepoURL),
		zap.String("branch", tr.Branch),
	)
	return &Started{RunID: run.ID(id), Branch: tr.Branch}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
