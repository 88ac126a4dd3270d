package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/craftline/pos-terminal/pkg/errors"
	"github.com/craftline/pos-terminal/pkg/logger"
)

var (
	errBaseURLRequired = errors.New("rest client base URL is required")
	errLoggerRequired  = errors.New("rest client logger is required")
)

// Client is a JSON REST client for one upstream service, with centralized
// logging and error mapping.
type Client struct {
	name    string
	baseURL *url.URL
	http    *http.Client
	logger  *logger.Logger
}

// StatusError reports a completed request the upstream rejected.
// Detail carries the server's structured {detail} text when present.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("status %d", e.Status)
}

// NewClient validates the upstream location and builds the wrapper.
func NewClient(name, baseURL string, timeout time.Duration, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parsing %s base URL: %w", name, err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		name:    name,
		baseURL: parsed,
		http:    &http.Client{Timeout: timeout},
		logger:  logg,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		q := target.Query()
		for k, vals := range query {
			for _, v := range vals {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("%s: encoding %s %s body", c.name, method, path))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("%s: building %s %s", c.name, method, path))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	lctx := c.logger.WithFields(ctx, map[string]any{
		"upstream": c.name,
		"method":   method,
		"path":     path,
	})
	c.logger.Info(lctx, "upstream request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error(lctx, "upstream request failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s %s failed", c.name, method, path))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(lctx, "upstream response unreadable", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s %s: reading response", c.name, method, path))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Status: resp.StatusCode, Detail: extractDetail(raw)}
		c.logger.Error(lctx, "upstream rejected request", statusErr)
		return pkgerrors.Wrap(codeForStatus(resp.StatusCode), statusErr, fmt.Sprintf("%s %s %s rejected", c.name, method, path))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			c.logger.Error(lctx, "upstream response undecodable", err)
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s %s: decoding response", c.name, method, path))
		}
	}

	c.logger.Info(c.logger.WithField(lctx, "status", resp.StatusCode), "upstream response")
	return nil
}

func extractDetail(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Detail)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusUnprocessableEntity:
		return pkgerrors.CodeStateConflict
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeRemote
		}
		return pkgerrors.CodeDependency
	}
}
