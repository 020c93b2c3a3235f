package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/daygrid/internal/storage"
)

// StatusError is a non-2xx response from the task server.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: http %d", e.Code)
	}
	return fmt.Sprintf("remote: http %d: %s", e.Code, e.Message)
}

// Unwrap maps 404 and 409 onto the storage sentinels.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return storage.ErrNotFound
	case http.StatusConflict:
		return storage.ErrConflict
	default:
		return nil
	}
}

// Client talks to a daygrid server. It satisfies storage.Rows and
// storage.DayReplacer. The userID arguments are ignored: the server derives
// the user from the token.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
	log   zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote: server url must be http or https, got %q", baseURL)
	}
	c := &Client{
		base:  u,
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) SelectByOwner(ctx context.Context, _ string, filter storage.RowFilter) ([]storage.Row, error) {
	q := url.Values{}
	if filter.Date != "" {
		q.Set("date", filter.Date)
	}
	var out []storage.Row
	if err := c.do(ctx, http.MethodGet, "/api/tasks", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRow(ctx context.Context, _ string, id int64) (storage.Row, error) {
	var out storage.Row
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return storage.Row{}, err
	}
	return out, nil
}

func (c *Client) DeleteByOwnerAndDate(ctx context.Context, _ string, date string) (int64, error) {
	var out struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/tasks", url.Values{"date": {date}}, nil, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

func (c *Client) BulkInsert(ctx context.Context, _ string, rows []storage.Row) ([]storage.Row, error) {
	var out []storage.Row
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, rows, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ReplaceDay(ctx context.Context, _ string, date string, rows []storage.Row) ([]storage.Row, error) {
	if rows == nil {
		rows = []storage.Row{}
	}
	var out []storage.Row
	if err := c.do(ctx, http.MethodPut, "/api/days/"+url.PathEscape(date), nil, rows, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("remote call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeStatusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("remote: decode response: %w", err)
	}
	return nil
}

func decodeStatusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == "" {
		payload.Error = strings.TrimSpace(string(raw))
	}
	return &StatusError{Code: resp.StatusCode, Message: payload.Error}
}
