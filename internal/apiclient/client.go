// Package apiclient is the single configured HTTP client for the remote
// back-office API: base URL, per-session credentials, JSON envelopes and
// error normalisation into the domain taxonomy.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/utils"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// Credentials authenticate one staff session against the upstream.
type Credentials struct {
	Cookie string `json:"cookie,omitempty"`
	Token  string `json:"token,omitempty"`
}

func (c Credentials) Empty() bool {
	return strings.TrimSpace(c.Cookie) == "" && strings.TrimSpace(c.Token) == ""
}

// Envelope is the upstream response body: {data, totalPage, total, message}.
type Envelope[T any] struct {
	Data      T      `json:"data"`
	TotalPage int    `json:"totalPage,omitempty"`
	Total     int    `json:"total,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Client is safe for concurrent use. WithCredentials returns a copy bound to
// one session.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	creds     Credentials
	requestID string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithCredentials returns a client that authenticates as creds.
func (c *Client) WithCredentials(creds Credentials) *Client {
	cp := *c
	cp.creds = creds
	return &cp
}

// WithRequestID returns a client that forwards X-Request-ID and tags its logs.
func (c *Client) WithRequestID(id string) *Client {
	cp := *c
	cp.requestID = id
	return &cp
}

// Timeout is the per-request limit of the underlying HTTP client.
func (c *Client) Timeout() time.Duration { return c.http.Timeout }

// Credentials returns the credentials the client sends.
func (c *Client) Credentials() Credentials { return c.creds }

// Response is the raw outcome of a successful call.
type Response struct {
	Status  int
	Header  http.Header
	Cookies []*http.Cookie
	Body    []byte
}

// Do sends one request. body is JSON-encoded when non-nil; out, when
// non-nil, receives the decoded response body.
func (c *Client) Do(ctx context.Context, method, path string, query map[string]string, body, out any) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		utils.LogEvent(c.requestID, "upstream", "transport_error", method+" "+path+" err="+err.Error())
		return nil, domain.UpstreamError{Msg: "upstream unreachable", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamError{Status: resp.StatusCode, Msg: "read response", Err: err}
	}
	utils.LogEvent(c.requestID, "upstream", strings.ToLower(method),
		fmt.Sprintf("path=%s status=%d latency_ms=%d", path, resp.StatusCode, time.Since(start).Milliseconds()))

	if resp.StatusCode >= 400 {
		return nil, normalizeError(resp.StatusCode, raw)
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, domain.UpstreamError{Status: resp.StatusCode, Msg: "malformed response body", Err: err}
		}
	}
	return &Response{
		Status:  resp.StatusCode,
		Header:  resp.Header,
		Cookies: resp.Cookies(),
		Body:    raw,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query map[string]string, body any) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		q := url.Values{}
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, domain.InternalError{Msg: "encode request body", Err: err}
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return nil, domain.InternalError{Msg: "build upstream request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestID != "" {
		req.Header.Set("X-Request-ID", c.requestID)
	}
	if ck := strings.TrimSpace(c.creds.Cookie); ck != "" {
		req.Header.Set("Cookie", ck)
	}
	if tok := strings.TrimSpace(c.creds.Token); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// Get decodes the envelope of a GET call.
func Get[T any](ctx context.Context, c *Client, path string, query map[string]string) (Envelope[T], error) {
	var env Envelope[T]
	_, err := c.Do(ctx, http.MethodGet, path, query, nil, &env)
	return env, err
}

// Send performs a write and decodes the envelope.
func Send[T any](ctx context.Context, c *Client, method, path string, body any) (Envelope[T], error) {
	var env Envelope[T]
	_, err := c.Do(ctx, method, path, nil, body, &env)
	return env, err
}

// CookieHeader serialises cookies into a Cookie request header value,
// sorted by name so that equal sets compare equal.
func CookieHeader(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		if ck == nil || ck.Name == "" || ck.MaxAge < 0 {
			continue
		}
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "; ")
}

type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

// normalizeError maps an upstream failure status to the domain taxonomy.
func normalizeError(status int, raw []byte) error {
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	msg := strings.TrimSpace(eb.Message)
	if msg == "" {
		msg = strings.TrimSpace(eb.Error)
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ValidationError{Msg: msg, Fields: fieldErrors(eb.Errors)}
	case http.StatusUnauthorized:
		return domain.UnauthorizedError{Msg: msg}
	case http.StatusForbidden:
		return domain.ForbiddenError{Msg: msg}
	case http.StatusNotFound:
		nf := domain.NotFoundError{}
		if msg != "" {
			nf.Err = errors.New(msg)
		}
		return nf
	case http.StatusConflict:
		return domain.ConflictError{Msg: msg}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return domain.UpstreamError{Status: status, Msg: msg}
}

// fieldErrors accepts {"field": "msg"}, {"field": ["msg", ...]} and
// [{"field"|"path": ..., "message"|"msg": ...}].
func fieldErrors(raw json.RawMessage) map[string]string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	out := map[string]string{}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err == nil {
		for k, v := range asMap {
			var s string
			if json.Unmarshal(v, &s) == nil {
				out[k] = s
				continue
			}
			var list []string
			if json.Unmarshal(v, &list) == nil && len(list) > 0 {
				out[k] = list[0]
			}
		}
		return out
	}

	var asList []struct {
		Field   string `json:"field"`
		Path    string `json:"path"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &asList); err == nil {
		for _, it := range asList {
			key := it.Field
			if key == "" {
				key = it.Path
			}
			if key == "" {
				continue
			}
			m := it.Message
			if m == "" {
				m = it.Msg
			}
			out[key] = m
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsRetryable reports whether a failed fetch may succeed on a retry.
func IsRetryable(err error) bool {
	var up domain.UpstreamError
	if errors.As(err, &up) {
		return up.Status == 0 || up.Status >= 500
	}
	return errors.Is(err, context.DeadlineExceeded)
}
