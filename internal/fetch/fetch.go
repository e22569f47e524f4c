package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultUserAgent identifies requests as a regular desktop browser.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	// DefaultTimeout bounds a single request including redirects and body read.
	DefaultTimeout = 15 * time.Second
	// DefaultRedirectMaxHops caps redirect following.
	DefaultRedirectMaxHops = 10
	// DefaultMaxBodyBytes caps how much of a response body is read.
	DefaultMaxBodyBytes int64 = 16 << 20
)

// Client issues single GET requests with a fixed User-Agent, a per-request
// timeout and transparent redirect following. It never retries.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// RedirectMaxHops caps redirect following to avoid loops. Zero means DefaultRedirectMaxHops.
	RedirectMaxHops int
	// MaxBodyBytes caps the body read. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Response is the outcome of a completed HTTP exchange. Non-2xx statuses are
// reported here rather than as errors so callers can classify them.
type Response struct {
	StatusCode int
	// Reason is the status reason phrase, e.g. "Not Found".
	Reason string
	// URL is the effective URL after redirects.
	URL         string
	ContentType string
	// Body is decoded to UTF-8 using the declared or sniffed charset.
	Body []byte
}

// ErrBodyTooLarge means the response body exceeded MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// TransportError reports a failure below HTTP: DNS, refused connections,
// TLS, timeouts, redirect policy violations.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline expiry.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(e.Err, &te) && te.Timeout()
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.timeout(), CheckRedirect: c.checkRedirectFunc()}
}

// Get issues one GET for rawURL. Transport failures come back as
// *TransportError; any completed HTTP exchange yields a Response.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: fmt.Errorf("new request: %w", err)}
	}
	// Reject non-HTTP(S) schemes early
	if !isHTTPScheme(req.URL) {
		return nil, &TransportError{URL: rawURL, Err: fmt.Errorf("unsupported URL scheme: %q", req.URL.Scheme)}
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	ctx, cancel := context.WithTimeout(req.Context(), c.timeout())
	defer cancel()
	req = req.WithContext(ctx)

	start := time.Now()
	log.Debug().Str("url", rawURL).Msg("fetch start")
	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", rawURL).Dur("elapsed", time.Since(start)).Msg("fetch failed")
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	out := &Response{
		StatusCode:  resp.StatusCode,
		Reason:      reasonPhrase(resp),
		URL:         rawURL,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		out.URL = resp.Request.URL.String()
	}

	if resp.StatusCode == http.StatusOK {
		body, err := c.readBody(resp)
		if err != nil {
			return nil, &TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
		}
		out.Body = body
	} else {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	}

	log.Debug().
		Str("url", rawURL).
		Str("final_url", out.URL).
		Int("status", out.StatusCode).
		Int("bytes", len(out.Body)).
		Dur("elapsed", time.Since(start)).
		Msg("fetch done")
	return out, nil
}

// readBody reads at most limit raw bytes, failing rather than truncating,
// then decodes them to UTF-8.
func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrBodyTooLarge, limit)
	}
	r, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	return io.ReadAll(r)
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = DefaultRedirectMaxHops
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// reasonPhrase extracts "Not Found" from "404 Not Found", falling back to
// the canonical text for the code.
func reasonPhrase(resp *http.Response) string {
	if s := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}
