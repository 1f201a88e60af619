// Package fetch retrieves help-center pages over HTTP. It owns timeouts,
// retry policy, and content-type gating; extraction never sees a non-HTML
// body.
package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotHTML is returned when a page responds with a non-HTML content type.
var ErrNotHTML = errors.New("non-html content")

// RetryableError marks a transient HTTP failure (429 or 5xx).
type RetryableError struct {
	StatusCode int
	URL        string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable http status %d for %s", e.StatusCode, e.URL)
}

// Client fetches pages with browser-like headers, a size cap, and gzip
// decoding.
type Client struct {
	client    *http.Client
	sizeCap   int64
	userAgent string
}

func NewClient(timeout time.Duration, sizeCap int64) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		sizeCap: sizeCap,
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) " +
			"Chrome/120.0.0.0 Safari/537.36",
	}
}

// Get fetches rawURL and returns the body reader and content type. The
// caller must close the reader. 429 and 5xx responses come back as
// RetryableError.
func (c *Client) Get(ctx context.Context, rawURL string) (io.ReadCloser, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, "", fmt.Errorf("invalid url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		resp.Body.Close()
		return nil, "", &RetryableError{StatusCode: resp.StatusCode, URL: rawURL}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("http status %d for %s", resp.StatusCode, rawURL)
	}

	var body io.ReadCloser = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, "", err
		}
		body = &gzipBody{gz: gz, raw: resp.Body}
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "" && !strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
		body.Close()
		return nil, "", ErrNotHTML
	}

	return readCloser{io.LimitReader(body, c.sizeCap), body}, contentType, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

type readCloser struct {
	io.Reader
	io.Closer
}

// gzipBody closes the decompressor and the underlying response body, so the
// connection is released even when the caller stops before EOF.
type gzipBody struct {
	gz  *gzip.Reader
	raw io.Closer
}

func (b *gzipBody) Read(p []byte) (int, error) { return b.gz.Read(p) }

func (b *gzipBody) Close() error {
	err := b.gz.Close()
	if rawErr := b.raw.Close(); err == nil {
		err = rawErr
	}
	return err
}
