// Package network fetches pages from the local filesystem or over HTTP.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent unless WithUserAgent overrides it.
const DefaultUserAgent = "vibescroll/1.0"

// maxPageSize caps the bytes read from a single page.
const maxPageSize = 16 << 20

// ErrPageTooLarge is returned when a page exceeds maxPageSize.
var ErrPageTooLarge = errors.New("page too large")

// Page is a fetched document.
type Page struct {
	URL         string
	ContentType string
	Content     []byte
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) LoaderOption {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// WithHTTPClient replaces the HTTP client, e.g. for tests.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		l.client = c
	}
}

// Loader reads pages from paths, file:// URLs and http(s) URLs.
type Loader struct {
	client    *http.Client
	userAgent string
}

// NewLoader creates a loader with the given options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches location. Anything without an http, https or file scheme
// is treated as a filesystem path.
func (l *Loader) Load(ctx context.Context, location string) (*Page, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Windows drive letters parse as one-letter schemes.
		return l.loadFile(location)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l.loadHTTP(ctx, u.String())
	case "file":
		return l.loadFile(u.Path)
	}
	return nil, fmt.Errorf("unsupported scheme %q in %s", u.Scheme, location)
}

func (l *Loader) loadFile(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	content, err := readLimited(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Page{URL: "file://" + path, ContentType: "text/html", Content: content}, nil
}

func (l *Loader) loadHTTP(ctx context.Context, target string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: %s", target, resp.Status)
	}

	content, err := readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	return &Page{
		URL:         resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(r, maxPageSize+1))
	if err != nil {
		return nil, err
	}
	if len(content) > maxPageSize {
		return nil, ErrPageTooLarge
	}
	return content, nil
}
