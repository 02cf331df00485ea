package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/henvic/httpretty"
)

// HTTPConfig describes a single HTTP resource fetched with GET.
type HTTPConfig struct {
	URL      string `env:"FETCH_URL,required"`
	MaxBytes int64  `env:"FETCH_MAX_BYTES" envDefault:"10485760"`
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*httpOptions)

type httpOptions struct {
	client *http.Client
	debug  io.Writer
}

// WithHTTPClient sets the client used for requests. Useful for tests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(o *httpOptions) {
		if client != nil {
			o.client = client
		}
	}
}

// WithHTTPDebug dumps request and response headers to w.
func WithHTTPDebug(w io.Writer) HTTPOption {
	return func(o *httpOptions) {
		o.debug = w
	}
}

// HTTPFetcher downloads a fixed URL. It is safe for concurrent use.
type HTTPFetcher struct {
	client   *http.Client
	url      string
	maxBytes int64
}

// NewHTTPFetcher validates cfg and builds a fetcher for cfg.URL.
func NewHTTPFetcher(cfg HTTPConfig, opts ...HTTPOption) (*HTTPFetcher, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: url %q", ErrInvalidConfig, cfg.URL)
	}

	options := &httpOptions{client: http.DefaultClient}
	for _, opt := range opts {
		opt(options)
	}

	client := options.client
	if options.debug != nil {
		client = debugClient(client, options.debug)
	}

	return &HTTPFetcher{
		client:   client,
		url:      u.String(),
		maxBytes: cfg.MaxBytes,
	}, nil
}

// debugClient copies client and wraps its transport with a header dumper.
func debugClient(client *http.Client, w io.Writer) *http.Client {
	logger := &httpretty.Logger{
		Time:           true,
		RequestHeader:  true,
		ResponseHeader: true,
	}
	logger.SetOutput(w)

	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	wrapped := *client
	wrapped.Transport = logger.RoundTripper(transport)
	return &wrapped
}

// Source returns the fetched URL.
func (f *HTTPFetcher) Source() string {
	return f.url
}

// Fetch performs the GET request. Any non-2xx status fails with ErrBadStatus,
// 404 with ErrNotFound and 401/403 with ErrAccessDenied.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, Wrap(f.url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		classified, _ := classifyContextError(err)
		return nil, Wrap(f.url, classified)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, Wrap(f.url, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, Wrap(f.url, ErrAccessDenied)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, Wrap(f.url, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode))
	}

	data, err := readLimited(resp.Body, f.maxBytes)
	if err != nil {
		return nil, Wrap(f.url, err)
	}
	return data, nil
}
