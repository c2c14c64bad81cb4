package transport

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/http/httpproxy"
)

// Options selects proxy routing for the managed clients. An empty field
// means direct connections for that scheme.
type Options struct {
	HTTPProxy  string
	HTTPSProxy string
}

// OptionsFromEnvironment snapshots the proxy environment (http_proxy and
// https_proxy, including their uppercase variants) at the moment of the
// call. The environment is not consulted again afterwards.
func OptionsFromEnvironment() Options {
	env := httpproxy.FromEnvironment()
	return Options{
		HTTPProxy:  env.HTTPProxy,
		HTTPSProxy: env.HTTPSProxy,
	}
}

// UnknownSchemeError reports a target host without a recognized scheme
// prefix. It signals a configuration mistake and is never retried.
type UnknownSchemeError struct {
	Host string
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown scheme in host %q: expected http:// or https:// prefix", e.Host)
}

// Manager holds one pooled HTTP client per scheme for the life of the
// process. It is read-only after construction; every request acquires a
// client from it and the underlying transports handle connection reuse.
type Manager struct {
	clients map[string]*http.Client
}

// NewManager builds the per-scheme clients from opts. A proxy value that
// does not parse as a URL fails construction. The https client accepts any
// server certificate and skips hostname checks (see the package comment).
func NewManager(opts Options) (*Manager, error) {
	httpClient, err := newClient(opts.HTTPProxy, nil)
	if err != nil {
		return nil, fmt.Errorf("http transport: %w", err)
	}
	httpsClient, err := newClient(opts.HTTPSProxy, &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		return nil, fmt.Errorf("https transport: %w", err)
	}

	return &Manager{
		clients: map[string]*http.Client{
			"http":  httpClient,
			"https": httpsClient,
		},
	}, nil
}

// Acquire returns the pooled client for the scheme of host. The host must
// carry an http:// or https:// prefix; anything else is an
// *UnknownSchemeError.
func (m *Manager) Acquire(host string) (*http.Client, error) {
	switch {
	case strings.HasPrefix(host, "http://"):
		return m.clients["http"], nil
	case strings.HasPrefix(host, "https://"):
		return m.clients["https"], nil
	}
	return nil, &UnknownSchemeError{Host: host}
}

// newClient assembles a client over a single-connection idle pool. The CLI
// issues one request at a time, so one kept-alive connection is all the
// reuse there is to win. No timeouts anywhere: transfers run until the
// remote side completes or drops them.
func newClient(proxyURL string, tlsConfig *tls.Config) (*http.Client, error) {
	dialer := &net.Dialer{
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSClientConfig:     tlsConfig,
		MaxIdleConns:        1,
		MaxIdleConnsPerHost: 1,
		IdleConnTimeout:     90 * time.Second,
	}

	if proxyURL != "" {
		parsed, err := parseProxyURL(proxyURL)
		if err != nil {
			return nil, err
		}
		transport.Proxy = http.ProxyURL(parsed)
	}

	return &http.Client{Transport: transport}, nil
}

// parseProxyURL accepts full proxy URLs and bare host:port values, which
// are common in proxy environment variables.
func parseProxyURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		parsed, err = url.Parse("http://" + raw)
	}
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid proxy URL %q", raw)
	}
	return parsed, nil
}
