package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lingocli/lingo/internal/api"
	"github.com/lingocli/lingo/internal/transport"
)

func newTestClient(t *testing.T, opts ...api.Option) *api.Client {
	t.Helper()
	mgr, err := transport.NewManager(transport.Options{})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return api.NewClient(mgr, opts...)
}

var testInfo = api.ConnectionInfo{Username: "translator", Password: "s3cret"}

func TestDoSendsAuthAndUserAgent(t *testing.T) {
	var gotUser, gotPass, gotAgent, gotEncoding string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotAgent = r.Header.Get("User-Agent")
		gotEncoding = r.Header.Get("Accept-Encoding")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newTestClient(t, api.WithUserAgent("lingo/1.2.3"))
	outcome, err := client.Do(context.Background(), http.MethodGet, server.URL, "/api/2/project/x/", testInfo, nil)
	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}

	if gotUser != "translator" || gotPass != "s3cret" {
		t.Errorf("basic auth = %q/%q, want translator/s3cret", gotUser, gotPass)
	}
	if gotAgent != "lingo/1.2.3" {
		t.Errorf("user agent = %q, want %q", gotAgent, "lingo/1.2.3")
	}
	if !strings.Contains(gotEncoding, "gzip") {
		t.Errorf("accept encoding = %q, want gzip negotiation", gotEncoding)
	}
	if outcome.Body != "ok" {
		t.Errorf("Body = %q, want %q", outcome.Body, "ok")
	}
}

func TestDoQueryFields(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := newTestClient(t)
	fields := url.Values{"language": {"pt_BR"}}
	_, err := client.Do(context.Background(), http.MethodGet, server.URL, "/api/2/project/x/?details", testInfo, fields)
	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}

	if got := gotQuery.Get("language"); got != "pt_BR" {
		t.Errorf("query language = %q, want %q", got, "pt_BR")
	}
	// The template's own query marker must survive appended fields.
	if _, ok := gotQuery["details"]; !ok {
		t.Errorf("query %v lost the details marker", gotQuery)
	}
}

func TestDoFormFields(t *testing.T) {
	var gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err == nil {
			gotBody = r.PostForm.Encode()
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newTestClient(t)
	fields := url.Values{"slug": {"core.strings"}, "name": {"Core"}}
	_, err := client.Do(context.Background(), http.MethodPost, server.URL, "/api/2/project/x/resources/", testInfo, fields)
	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q, want form encoding", gotContentType)
	}
	if gotBody != fields.Encode() {
		t.Errorf("form body = %q, want %q", gotBody, fields.Encode())
	}
}

func TestDoNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("resource does not exist"))
	}))
	defer server.Close()

	client := newTestClient(t)
	_, err := client.Do(context.Background(), http.MethodGet, server.URL, "/api/2/project/x/", testInfo, nil)
	if err == nil {
		t.Fatal("Do() error = nil, want *NotFoundError")
	}

	var notFound *api.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Do() error type = %T, want *NotFoundError", err)
	}
	if notFound.Body != "resource does not exist" {
		t.Errorf("NotFoundError.Body = %q, want exact response body", notFound.Body)
	}
}

func TestDoRequestFailed(t *testing.T) {
	cases := []struct {
		name   string
		status int
	}{
		{"server error", http.StatusInternalServerError},
		{"unprocessable", http.StatusUnprocessableEntity},
		{"unauthorized", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte("failure detail"))
			}))
			defer server.Close()

			client := newTestClient(t)
			_, err := client.Do(context.Background(), http.MethodGet, server.URL, "/", testInfo, nil)
			if err == nil {
				t.Fatal("Do() error = nil, want *RequestFailedError")
			}

			var failed *api.RequestFailedError
			if !errors.As(err, &failed) {
				t.Fatalf("Do() error type = %T, want *RequestFailedError", err)
			}
			if failed.StatusCode != tc.status {
				t.Errorf("StatusCode = %d, want %d", failed.StatusCode, tc.status)
			}
			if failed.Body != "failure detail" {
				t.Errorf("Body = %q, want %q", failed.Body, "failure detail")
			}
		})
	}
}

func TestDoReportsDeclaredCharset(t *testing.T) {
	// "café" in ISO-8859-1: the é is a single 0xE9 byte, invalid as UTF-8.
	latin1 := []byte{'c', 'a', 'f', 0xE9}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=iso-8859-1")
		w.Write(latin1)
	}))
	defer server.Close()

	client := newTestClient(t)
	outcome, err := client.Do(context.Background(), http.MethodGet, server.URL, "/", testInfo, nil)
	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}

	if outcome.Charset != "iso-8859-1" {
		t.Errorf("Charset = %q, want %q", outcome.Charset, "iso-8859-1")
	}
	// The body keeps the raw bytes: declared charset is reported, never
	// applied.
	if outcome.Body != string(latin1) {
		t.Errorf("Body = %q, want raw bytes %q", outcome.Body, string(latin1))
	}
}

func TestDoDefaultCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.Write([]byte("plain"))
	}))
	defer server.Close()

	client := newTestClient(t)
	outcome, err := client.Do(context.Background(), http.MethodGet, server.URL, "/", testInfo, nil)
	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}
	if outcome.Charset != "utf-8" {
		t.Errorf("Charset = %q, want utf-8 default", outcome.Charset)
	}
}

func TestDoClassifiesTLSFailure(t *testing.T) {
	// A plain HTTP listener addressed as https:// fails the handshake
	// deterministically.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plaintext"))
	}))
	defer server.Close()

	var logBuf bytes.Buffer
	logger := log.NewWithOptions(&logBuf, log.Options{Level: log.ErrorLevel})

	client := newTestClient(t, api.WithLogger(logger))
	host := "https://" + strings.TrimPrefix(server.URL, "http://")
	_, err := client.Do(context.Background(), http.MethodGet, host, "/", testInfo, nil)
	if err == nil {
		t.Fatal("Do() error = nil, want *TLSError")
	}

	var tlsErr *api.TLSError
	if !errors.As(err, &tlsErr) {
		t.Fatalf("Do() error type = %T, want *TLSError", err)
	}
	if tlsErr.Unwrap() == nil {
		t.Error("TLSError.Unwrap() = nil, want wrapped cause")
	}
	if !strings.Contains(logBuf.String(), "invalid SSL certificate") {
		t.Errorf("log output %q missing error-severity TLS message", logBuf.String())
	}
}

func TestDoUnknownSchemePassthrough(t *testing.T) {
	client := newTestClient(t)
	_, err := client.Do(context.Background(), http.MethodGet, "ftp://files.example.com", "/", testInfo, nil)
	if err == nil {
		t.Fatal("Do() error = nil, want *transport.UnknownSchemeError")
	}

	var unknown *transport.UnknownSchemeError
	if !errors.As(err, &unknown) {
		t.Fatalf("Do() error type = %T, want *transport.UnknownSchemeError", err)
	}
}

func TestDoReleasesConnections(t *testing.T) {
	var remotes []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remotes = append(remotes, r.RemoteAddr)
		if len(remotes) == 1 {
			w.WriteHeader(http.StatusNotFound)
		}
		w.Write([]byte("body"))
	}))
	defer server.Close()

	client := newTestClient(t)

	// First call fails with 404; its connection must still return to the
	// pool for the second call to reuse.
	_, err := client.Do(context.Background(), http.MethodGet, server.URL, "/", testInfo, nil)
	var notFound *api.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("first Do() error = %v, want *NotFoundError", err)
	}

	if _, err := client.Do(context.Background(), http.MethodGet, server.URL, "/", testInfo, nil); err != nil {
		t.Fatalf("second Do() error = %v, want nil", err)
	}

	if len(remotes) != 2 {
		t.Fatalf("server saw %d requests, want 2", len(remotes))
	}
	if remotes[0] != remotes[1] {
		t.Errorf("remote addrs %v differ, want one reused connection", remotes)
	}
}
