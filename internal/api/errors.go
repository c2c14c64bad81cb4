package api

import "fmt"

// NotFoundError reports an HTTP 404 response. Callers usually treat it as
// "does not exist yet" rather than a hard failure, e.g. a resource that has
// not been pushed to the server.
type NotFoundError struct {
	Body string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("HTTP 404: %s", e.Body)
}

// RequestFailedError reports any other response status outside the 200-399
// range, carrying the raw body for diagnosis. Callers treat it as fatal.
type RequestFailedError struct {
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// TLSError reports a certificate or handshake failure while reaching an
// https host. It wraps the underlying error and is never retried.
type TLSError struct {
	Err error
}

func (e *TLSError) Error() string {
	return fmt.Sprintf("TLS handshake with server failed: %v", e.Err)
}

func (e *TLSError) Unwrap() error {
	return e.Err
}
