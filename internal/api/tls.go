package api

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
)

// isTLSError reports whether err stems from the TLS handshake or from
// certificate validation. Verification is normally skipped by the transport
// policy, but handshake failures still happen, e.g. when an https:// host
// answers in plaintext.
func isTLSError(err error) bool {
	var (
		certVerification *tls.CertificateVerificationError
		recordHeader     tls.RecordHeaderError
		alert            tls.AlertError
		unknownAuthority x509.UnknownAuthorityError
		hostname         x509.HostnameError
		certInvalid      x509.CertificateInvalidError
		systemRoots      x509.SystemRootsError
	)
	switch {
	case errors.As(err, &certVerification),
		errors.As(err, &recordHeader),
		errors.As(err, &alert),
		errors.As(err, &unknownAuthority),
		errors.As(err, &hostname),
		errors.As(err, &certInvalid),
		errors.As(err, &systemRoots):
		return true
	}
	return false
}
