// Package api executes authenticated requests against a translation server
// and classifies every outcome.
//
// The api package builds each request with HTTP basic authentication and the
// CLI's user-agent, dispatches it through the per-scheme transport manager,
// and maps the result onto a small error taxonomy:
//   - [NotFoundError] for 404 responses, carrying the raw body
//   - [RequestFailedError] for any other status outside 200-399
//   - [TLSError] for certificate and handshake failures
//
// # Executing requests
//
// Build a [Client] over a transport manager once and share it:
//
//	client := api.NewClient(transports, api.WithLogger(logger))
//	outcome, err := client.Do(ctx, http.MethodGet, host, path, info, nil)
//
// Requests are synchronous and never retried; a failure surfaces
// immediately as one of the taxonomy errors.
//
// # Structured calls
//
// [Client.GetDetails] resolves a named API call to its endpoint path,
// executes a GET, and parses the response as JSON:
//
//	details, err := client.GetDetails(ctx, "project_details", info, map[string]string{
//		"hostname": "https://app.example.com",
//		"project":  "website",
//	})
//
// # Character sets
//
// Response bodies are returned as UTF-8 text regardless of the charset the
// server declares; [DetermineCharset] reports the declared value alongside.
// Callers that need charset-correct decoding must handle it themselves.
package api
