// Package transport owns the pooled HTTP clients the lingo CLI uses to reach
// translation servers.
//
// The transport package builds one client per URL scheme with support for:
//   - Proxy routing from the http_proxy/https_proxy environment
//   - Connection pooling and keep-alive reuse across requests
//   - The relaxed TLS policy translation servers in the field require
//
// # Construction
//
// Build a [Manager] once at process start and pass it to every call site:
//
//	mgr, err := transport.NewManager(transport.OptionsFromEnvironment())
//	if err != nil {
//		return err
//	}
//	client, err := mgr.Acquire("https://app.example.com")
//
// The proxy environment is read exactly once, when [OptionsFromEnvironment]
// runs; changing the environment afterwards has no effect on an existing
// Manager.
//
// # TLS policy
//
// Clients for the https scheme skip certificate validation and hostname
// verification. Self-hosted translation servers commonly present self-signed
// or mismatched certificates, and the CLI must still reach them. This is a
// deliberate, documented relaxation of transport security, not an oversight.
//
// # Timeouts
//
// No request or client timeouts are configured. A hung endpoint blocks the
// calling command until the remote side gives up. Known limitation.
package transport
