// Package cli implements the lingo command-line interface.
//
// The cli package wires the command tree together: it parses global flags,
// configures logging and tracing, builds the shared transport manager and
// API client once per invocation, and hands them to every command.
//
// # Commands
//
// Commands come from an explicit registry built at startup; a name outside
// it resolves to [ErrUnknownCommand]:
//   - init: create a workspace and its skeleton configuration
//   - remote: attach a remote project or resource URL to the workspace
//   - status: map local files to languages and summarize translation state
//   - info: show the remote project's details
//
// # Logging
//
// Every command supports --verbose (-v) for debug-level logging. Each
// invocation is tagged with a ULID run id, and the logger travels through
// context.Context so helpers share it.
//
// # Integration
//
// This package integrates with:
//   - [github.com/lingocli/lingo/internal/api] for request execution
//   - [github.com/lingocli/lingo/internal/transport] for pooled connections
//   - [github.com/lingocli/lingo/internal/config] for credentials and mappings
//   - [github.com/lingocli/lingo/internal/workspace] for root discovery
package cli
