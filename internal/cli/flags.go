package cli

import "github.com/spf13/pflag"

// rootFlags holds the global flag values every command shares.
type rootFlags struct {
	verbose       bool
	noColor       bool
	rcPath        string
	workspace     string
	traceEndpoint string
	traceProtocol string
	traceInsecure bool
}

// register wires the global flags onto the root command's persistent set.
func (f *rootFlags) register(flags *pflag.FlagSet) {
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&f.rcPath, "rc", "", "credentials file (default ~/.lingorc)")
	flags.StringVar(&f.workspace, "workspace", ".", "directory to start workspace discovery from")

	// Tracing flags. Tracing stays off unless an endpoint is given here or
	// through the standard OTEL environment.
	flags.StringVar(&f.traceEndpoint, "trace-endpoint", "", "OTLP collector endpoint for request traces")
	flags.StringVar(&f.traceProtocol, "trace-protocol", "grpc", "OTLP transport: grpc or http")
	flags.BoolVar(&f.traceInsecure, "trace-insecure", false, "connect to the trace collector without TLS")
}
