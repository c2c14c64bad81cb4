package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lingocli/lingo/internal/api"
	"github.com/lingocli/lingo/internal/config"
	"github.com/lingocli/lingo/internal/metrics"
	"github.com/lingocli/lingo/internal/tracing"
	"github.com/lingocli/lingo/internal/transport"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion records the build information shown by --version and sent in
// the User-Agent header. Typically called by the main package with values
// injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

func userAgent() string {
	return "lingo/" + version
}

// shutdownTimeout bounds the trace flush at exit. API requests themselves
// carry no timeout; this applies only to the exporter.
const shutdownTimeout = 5 * time.Second

// app carries the state every command shares: parsed global flags, the
// output streams, and the network stack built once in setup.
type app struct {
	flags rootFlags

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	ui     *ui

	logger     *log.Logger
	transports *transport.Manager
	client     *api.Client
	collector  *metrics.Collector
	tracer     *tracing.Provider
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		ui:     &ui{out: stdout, errOut: stderr, colored: true},
	}
}

// Execute runs the lingo CLI and returns an error when a command fails.
func Execute() error {
	return execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := newApp(stdin, stdout, stderr)
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.finish(ctx)
	if err != nil {
		a.ui.error("%v", err)
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lingo",
		Short: "lingo synchronizes local translation files with a translation server",
		Long: `lingo is a command-line client for translation projects. It maps local
files to remote resources through file filter expressions and talks to the
server over authenticated HTTP(S), honoring the http_proxy/https_proxy
environment.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			// Registered names are dispatched by cobra before this runs,
			// so anything landing here misses the registry.
			if _, err := lookup(args[0]); err != nil {
				return err
			}
			return cmd.Help()
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("lingo %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	a.flags.register(root.PersistentFlags())

	for _, entry := range registry {
		root.AddCommand(entry.construct(a))
	}
	return root
}

// setup builds the per-invocation state: logger, tracing, the transport
// manager with its proxy snapshot, and the API client over it. Runs once
// before any command body.
func (a *app) setup(cmd *cobra.Command) error {
	level := log.InfoLevel
	if a.flags.verbose {
		level = log.DebugLevel
	}
	logger := newLogger(a.stderr, level).With("run", newRunID())
	a.logger = logger
	a.ui.colored = !a.flags.noColor

	tracer, err := tracing.Init(cmd.Context(), tracing.Config{
		Endpoint:    a.flags.traceEndpoint,
		Protocol:    a.flags.traceProtocol,
		Insecure:    a.flags.traceInsecure,
		SampleRate:  1.0,
		ServiceName: "lingo",
	})
	if err != nil {
		return err
	}
	a.tracer = tracer

	transports, err := transport.NewManager(transport.OptionsFromEnvironment())
	if err != nil {
		return err
	}
	a.transports = transports
	a.collector = metrics.NewCollector()
	a.client = api.NewClient(transports,
		api.WithLogger(logger),
		api.WithCollector(a.collector),
		api.WithTracer(tracer),
		api.WithUserAgent(userAgent()),
	)

	if a.flags.rcPath == "" {
		path, err := config.DefaultRCPath()
		if err != nil {
			return err
		}
		a.flags.rcPath = path
	}

	cmd.SetContext(withLogger(cmd.Context(), logger))
	logger.Debug("lingo starting", "version", version, "command", cmd.CalledAs())
	return nil
}

// finish logs the request summary and flushes pending trace spans. Runs
// after the command returns, on every path, so pooled work always drains.
func (a *app) finish(ctx context.Context) {
	if a.collector != nil {
		stats := a.collector.Stats(a.collector.Elapsed())
		if stats.Total > 0 {
			a.logger.Debug("request summary",
				"requests", stats.Total,
				"failures", stats.Failures,
				"mean", stats.MeanLatency.Round(time.Millisecond),
				"p99", stats.P99Latency.Round(time.Millisecond),
			)
			for typ, count := range stats.Errors {
				a.logger.Debug("request failures", "type", metrics.FriendlyErrorName(typ), "count", count)
			}
		}
	}
	if a.tracer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := a.tracer.Shutdown(shutdownCtx); err != nil && a.logger != nil {
			a.logger.Debug("trace shutdown", "error", err)
		}
	}
}

// credentials resolves the account for hostname from the rc file, with
// the LINGO_USERNAME/LINGO_PASSWORD environment taking precedence. A
// missing entry is not fatal: the request goes out anonymously and the
// server decides.
func (a *app) credentials(hostname string) (api.ConnectionInfo, error) {
	rc, err := config.LoadRC(a.flags.rcPath)
	if err != nil {
		return api.ConnectionInfo{}, err
	}
	username, password, ok := rc.Credentials(hostname)
	if !ok {
		a.logger.Warn("no credentials for host, trying anonymously", "host", hostname, "rc", a.flags.rcPath)
	}
	return api.ConnectionInfo{Username: username, Password: password}, nil
}
