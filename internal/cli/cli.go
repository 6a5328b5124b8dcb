package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/catatsuy/containers_rule/internal/config"
	"github.com/catatsuy/containers_rule/internal/metrics"
	"github.com/catatsuy/containers_rule/internal/runner"
)

var (
	Version string
)

const (
	ExitCodeOK             = 0
	ExitCodeParseFlagError = 1
	ExitCodeFail           = 1
)

type CLI struct {
	outStream, errStream io.Writer

	conf       *config.Config
	metrics    *metrics.Metrics
	appVersion string
}

func NewCLI(outStream, errStream io.Writer) *CLI {
	return &CLI{appVersion: version(), outStream: outStream, errStream: errStream}
}

func version() string {
	if Version != "" {
		return Version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	return info.Main.Version
}

type cliOptions struct {
	version  bool
	tomlFile string
}

func (c *CLI) Run(args []string) int {
	opts, err := c.parseFlags(args)
	if err != nil {
		return ExitCodeParseFlagError
	}

	if opts.version {
		c.printVersion()
		return ExitCodeOK
	}

	if err := c.loadConfiguration(opts.tomlFile); err != nil {
		fmt.Fprintln(c.errStream, err)
		return ExitCodeFail
	}

	logger := c.createLogger(c.conf.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return c.runLoop(ctx, logger)
}

func (c *CLI) parseFlags(args []string) (*cliOptions, error) {
	opts := &cliOptions{}
	c.conf = config.NewConfig()

	flags := flag.NewFlagSet("containers_rule", flag.ContinueOnError)
	flags.SetOutput(c.errStream)

	flags.IntVar(&c.conf.Count, "count", 0, "stop after this many iterations (0 runs until interrupted)")
	flags.BoolVar(&c.conf.Debug, "debug", false, "debug mode (for developers)")
	flags.StringVar(&opts.tomlFile, "c", "", "config file name")
	flags.BoolVar(&opts.version, "version", false, "Print version information and quit")

	if err := flags.Parse(args[1:]); err != nil {
		return nil, err
	}

	if opts.version {
		return opts, nil
	}

	if argv := flags.Args(); len(argv) > 0 {
		fmt.Fprintf(c.errStream, "unexpected arguments: %v\n", argv)
		return nil, fmt.Errorf("unexpected arguments")
	}

	return opts, nil
}

func (c *CLI) printVersion() {
	fmt.Fprintf(c.errStream, "containers_rule version %s; %s\n", c.appVersion, runtime.Version())
}

func (c *CLI) loadConfiguration(tomlFile string) error {
	tomlFile = config.LoadTOMLFilename(tomlFile)
	if tomlFile != "" {
		if err := c.conf.LoadTOML(tomlFile); err != nil {
			return err
		}
	}
	return c.conf.LoadEnv()
}

func (c *CLI) createLogger(debugMode bool) *slog.Logger {
	if debugMode {
		return slog.New(slog.NewTextHandler(c.errStream, &slog.HandlerOptions{AddSource: true, Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(c.errStream, nil))
}

func (c *CLI) runLoop(ctx context.Context, logger *slog.Logger) int {
	if c.metrics == nil {
		c.metrics = metrics.New()
	}

	r := runner.NewRunner(c.outStream, logger, c.metrics)
	r.SetCount(c.conf.Count)

	err := r.Run(ctx)

	if s, serr := c.metrics.Snapshot(); serr == nil {
		logger.Debug("summary", "iterations", s.Iterations, "slept_ms", s.TotalSlept)
	}

	if err != nil {
		logger.Error("loop failed", "error", err)
		return ExitCodeFail
	}

	return ExitCodeOK
}
