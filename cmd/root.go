package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/molotov-go/internal/app"
	"github.com/oshokin/molotov-go/internal/config"
	"github.com/oshokin/molotov-go/internal/logger"
	"github.com/oshokin/molotov-go/internal/utils"
	"github.com/oshokin/molotov-go/internal/version"
)

// Static error definitions for better error handling.
var (
	// errDataConflict indicates that both --data and --data-file were given.
	errDataConflict = errors.New("--data and --data-file cannot be used together")
	// errDataFileNotFound indicates that the --data-file path is not a regular file.
	errDataFileNotFound = errors.New("data file not found")
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "molotov [flags] {urls}",
		Short: "Send instrumented HTTP requests to one or more URLs.",
		Long: `Molotov is a CLI tool for sending HTTP requests through an instrumented session.
Every request can be:
- Resolved through a custom DNS server or static host map
- Timed and counted into Prometheus metrics
- Printed in full, request and response, with -vv

The same URLs can be hit many times concurrently to generate load.`,
		Version:          version.Full(),
		Args:             cobra.ArbitraryArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, urls []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			logger.SetLevel(appConfig.ParsedLogLevel)

			plan, err := buildRequestPlan(cmd.Flags(), appConfig, urls)
			if err != nil {
				logger.Fatalf(cmd.Context(), "Failed to prepare requests: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, plan)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	// A signal only cancels ctx; the command still has to finish and print its summary.
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-done
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	registerRequestFlags(rootCmd.Flags())
}

// registerRequestFlags adds the flags of the root command to flags.
func registerRequestFlags(flags *pflag.FlagSet) {
	flags.CountP(
		"verbose",
		"v",
		"increase verbosity: -vv prints every request and response.")

	flags.StringP(
		"method",
		"X",
		"",
		"HTTP method (default GET, or POST when a body is given).")

	flags.StringArrayP(
		"header",
		"H",
		nil,
		"request header in the 'Name: value' form, can be repeated.")

	flags.StringP(
		"data",
		"d",
		"",
		"request body.")

	flags.String(
		"data-file",
		"",
		"file streamed as the request body.")

	flags.StringP(
		"input",
		"i",
		"",
		"file with one URL per line; blank lines and lines starting with '#' are skipped.")

	flags.Int64P(
		"requests",
		"n",
		0,
		"number of requests per URL.")

	flags.Int64P(
		"concurrency",
		"w",
		0,
		"number of requests in flight at once.")

	flags.Bool(
		"metrics",
		false,
		"record request timings and status counters.")

	flags.String(
		"metrics-listen",
		"",
		"expose Prometheus metrics on this address, for example: :9090 (implies --metrics).")

	flags.Int(
		"pool-limit",
		0,
		"maximum number of connections per host, 0 for unbounded.")

	flags.String(
		"max-peek-size",
		"",
		"maximum response body size printed with -vv, for example: 64KB, 1MiB.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("verbose"); flag != nil && flag.Changed {
		cfg.Verbosity, _ = flags.GetCount("verbose")
	}

	if flag := flags.Lookup("requests"); flag != nil && flag.Changed {
		cfg.Requests, _ = flags.GetInt64("requests")
	}

	if flag := flags.Lookup("concurrency"); flag != nil && flag.Changed {
		cfg.Concurrency, _ = flags.GetInt64("concurrency")
	}

	if flag := flags.Lookup("metrics"); flag != nil && flag.Changed {
		cfg.MetricsEnabled, _ = flags.GetBool("metrics")
	}

	if flag := flags.Lookup("metrics-listen"); flag != nil && flag.Changed {
		cfg.MetricsListen, _ = flags.GetString("metrics-listen")
		cfg.MetricsEnabled = cfg.MetricsEnabled || cfg.MetricsListen != ""
	}

	if flag := flags.Lookup("pool-limit"); flag != nil && flag.Changed {
		cfg.ConnectionPoolLimit, _ = flags.GetInt("pool-limit")
	}

	if flag := flags.Lookup("max-peek-size"); flag != nil && flag.Changed {
		cfg.MaxPeekSize, _ = flags.GetString("max-peek-size")
	}

	return config.ValidateConfig(cfg)
}

// buildRequestPlan turns flags and arguments into the requests to send.
func buildRequestPlan(flags *pflag.FlagSet, cfg *config.Config, urls []string) (*app.RequestPlan, error) {
	inputFile, _ := flags.GetString("input")
	if inputFile != "" {
		lines, err := utils.ReadUniqueLinesFromFile(inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read URLs from file: %w", err)
		}

		urls = append(urls, lines...)
	}

	if len(urls) == 0 {
		return nil, app.ErrNoURLs
	}

	headerLines, _ := flags.GetStringArray("header")

	header, err := utils.ParseHeaders(headerLines)
	if err != nil {
		return nil, err
	}

	body, err := buildBodyFactory(flags)
	if err != nil {
		return nil, err
	}

	method, _ := flags.GetString("method")

	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
		if body != nil {
			method = http.MethodPost
		}
	}

	return &app.RequestPlan{
		Method:      method,
		URLs:        urls,
		Header:      header,
		Body:        body,
		Requests:    cfg.Requests,
		Concurrency: cfg.Concurrency,
	}, nil
}

// buildBodyFactory returns the body factory selected by --data or --data-file.
// A file is opened anew for every request and streamed as is.
func buildBodyFactory(flags *pflag.FlagSet) (app.BodyFactory, error) {
	data, _ := flags.GetString("data")
	dataFile, _ := flags.GetString("data-file")

	switch {
	case data != "" && dataFile != "":
		return nil, errDataConflict
	case data != "":
		return func() (any, error) {
			return data, nil
		}, nil
	case dataFile != "":
		path := filepath.Clean(dataFile)

		exists, err := utils.IsFileExist(path)
		if err != nil {
			return nil, fmt.Errorf("failed to check data file: %w", err)
		}

		if !exists {
			return nil, fmt.Errorf("%w: %s", errDataFileNotFound, path)
		}

		return func() (any, error) {
			file, openErr := os.Open(path)
			if openErr != nil {
				return nil, fmt.Errorf("failed to open data file: %w", openErr)
			}

			return file, nil
		}, nil
	default:
		return nil, nil //nolint:nilnil // No body is a valid outcome.
	}
}
