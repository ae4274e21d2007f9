// Command ratepipe inspects and serves the exchange-rate pipeline settings.
//
//	ratepipe check                 verify required keys and API keys
//	ratepipe show                  print the resolved settings, secrets redacted
//	ratepipe url latest/USD        print the full exchange-rate API URL
//	ratepipe serve --listen=:8081  expose the status endpoints over HTTP
//
// serve listens on the settings document's status.address when --listen is not
// given, and on :8081 when neither is set.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/goccy/go-yaml"

	"github.com/cotacao/ratepipe"
	"github.com/cotacao/ratepipe/config"
	"github.com/cotacao/ratepipe/config/fetcher/env"
	filefetcher "github.com/cotacao/ratepipe/config/fetcher/file"
	yamlparser "github.com/cotacao/ratepipe/config/parser/yaml"
	"github.com/cotacao/ratepipe/logging"
	"github.com/cotacao/ratepipe/settings"
)

var errCheckFailed = errors.New("settings check failed")

type cli struct {
	configPath string
	envFiles   []string
	logLevel   string
	endpoint   string
	listen     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts cli

	app := kingpin.New("ratepipe", "Exchange-rate pipeline settings tool").
		Version(fmt.Sprintf("%s (%s)", ratepipe.Version, ratepipe.CompiledAt))
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Terminate(nil)

	app.Flag("config", "Path to the YAML settings file").
		Short('c').Default(settings.DefaultPath).StringVar(&opts.configPath)
	app.Flag("env-file", "Dotenv file merged under the process environment (repeatable)").
		Default(env.DefaultDotenvFile).StringsVar(&opts.envFiles)
	app.Flag("log-level", "Log level; defaults to logging.level from the settings file").
		StringVar(&opts.logLevel)

	checkCmd := app.Command("check", "Verify required settings and API keys")
	showCmd := app.Command("show", "Print resolved settings with secrets redacted")
	urlCmd := app.Command("url", "Print the full API URL for an endpoint")
	urlCmd.Arg("endpoint", "Endpoint path, e.g. latest/USD").Required().StringVar(&opts.endpoint)
	serveCmd := app.Command("serve", "Serve status endpoints")
	serveCmd.Flag("listen", "Listen address, overriding status.address").StringVar(&opts.listen)

	command, err := app.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "ratepipe: %v\n", err)

		return 2
	}

	if command == "" {
		// --help or --version
		return 0
	}

	if command == serveCmd.FullCommand() {
		server, err := newServeApp(opts, stderr)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "ratepipe: %v\n", err)

			return 1
		}

		server.Run()

		return 0
	}

	resolver, err := opts.resolve()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "ratepipe: %v\n", err)

		return 1
	}

	switch command {
	case checkCmd.FullCommand():
		err = check(resolver, stdout)
	case showCmd.FullCommand():
		err = show(resolver, stdout)
	case urlCmd.FullCommand():
		err = printURL(resolver, opts.endpoint, stdout)
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "ratepipe: %v\n", err)

		return 1
	}

	return 0
}

func (c cli) resolve() (*settings.Resolver, error) {
	environ, err := env.Snapshot(c.envFiles...)
	if err != nil {
		return nil, err //nolint:wrapcheck // already describes the dotenv file
	}

	return settings.New(c.configPath, environ) //nolint:wrapcheck // already describes the settings file
}

func check(resolver *settings.Resolver, stdout io.Writer) error {
	failed := false

	if err := resolver.CheckRequired(); err != nil {
		failed = true

		_, _ = fmt.Fprintf(stdout, "settings: FAIL\n%v\n", err)
	} else {
		_, _ = fmt.Fprintln(stdout, "settings: ok")
	}

	if err := resolver.ValidateAPIKeys(); err != nil {
		failed = true

		_, _ = fmt.Fprintf(stdout, "api keys: FAIL\n%v\n", err)
	} else {
		_, _ = fmt.Fprintln(stdout, "api keys: ok")
	}

	if failed {
		return errCheckFailed
	}

	return nil
}

func show(resolver *settings.Resolver, stdout io.Writer) error {
	out, err := yaml.Marshal(resolver.Summary())
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	_, err = stdout.Write(out)

	return err //nolint:wrapcheck // write errors are self-describing
}

func printURL(resolver *settings.Resolver, endpoint string, stdout io.Writer) error {
	url, err := resolver.FullAPIURL(endpoint)
	if err != nil {
		return err //nolint:wrapcheck // names the missing key
	}

	_, _ = fmt.Fprintln(stdout, url)

	return nil
}

// newServeApp reads the settings file and snapshots the environment once, takes
// the logger config from the document's logging block and hands both sources to
// the settings module.
func newServeApp(opts cli, stderr io.Writer) (*ratepipe.App, error) {
	fetcher, err := filefetcher.NewFetcher(opts.configPath)()
	if err != nil {
		return nil, err //nolint:wrapcheck // already describes the settings file
	}

	environ, err := env.Snapshot(opts.envFiles...)
	if err != nil {
		return nil, err //nolint:wrapcheck // already describes the dotenv file
	}

	loggerConfig := loggerConfigFrom(fetcher)
	if opts.logLevel != "" {
		loggerConfig.Level = opts.logLevel
	}

	app := ratepipe.NewApp(
		ratepipe.WithLogLevel(loggerConfig.Level),
		ratepipe.WithLogFormat(loggerConfig.Format),
		ratepipe.WithLogOutput(stderr),
		ratepipe.WithSettingsModule(settings.ModuleOptions{
			Path:        opts.configPath,
			Fetcher:     fetcher,
			Environment: environ,
		}),
		ratepipe.WithStatusListener(opts.listen),
	)

	err = app.Err()
	if err != nil {
		return nil, err //nolint:wrapcheck // fx names the failing constructor
	}

	return app, nil
}

// loggerConfigFrom reads only the logging block. Problems with the rest of the
// document surface when the settings module resolves it.
func loggerConfigFrom(fetcher config.DataFetcher) logging.LoggerConfig {
	data, err := fetcher.Fetch()
	if err != nil {
		return logging.LoggerConfig{}
	}

	var block map[string]any

	err = yamlparser.NewParser().Parse(data, &block, "logging")
	if err != nil {
		return logging.LoggerConfig{}
	}

	return logging.ConfigFromSettings(block)
}
