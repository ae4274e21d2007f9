package ratepipe

import (
	"io"

	"go.uber.org/fx"

	"github.com/cotacao/ratepipe/settings"
	"github.com/cotacao/ratepipe/status"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	LogOutput io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithSettings provides *settings.Resolver built from the file at path, merging
// dotenvFiles into the environment snapshot. With strict set the app fails to start
// when a required key is missing.
func WithSettings(path string, strict bool, dotenvFiles ...string) Option {
	return WithSettingsModule(settings.ModuleOptions{
		Path:        path,
		DotenvFiles: dotenvFiles,
		Strict:      strict,
	})
}

// WithSettingsModule is WithSettings with full control, including an already
// read settings source and environment snapshot.
func WithSettingsModule(moduleOpts settings.ModuleOptions) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, settings.Module(moduleOpts))
	}
}

// WithStatusListener serves the status endpoints. An empty address defers to the
// settings document's status block. Requires WithSettings.
func WithStatusListener(address string) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, status.Module(address))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput redirects application logs, which go to stderr by default.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}
