package settings

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/cotacao/ratepipe/config"
	"github.com/cotacao/ratepipe/config/fetcher/env"
	filefetcher "github.com/cotacao/ratepipe/config/fetcher/file"
	yamlparser "github.com/cotacao/ratepipe/config/parser/yaml"
)

// ModuleOptions configures Module.
type ModuleOptions struct {
	// Path of the settings file; DefaultPath when empty.
	Path string
	// DotenvFiles are merged into the environment snapshot.
	DotenvFiles []string
	// Strict fails application start when a required key is missing.
	Strict bool
	// Fetcher, when set, replaces the file fetcher built from Path.
	Fetcher config.DataFetcher
	// Environment, when set, replaces the snapshot built from DotenvFiles.
	Environment config.Environment
}

// Module provides config.Parser, config.DataFetcher, config.Environment and *Resolver.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(opts ModuleOptions) fx.Option {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}

	fetcher := fx.Provide(fx.Annotate(filefetcher.NewFetcher(path), fx.As(new(config.DataFetcher))))
	if opts.Fetcher != nil {
		fetcher = fx.Supply(fx.Annotate(opts.Fetcher, fx.As(new(config.DataFetcher))))
	}

	environment := fx.Provide(fx.Annotate(
		func() (env.Env, error) { return env.Snapshot(opts.DotenvFiles...) },
		fx.As(new(config.Environment)),
	))
	if opts.Environment != nil {
		environment = fx.Supply(fx.Annotate(opts.Environment, fx.As(new(config.Environment))))
	}

	return fx.Module("settings",
		fx.Provide(
			fx.Annotate(
				func() *yamlparser.Parser { return yamlparser.NewParser() },
				fx.As(new(config.Parser)),
			),
			Load,
		),
		fetcher,
		environment,
		fx.Invoke(func(resolver *Resolver, logger *slog.Logger) error {
			if opts.Strict {
				err := resolver.CheckRequired()
				if err != nil {
					return err
				}
			}

			logger.Info("settings resolved",
				slog.String("path", resolver.Path()),
				slog.Bool("database_enabled", resolver.DatabaseEnabled()),
			)

			if err := resolver.ValidateAPIKeys(); err != nil {
				logger.Warn("API keys not configured", slog.String("error", err.Error()))
			}

			return nil
		}),
	)
}
