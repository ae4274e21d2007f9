package status

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/cotacao/ratepipe/config"
	"github.com/cotacao/ratepipe/listener"
	"github.com/cotacao/ratepipe/settings"
)

// Module serves the status handler. The listener config comes from the settings
// document's status block; a non-empty address overrides it. It needs
// *settings.Resolver, config.DataFetcher and *slog.Logger from the container.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(address string) fx.Option {
	tag := fmt.Sprintf(`name:"%s"`, ListenerName)

	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(resolver *settings.Resolver, logger *slog.Logger) http.Handler {
					return NewHandler(resolver, logger.With(slog.String("listener", ListenerName)))
				},
				fx.ResultTags(tag),
			),
			fx.Annotate(
				func(fetcher config.DataFetcher) (listener.Config, error) {
					return LoadConfig(fetcher, address)
				},
				fx.ResultTags(tag),
			),
		),
		listener.NewModule(ListenerName),
	)
}
