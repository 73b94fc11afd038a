// Package observability wires error reporting into the application lifecycle.
package observability

import (
	"context"
	"log/slog"
	"time"

	"pfm/config"
	"pfm/internal/errors"

	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"
)

const sentryFlushTimeout = 2 * time.Second

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Setup initializes the Sentry client when a DSN is configured and flushes
// buffered events on shutdown. Without a DSN the whole thing is a no-op, so
// local runs never need Sentry credentials.
func Setup(params Params) error {
	if params.Config.Sentry == nil || params.Config.Sentry.DSN == "" {
		params.Logger.Debug("Sentry disabled: no DSN configured")

		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              params.Config.Sentry.DSN,
		Environment:      params.Config.Env.Env,
		AttachStacktrace: true,
	}); err != nil {
		return errors.Wrap(err, "failed to initialize Sentry")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sentry.Flush(sentryFlushTimeout)

			return nil
		},
	})

	return nil
}
