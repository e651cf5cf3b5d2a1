package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/signup/internal/api"
	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/tracing"
)

// newRegistrar builds the HTTP registrar described by c, wrapped in the
// tracing middleware. The returned shutdown flushes pending spans.
func newRegistrar(c config.Config) (registration.Registrar, func(), error) {
	client, err := api.NewClient(api.Config{
		BaseURL: c.API.BaseURL,
		Timeout: c.API.Timeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating api client: %w", err)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      c.Tracing.Enabled,
		Exporter:     c.Tracing.Exporter,
		FilePath:     c.Tracing.FilePath,
		OTLPEndpoint: c.Tracing.OTLPEndpoint,
		SampleRate:   c.Tracing.SampleRate,
		ServiceName:  c.Tracing.ServiceName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}

	log.Debug(log.CatAPI, "Registrar ready", "endpoint", client.Endpoint(), "tracing", provider.Enabled())
	return tracing.NewRegistrarMiddleware(provider.Tracer())(client), shutdown, nil
}
