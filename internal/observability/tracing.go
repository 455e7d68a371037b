package observability

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/gamerhub/marketplace/internal/config"
)

// InstallTracing sets the global tracer provider according to cfg and returns
// its shutdown func. With the "none" exporter nothing is installed.
func InstallTracing(cfg config.TracingConfig, app config.AppConfig, w io.Writer) (func(context.Context) error, error) {
	if cfg.Exporter == "" || cfg.Exporter == "none" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", app.Name),
			attribute.String("service.version", app.Version),
			attribute.String("deployment.environment", app.Env),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
