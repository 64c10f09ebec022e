package jaeger

import (
	"go.opentelemetry.io/otel/exporters/jaeger"
)

// NewJaeger creates an exporter sending spans to the collector at endpoint.
func NewJaeger(endpoint string) (*jaeger.Exporter, error) {
	return jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(endpoint),
	))
}
