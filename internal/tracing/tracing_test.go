package tracing

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_WithoutExporter(t *testing.T) {
	shutdown, err := Setup(t.Context(), &config.Otel{ServiceName: "storefront-test", SamplerRatio: 1}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, span := otel.Tracer("test").Start(t.Context(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(t.Context()))
}

func TestSetup_WithExporter(t *testing.T) {
	shutdown, err := Setup(t.Context(), &config.Otel{
		ServiceName:      "storefront-test",
		ExporterEndpoint: "http://127.0.0.1:4318/v1/traces",
		SamplerRatio:     0,
	}, "test")
	require.NoError(t, err)

	// no spans were sampled, so nothing is exported
	assert.NoError(t, shutdown(t.Context()))
}
