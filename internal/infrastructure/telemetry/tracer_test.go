package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())

	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.False(t, tp.IsEnabled())
}

func TestTracerProvider_DisabledIsSafe(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()

	assert.NoError(t, tp.Shutdown(ctx))
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NotNil(t, tp.Tracer("test"))
}

func TestTracerProvider_TracerProducesSpans(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	tracer := tp.Tracer("test")
	ctx, span := tracer.Start(context.Background(), "operation")
	defer span.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
}
