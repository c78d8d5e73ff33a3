package weft_test

import (
	"context"
	"testing"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestExecutor_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	b := weft.NewBuilder()
	b.AddPath("a", "b", "c")
	g := b.Finalize()

	exec := weft.NewExecutor(weft.WithWorkers(2))
	defer exec.Close()

	_, err := exec.DescendantsMany(context.Background(), g, []model.NodeIndex{0, 0, 1})
	require.NoError(t, err)
	_, err = exec.AncestorsMany(context.Background(), g, []model.NodeIndex{9})
	require.ErrorIs(t, err, weft.ErrIndexOutOfRange)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "Executor.descendantsMany", ok.Name())
	assert.Contains(t, ok.Attributes(), attribute.Int("seeds", 3))
	assert.Contains(t, ok.Attributes(), attribute.Int("distinct_seeds", 2))
	assert.Equal(t, codes.Unset, ok.Status().Code)

	failed := spans[1]
	assert.Equal(t, "Executor.ancestorsMany", failed.Name())
	assert.Equal(t, codes.Error, failed.Status().Code)
}
