package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
)

type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.URL.Path)
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *collector) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func TestInit_WithoutEndpointDoesNotRecord(t *testing.T) {
	obs, err := Init(context.Background(), Config{ServiceName: "hangman-bot", Environment: "production"})
	require.NoError(t, err)

	_, span := obs.Tracer.Start(context.Background(), "op")
	defer span.End()
	assert.False(t, span.IsRecording())
	assert.NoError(t, obs.Shutdown(context.Background()))
}

func TestInit_WithEndpointExportsSpans(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	c := &collector{}
	srv := httptest.NewServer(c)
	defer srv.Close()

	ctx := context.Background()
	obs, err := Init(ctx, Config{ServiceName: "hangman-bot", Environment: "production", OTLPEndpoint: srv.URL})
	require.NoError(t, err)

	_, span := obs.Tracer.Start(ctx, "hangman.GuessLetter")
	assert.True(t, span.IsRecording())
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().IsSampled())
	span.End()

	// the global provider serves the same pipeline
	_, global := otel.Tracer("other").Start(ctx, "op")
	assert.True(t, global.IsRecording())
	global.End()

	require.NoError(t, obs.Shutdown(ctx))
	paths := c.Paths()
	require.NotEmpty(t, paths)
	assert.Equal(t, "/v1/traces", paths[0])
}

func TestInit_RejectsInvalidEndpoint(t *testing.T) {
	_, err := Init(context.Background(), Config{ServiceName: "ditto-bot", OTLPEndpoint: "collector:4318"})
	assert.Error(t, err)
}

func TestTracesURL(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
		wantErr  bool
	}{
		{endpoint: "http://tempo:4318", want: "http://tempo:4318/v1/traces"},
		{endpoint: "http://tempo:4318/", want: "http://tempo:4318/v1/traces"},
		{endpoint: "https://otel.example.com/custom/traces", want: "https://otel.example.com/custom/traces"},
		{endpoint: "tempo:4318", wantErr: true},
		{endpoint: "grpc://tempo:4317", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			got, err := TracesURL(tt.endpoint)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
