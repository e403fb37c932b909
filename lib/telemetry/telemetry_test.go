package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupDisabled(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	if err != nil {
		t.Fatal(err)
	}
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestOtlpConnConfigEnabled(t *testing.T) {
	require.False(t, OtlpConnConfig{}.Enabled())
	require.True(t, OtlpConnConfig{HttpEndpoint: "http://localhost:4318"}.Enabled())
	require.True(t, OtlpConnConfig{GrpcEndpoint: "http://localhost:4317"}.Enabled())
}

func TestOtlpConnProtocol(t *testing.T) {
	testCases := []struct {
		conn     OtlpConnConfig
		protocol string
		endpoint string
	}{
		{
			conn:     OtlpConnConfig{HttpEndpoint: "http://localhost:4318"},
			protocol: "http",
			endpoint: "http://localhost:4318",
		},
		{
			conn:     OtlpConnConfig{GrpcEndpoint: "http://localhost:4317"},
			protocol: "grpc",
			endpoint: "http://localhost:4317",
		},
		{
			conn: OtlpConnConfig{
				GrpcEndpoint: "http://localhost:4317",
				HttpEndpoint: "http://localhost:4318",
			},
			protocol: "grpc",
			endpoint: "http://localhost:4317",
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.protocol, test.conn.protocol())
		require.Equal(t, test.endpoint, test.conn.endpoint())
	}
}

func TestTraceExporter(t *testing.T) {
	// neither transport dials until the first export
	for _, conn := range []OtlpConnConfig{
		{HttpEndpoint: "http://localhost:4318", Headers: map[string]string{"x-api-key": "key"}},
		{GrpcEndpoint: "http://localhost:4317"},
	} {
		exporter, err := traceExporter(context.Background(), conn)
		require.NoError(t, err, conn.protocol())
		require.NoError(t, exporter.Shutdown(context.Background()), conn.protocol())
	}
}
