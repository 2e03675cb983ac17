package observability

import (
	"testing"

	"github.com/smallbiznis/clinicdesk/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigResolvesTelemetry(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppVersion:  "1.2.0",
		Environment: "staging",
		Telemetry: config.TelemetryConfig{
			OtelEnabled:  true,
			OtelEndpoint: "collector:4318",
			OtelProtocol: "http/protobuf",
			OtelSampling: 0.5,
		},
	})

	assert.Equal(t, "clinicdesk", cfg.ServiceName)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigDisablesTracingWithoutEndpoint(t *testing.T) {
	cfg := LoadConfig(config.Config{
		Environment: "production",
		Telemetry: config.TelemetryConfig{
			OtelEnabled:   true,
			LogLevel:      "debug",
			DeploymentEnv: "prod-eu",
		},
	})

	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, "grpc", cfg.OtelExporterProtocol)
	assert.Equal(t, "prod-eu", cfg.Environment)
	assert.True(t, cfg.Debug())
}
