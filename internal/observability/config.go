package observability

import (
	"strings"

	"github.com/smallbiznis/clinicdesk/internal/config"
)

// Config is the resolved telemetry setup shared by the logger and tracer.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "clinicdesk"
	}

	t := cfg.Telemetry
	environment := t.DeploymentEnv
	if environment == "" {
		environment = cfg.Environment
	}

	return Config{
		ServiceName:          serviceName,
		Environment:          strings.TrimSpace(environment),
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             defaultString(t.LogLevel, "info"),
		LogFormat:            defaultString(t.LogFormat, "json"),
		OtelEnabled:          t.OtelEnabled && t.OtelEndpoint != "",
		OtelExporterEndpoint: t.OtelEndpoint,
		OtelExporterProtocol: normalizeProtocol(t.OtelProtocol),
		OtelSamplingRatio:    t.OtelSampling,
	}
}

// Debug turns on verbose request logging outside production.
func (c Config) Debug() bool {
	if strings.EqualFold(c.LogLevel, "debug") {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func normalizeProtocol(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "http", "http/protobuf":
		return "http"
	default:
		return "grpc"
	}
}

func defaultString(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
