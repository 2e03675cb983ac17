package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://desk.example.com, ,http://localhost:3000")
	t.Setenv("LOGIN_BURST", "not-a-number")

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://desk.example.com", "http://localhost:3000"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 5, cfg.RateLimit.LoginBurst)
	assert.Equal(t, "admin", cfg.Auth.Username)
}

func TestLoadProductionForcesSecureCookie(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AUTH_COOKIE_SECURE", "false")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Auth.CookieSecure)
}

func TestClinicConfigNormalization(t *testing.T) {
	holder := NewStaticClinicConfigHolder(ClinicConfig{Timezone: "Asia/Kolkata"})
	cfg := holder.Get()

	assert.Equal(t, DefaultHouseSaleLabel, cfg.HouseSaleLabel)
	assert.Equal(t, "all_time", cfg.DefaultReportRange)
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
}

func TestClinicConfigLocationFallback(t *testing.T) {
	assert.Equal(t, time.Local, ClinicConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, time.Local, ClinicConfig{Timezone: "local"}.Location())
	assert.Error(t, validateClinicConfig(ClinicConfig{Timezone: "Mars/Olympus"}))
}

func TestNilHolderReturnsDefaults(t *testing.T) {
	var holder *ClinicConfigHolder
	assert.Equal(t, DefaultClinicConfig(), holder.Get())
}
