package config

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const DefaultHouseSaleLabel = "Clinic Sale"

// ClinicConfig holds settings the front desk can change without a restart.
type ClinicConfig struct {
	Name               string `mapstructure:"name"`
	HouseSaleLabel     string `mapstructure:"houseSaleLabel"`
	Timezone           string `mapstructure:"timezone"`
	DefaultReportRange string `mapstructure:"defaultReportRange"`
}

func DefaultClinicConfig() ClinicConfig {
	return ClinicConfig{
		Name:               "Clinic",
		HouseSaleLabel:     DefaultHouseSaleLabel,
		Timezone:           "Local",
		DefaultReportRange: "all_time",
	}
}

// Location resolves the clinic calendar used for report windows.
// Unknown zones fall back to time.Local.
func (c ClinicConfig) Location() *time.Location {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

type ClinicConfigHolder struct {
	current atomic.Value // holds ClinicConfig
}

// NewStaticClinicConfigHolder wraps a fixed config, mostly for tests.
func NewStaticClinicConfigHolder(cfg ClinicConfig) *ClinicConfigHolder {
	holder := &ClinicConfigHolder{}
	holder.current.Store(normalizeClinicConfig(cfg))
	return holder
}

func NewClinicConfigHolder(log *zap.Logger) (*ClinicConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("clinic")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/clinicdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CLINICDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultClinicConfig()
	v.SetDefault("clinic.name", defaults.Name)
	v.SetDefault("clinic.houseSaleLabel", defaults.HouseSaleLabel)
	v.SetDefault("clinic.timezone", defaults.Timezone)
	v.SetDefault("clinic.defaultReportRange", defaults.DefaultReportRange)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileFound = false
	}

	var cfg ClinicConfig
	if err := v.UnmarshalKey("clinic", &cfg); err != nil {
		return nil, err
	}
	if err := validateClinicConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ClinicConfigHolder{}
	holder.current.Store(normalizeClinicConfig(cfg))

	if !fileFound {
		return holder, nil
	}

	log = log.Named("clinic.config")
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ClinicConfig
		if err := v.UnmarshalKey("clinic", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateClinicConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(normalizeClinicConfig(updated))
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *ClinicConfigHolder) Get() ClinicConfig {
	if h == nil {
		return DefaultClinicConfig()
	}
	cfg, ok := h.current.Load().(ClinicConfig)
	if !ok {
		return DefaultClinicConfig()
	}
	return cfg
}

func validateClinicConfig(cfg ClinicConfig) error {
	tz := strings.TrimSpace(cfg.Timezone)
	if tz != "" && !strings.EqualFold(tz, "local") {
		if _, err := time.LoadLocation(tz); err != nil {
			return errors.New("clinic.timezone is not a valid IANA zone")
		}
	}
	return nil
}

func normalizeClinicConfig(cfg ClinicConfig) ClinicConfig {
	defaults := DefaultClinicConfig()
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = defaults.Name
	}
	if strings.TrimSpace(cfg.HouseSaleLabel) == "" {
		cfg.HouseSaleLabel = defaults.HouseSaleLabel
	}
	if strings.TrimSpace(cfg.Timezone) == "" {
		cfg.Timezone = defaults.Timezone
	}
	if strings.TrimSpace(cfg.DefaultReportRange) == "" {
		cfg.DefaultReportRange = defaults.DefaultReportRange
	}
	return cfg
}
