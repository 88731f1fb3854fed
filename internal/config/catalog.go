package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CatalogConfig holds runtime-tunable catalog settings loaded from
// catalog.yml and reloadable without a restart.
type CatalogConfig struct {
	MaxPageSize          int     `mapstructure:"maxPageSize"`
	DefaultPageSize      int     `mapstructure:"defaultPageSize"`
	ReferenceCacheTTLSec int     `mapstructure:"referenceCacheTtlSec"`
	WriteRatePerSec      float64 `mapstructure:"writeRatePerSec"`
	WriteBurst           int     `mapstructure:"writeBurst"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		MaxPageSize:          250,
		DefaultPageSize:      50,
		ReferenceCacheTTLSec: 600,
		WriteRatePerSec:      10,
		WriteBurst:           20,
	}
}

type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

func NewCatalogConfigHolder() (*CatalogConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("catalog")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/catalogd/config")
	v.AddConfigPath("/etc/catalogd")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CATALOGD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCatalogConfig()
		v.SetDefault("catalog.maxPageSize", defaults.MaxPageSize)
		v.SetDefault("catalog.defaultPageSize", defaults.DefaultPageSize)
		v.SetDefault("catalog.referenceCacheTtlSec", defaults.ReferenceCacheTTLSec)
		v.SetDefault("catalog.writeRatePerSec", defaults.WriteRatePerSec)
		v.SetDefault("catalog.writeBurst", defaults.WriteBurst)
	}

	var cfg CatalogConfig
	if err := v.UnmarshalKey("catalog", &cfg); err != nil {
		return nil, err
	}
	if err := validateCatalogConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CatalogConfig
		if err := v.UnmarshalKey("catalog", &updated); err != nil {
			log.Printf("[catalog-config] reload failed: %v", err)
			return
		}
		if err := validateCatalogConfig(updated); err != nil {
			log.Printf("[catalog-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[catalog-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CatalogConfigHolder) Get() CatalogConfig {
	return h.current.Load().(CatalogConfig)
}

func validateCatalogConfig(cfg CatalogConfig) error {
	if cfg.MaxPageSize <= 0 {
		return errors.New("catalog.maxPageSize must be positive")
	}
	if cfg.DefaultPageSize <= 0 || cfg.DefaultPageSize > cfg.MaxPageSize {
		return errors.New("catalog.defaultPageSize must be within (0, maxPageSize]")
	}
	if cfg.ReferenceCacheTTLSec < 0 {
		return errors.New("catalog.referenceCacheTtlSec cannot be negative")
	}
	return nil
}
