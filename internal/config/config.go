package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	AI      AIConfig      `mapstructure:"ai"`
	Session SessionConfig `mapstructure:"session"`
	Deal    DealConfig    `mapstructure:"deal"`
	Rubric  RubricConfig  `mapstructure:"rubric"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// AIConfig selects and tunes the generative-text provider behind the seller.
type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	Model        string        `mapstructure:"model"`
	APIKeyEnv    string        `mapstructure:"api_key_env"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxSentences int           `mapstructure:"max_sentences"`
}

type SessionConfig struct {
	MaxIdle   time.Duration `mapstructure:"max_idle"`
	SweepSpec string        `mapstructure:"sweep_spec"`
}

// DealConfig carries the generation ranges and constraints for deal
// parameters. Defaults reproduce the standard scenario: bulk microprocessor
// orders at $50-300 per unit with 40-100 day lead times.
type DealConfig struct {
	PriceMin             float64 `mapstructure:"price_min"`
	PriceMax             float64 `mapstructure:"price_max"`
	MinPriceGap          float64 `mapstructure:"min_price_gap"`
	ReservationFloorPct  float64 `mapstructure:"reservation_floor_pct"`
	DeliveryMin          int     `mapstructure:"delivery_min"`
	DeliveryMax          int     `mapstructure:"delivery_max"`
	MinDeliveryGap       int     `mapstructure:"min_delivery_gap"`
	DeliveryTargetFloor  int     `mapstructure:"delivery_target_floor"`
	DeliveryReserveFloor int     `mapstructure:"delivery_reserve_floor"`
	StandardVolume       int     `mapstructure:"standard_volume"`
	Tier1Threshold       int     `mapstructure:"tier_1_threshold"`
	Tier1Discount        float64 `mapstructure:"tier_1_discount"`
	Tier2Threshold       int     `mapstructure:"tier_2_threshold"`
	Tier2Discount        float64 `mapstructure:"tier_2_discount"`
}

// RubricConfig overrides the evaluation metric weights. Band thresholds are
// product constants kept in evaluate.DefaultRubric; the weights are the
// knob instructors actually turn between course runs.
type RubricConfig struct {
	Weights map[string]float64 `mapstructure:"weights"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NEG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)

	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.api_key_env", "")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("ai.max_sentences", 3)

	v.SetDefault("session.max_idle", "2h")
	v.SetDefault("session.sweep_spec", "@every 10m")

	v.SetDefault("deal.price_min", 50)
	v.SetDefault("deal.price_max", 300)
	v.SetDefault("deal.min_price_gap", 5)
	v.SetDefault("deal.reservation_floor_pct", 0.50)
	v.SetDefault("deal.delivery_min", 40)
	v.SetDefault("deal.delivery_max", 100)
	v.SetDefault("deal.min_delivery_gap", 3)
	v.SetDefault("deal.delivery_target_floor", 5)
	v.SetDefault("deal.delivery_reserve_floor", 3)
	v.SetDefault("deal.standard_volume", 10000)
	v.SetDefault("deal.tier_1_threshold", 20000)
	v.SetDefault("deal.tier_1_discount", 0.05)
	v.SetDefault("deal.tier_2_threshold", 50000)
	v.SetDefault("deal.tier_2_discount", 0.08)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
