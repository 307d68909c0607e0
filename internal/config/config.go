package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the client needs to reach the backend and
// identify its callers. The UI never inlines these values; they are threaded
// into each model at construction so tests can substitute fakes.
type Config struct {
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	AgentID        string        `mapstructure:"AGENT_ID"`
	BIUserID       string        `mapstructure:"BI_USER_ID"`
	TestUserID     string        `mapstructure:"TEST_USER_ID"`
	CouponDetails  string        `mapstructure:"COUPON_DETAILS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFile        string        `mapstructure:"LOG_FILE"`
	ChartOutDir    string        `mapstructure:"CHART_OUT_DIR"`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("API_BASE_URL", "http://127.0.0.1:8000")
	v.SetDefault("AGENT_ID", "AGENT_01")
	v.SetDefault("BI_USER_ID", "BI_USER")
	v.SetDefault("TEST_USER_ID", "TEST_USER_FRONTEND")
	v.SetDefault("COUPON_DETAILS", "15% 할인쿠폰")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "csdesk.log")
	v.SetDefault("CHART_OUT_DIR", ".")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
