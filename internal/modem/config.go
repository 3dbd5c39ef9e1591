package modem

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds client configuration. The catalog file itself is loaded
// separately by the catalog package.
type Config struct {
	Catalog string     `mapstructure:"catalog"`
	BaseURL string     `mapstructure:"base_url"`
	HTTP    HTTPConfig `mapstructure:"http"`
}

// HTTPConfig holds transport settings.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoadConfig reads configuration from file, env vars, and defaults.
// base_url is normally derived from the catalog's Host header; setting it
// explicitly is mainly useful against a mock device.
func LoadConfig(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("catalog", "huawei-k4203.yml")
	v.SetDefault("base_url", "")
	v.SetDefault("http.timeout", "30s")

	v.SetConfigType("toml")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("modemsms")
		v.AddConfigPath("/etc/modemsms")
		v.AddConfigPath("$HOME/.config/modemsms")
		v.AddConfigPath(".")
	}

	v.BindEnv("catalog", "MODEMSMS_CATALOG")
	v.BindEnv("base_url", "MODEMSMS_BASE_URL")
	v.BindEnv("http.timeout", "MODEMSMS_HTTP_TIMEOUT")

	_ = v.ReadInConfig() // config file is optional

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
