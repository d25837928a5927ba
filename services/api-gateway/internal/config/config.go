package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	Port           string `mapstructure:"PORT"`
	AuthSvcUrl     string `mapstructure:"AUTH_SVC_URL"`
	UserSvcUrl     string `mapstructure:"USER_SVC_URL"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`
	CookieDomain   string `mapstructure:"COOKIE_DOMAIN"`
	CookieSecure   bool   `mapstructure:"COOKIE_SECURE"`
}

var keys = []string{
	"APP_ENV", "PORT", "AUTH_SVC_URL", "USER_SVC_URL", "REDIS_ADDR",
	"ALLOWED_ORIGINS", "FRONTEND_URL", "COOKIE_DOMAIN", "COOKIE_SECURE",
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", ":8080")
	v.SetDefault("AUTH_SVC_URL", "localhost:50051")
	v.SetDefault("USER_SVC_URL", "localhost:50052")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}
	err = v.Unmarshal(&config)
	config.FrontendURL = strings.TrimRight(config.FrontendURL, "/")
	return
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
