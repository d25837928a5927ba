package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	GRPCPort       string `mapstructure:"GRPC_PORT"`
	MediaDir       string `mapstructure:"MEDIA_DIR"`
	MediaPort      string `mapstructure:"MEDIA_PORT"`
	MediaPublicURL string `mapstructure:"MEDIA_PUBLIC_URL"`
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	MailFrom       string `mapstructure:"MAIL_FROM"`
	LicenseSeed    string `mapstructure:"LICENSE_SEED"`
}

var keys = []string{
	"APP_ENV", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"REDIS_ADDR", "GRPC_PORT", "MEDIA_DIR", "MEDIA_PORT", "MEDIA_PUBLIC_URL",
	"SENDGRID_API_KEY", "MAIL_FROM", "LICENSE_SEED",
}

// LoadConfig reads app.env from path when present and lets the environment
// override every key.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("GRPC_PORT", ":50052")
	v.SetDefault("MEDIA_DIR", "./media")
	v.SetDefault("MEDIA_PORT", ":8082")
	v.SetDefault("MEDIA_PUBLIC_URL", "http://localhost:8082/media")
	v.SetDefault("MAIL_FROM", "noreply@heroacademy.app")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}
	err = v.Unmarshal(&config)
	return
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// LicenseCodes splits LICENSE_SEED on commas.
func (c Config) LicenseCodes() []string {
	var out []string
	for _, code := range strings.Split(c.LicenseSeed, ",") {
		if code = strings.TrimSpace(code); code != "" {
			out = append(out, code)
		}
	}
	return out
}
