package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv          string `mapstructure:"APP_ENV"`
	DBHost          string `mapstructure:"DB_HOST"`
	DBPort          string `mapstructure:"DB_PORT"`
	DBUser          string `mapstructure:"DB_USER"`
	DBPassword      string `mapstructure:"DB_PASSWORD"`
	DBName          string `mapstructure:"DB_NAME"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	AccessSecret    string `mapstructure:"ACCESS_SECRET"`
	RefreshSecret   string `mapstructure:"REFRESH_SECRET"`
	GRPCPort        string `mapstructure:"GRPC_PORT"`
	UserServiceAddr string `mapstructure:"USER_SERVICE_ADDR"`
	GoogleClientID  string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleCertsURL  string `mapstructure:"GOOGLE_CERTS_URL"`
}

var keys = []string{
	"APP_ENV", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"REDIS_ADDR", "ACCESS_SECRET", "REFRESH_SECRET", "GRPC_PORT",
	"USER_SERVICE_ADDR", "GOOGLE_CLIENT_ID", "GOOGLE_CERTS_URL",
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("GRPC_PORT", ":50051")
	v.SetDefault("USER_SERVICE_ADDR", "localhost:50052")
	v.SetDefault("GOOGLE_CERTS_URL", "https://www.googleapis.com/oauth2/v3/certs")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if config.AccessSecret == "" || config.RefreshSecret == "" {
		err = fmt.Errorf("ACCESS_SECRET and REFRESH_SECRET must be set")
	}
	return
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
