package config

import (
	"errors"
	"time"

	"github.com/arenadesk/arenadesk/params"
	"github.com/spf13/viper"
)

const (
	DefaultListenAddr = ":5000"
	DefaultBaseURL    = "http://localhost:5000"
)

type MySQLConfig struct {
	Dsn             string `yaml:"dsn"`
	MaxIdleConns    int    `yaml:"maxIdleConns"`
	MaxOpenConns    int    `yaml:"maxOpenConns"`
	ConnMaxIdleTime int    `yaml:"connMaxIdleTime"`
	ConnMaxLifetime int    `yaml:"connMaxLifetime"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type AuthConfig struct {
	JWTSecret                string        `yaml:"jwtSecret"`
	SessionMaxAge            time.Duration `yaml:"sessionMaxAge"`
	VerificationMaxAge       time.Duration `yaml:"verificationMaxAge"`
	RequireEmailVerification bool          `yaml:"requireEmailVerification"`
	MaxLoginFails            int           `yaml:"maxLoginFails"`
	LoginLockDuration        time.Duration `yaml:"loginLockDuration"`
}

type Config struct {
	Debug        bool        `yaml:"debug"`
	AppName      string      `yaml:"appName"`
	BaseURL      string      `yaml:"baseURL"`
	ListenAddr   string      `yaml:"listenAddr"`
	AllowOrigins []string    `yaml:"allowOrigins"`
	RedisURL     string      `yaml:"redisURL"`
	MySQL        MySQLConfig `yaml:"mysql"`
	SMTP         SMTPConfig  `yaml:"smtp"`
	Auth         AuthConfig  `yaml:"auth"`
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.MySQL.Dsn == "" {
		return errors.New("mysql.dsn is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret is required")
	}
	if c.Auth.SessionMaxAge == 0 {
		c.Auth.SessionMaxAge = params.SessionTokenMaxAge
	}
	if c.Auth.VerificationMaxAge == 0 {
		c.Auth.VerificationMaxAge = params.VerificationTokenMaxAge
	}
	if c.Auth.MaxLoginFails == 0 {
		c.Auth.MaxLoginFails = params.LoginMaxFailAttempts
	}
	if c.Auth.LoginLockDuration == 0 {
		c.Auth.LoginLockDuration = params.LoginLockDuration
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
