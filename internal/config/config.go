package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type LockoutConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	Duration    string `yaml:"duration"`
}

type PasswordConfig struct {
	BcryptCost string `yaml:"bcrypt_cost"`
	ResetTTL   string `yaml:"reset_ttl"`
	ResetBytes int    `yaml:"reset_bytes"`
}

type TwilioConfig struct {
	AccountSID  string `yaml:"account_sid"`
	AuthToken   string `yaml:"auth_token"`
	FromNumber  string `yaml:"from_number"`
	AlertNumber string `yaml:"alert_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Lockout  LockoutConfig  `yaml:"lockout"`
	Password PasswordConfig `yaml:"password"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port               string
	GinMode            string
	DSN                string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	JWTAccessSecret    string
	JWTRefreshSecret   string
	JWTIssuer          string
	JWTAudience        string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	LockoutMaxAttempts int
	LockoutDuration    time.Duration
	BcryptCost         int
	ResetTokenTTL      time.Duration
	ResetTokenBytes    int
	TwilioSID          string
	TwilioToken        string
	TwilioFrom         string
	TwilioAlertNumber  string
	CasbinModelPath    string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// secrets that should not live in the file.
func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	lockDur, err := time.ParseDuration(configFile.Lockout.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid lockout duration: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.Password.ResetTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	accessSecret := env("JWT_ACCESS_SECRET", configFile.JWT.AccessSecret)
	refreshSecret := env("JWT_REFRESH_SECRET", configFile.JWT.RefreshSecret)
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("JWT access and refresh secrets are required")
	}
	// Two distinct secrets are a blast-radius boundary; refuse to start if
	// one was reused for the other.
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("JWT access and refresh secrets must differ")
	}

	cost := atoi(env("BCRYPT_COST", configFile.Password.BcryptCost))
	if cost < 10 {
		cost = 12
	}

	resetBytes := configFile.Password.ResetBytes
	if resetBytes < 32 {
		resetBytes = 32
	}

	maxAttempts := configFile.Lockout.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	return &Config{
		Port:               fmt.Sprintf("%d", configFile.App.Port),
		GinMode:            configFile.App.GinMode,
		DSN:                env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:          env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:      env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:            configFile.Redis.DB,
		JWTAccessSecret:    accessSecret,
		JWTRefreshSecret:   refreshSecret,
		JWTIssuer:          configFile.JWT.Issuer,
		JWTAudience:        configFile.JWT.Audience,
		AccessTTL:          accTTL,
		RefreshTTL:         refTTL,
		LockoutMaxAttempts: maxAttempts,
		LockoutDuration:    lockDur,
		BcryptCost:         cost,
		ResetTokenTTL:      resetTTL,
		ResetTokenBytes:    resetBytes,
		TwilioSID:          env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:        env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:         configFile.Twilio.FromNumber,
		TwilioAlertNumber:  configFile.Twilio.AlertNumber,
		CasbinModelPath:    configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func atoi(s string) int {
	var i int
	fmt.Sscanf(s, "%d", &i)
	return i
}
