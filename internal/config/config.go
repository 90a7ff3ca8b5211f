package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	SessionSecret     string   `mapstructure:"SESSION_SECRET"`
	SessionTTLMinutes int      `mapstructure:"SESSION_TTL_MINUTES"`
	AdminUser         string   `mapstructure:"ADMIN_USER"`
	AdminPassword     string   `mapstructure:"ADMIN_PASSWORD"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS      float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int      `mapstructure:"RATE_LIMIT_BURST"`
	LinkerTTLMinutes  int      `mapstructure:"LINKER_TTL_MINUTES"`
	SeedDemoData      bool     `mapstructure:"SEED_DEMO_DATA"`
	SeedPatients      int      `mapstructure:"SEED_PATIENTS"`
	SeedDoctors       int      `mapstructure:"SEED_DOCTORS"`
	SeedNurses        int      `mapstructure:"SEED_NURSES"`
	SeedDeliveries    int      `mapstructure:"SEED_DELIVERIES"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("SESSION_TTL_MINUTES", 480)
	v.SetDefault("ADMIN_USER", "admin")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("LINKER_TTL_MINUTES", 30)
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("SEED_PATIENTS", 15)
	v.SetDefault("SEED_DOCTORS", 8)
	v.SetDefault("SEED_NURSES", 12)
	v.SetDefault("SEED_DELIVERIES", 8)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_TTL_MINUTES")
	v.BindEnv("ADMIN_USER")
	v.BindEnv("ADMIN_PASSWORD")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("LINKER_TTL_MINUTES")
	v.BindEnv("SEED_DEMO_DATA")
	v.BindEnv("SEED_PATIENTS")
	v.BindEnv("SEED_DOCTORS")
	v.BindEnv("SEED_NURSES")
	v.BindEnv("SEED_DELIVERIES")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: A default session secret and admin password are in effect.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

// Validate enforces the settings that have no safe default. Development
// mode fills in throwaway credentials; production refuses to start
// without real ones.
func (c *Config) Validate() error {
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if c.LinkerTTLMinutes <= 0 {
		return fmt.Errorf("LINKER_TTL_MINUTES must be positive")
	}

	if c.IsProduction() {
		if c.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required in production")
		}
		if len(c.SessionSecret) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
		}
		if c.AdminPassword == "" {
			return fmt.Errorf("ADMIN_PASSWORD is required in production")
		}
		return nil
	}

	if c.SessionSecret == "" {
		c.SessionSecret = "dev-insecure-session-secret-0000"
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin"
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
