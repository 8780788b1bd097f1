package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// TrackRule defines how shifts are generated for one track
type TrackRule struct {
	RRule string `yaml:"rrule" validate:"required"`
}

// OAuthClientConfig mirrors the Google OAuth client JSON so it can be
// passed straight to google.ConfigFromJSON
type OAuthClientConfig struct {
	Installed OAuthInstalled `yaml:"installed" json:"installed"`
}

// OAuthInstalled holds the installed-app OAuth client credentials
type OAuthInstalled struct {
	ClientID     string   `yaml:"clientID" json:"client_id"`
	ClientSecret string   `yaml:"clientSecret" json:"client_secret"`
	AuthURI      string   `yaml:"authURI" json:"auth_uri"`
	TokenURI     string   `yaml:"tokenURI" json:"token_uri"`
	RedirectURIs []string `yaml:"redirectURIs" json:"redirect_uris"`
}

// Config represents the application configuration
type Config struct {
	ServerPort      int                `yaml:"serverPort" validate:"required,min=1,max=65535"`
	DatabaseDSN     string             `yaml:"databaseDSN" validate:"required"`
	RedisAddr       string             `yaml:"redisAddr,omitempty"`
	HealthCacheTTL  int                `yaml:"healthCacheTTL,omitempty" validate:"omitempty,min=1"` // seconds
	JWTSecret       string             `yaml:"jwtSecret" validate:"required"`
	Years           []int              `yaml:"years" validate:"required,min=1,dive,min=2000"`
	Landscapes      map[string]string  `yaml:"landscapes,omitempty" validate:"dive,url"`
	ScheduleSheetID string             `yaml:"scheduleSheetID,omitempty"`
	OAuthClient     *OAuthClientConfig `yaml:"oauthClient,omitempty"`
	OnDutyRule      TrackRule          `yaml:"onDutyRule" validate:"required"`
	OnCallRule      TrackRule          `yaml:"onCallRule" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from devportal_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Environment variables override file values for deploy-time secrets.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for both generation rules
	if _, err := rrule.StrToRRule(cfg.OnDutyRule.RRule); err != nil {
		return fmt.Errorf("invalid rrule in onDutyRule: %w", err)
	}
	if _, err := rrule.StrToRRule(cfg.OnCallRule.RRule); err != nil {
		return fmt.Errorf("invalid rrule in onCallRule: %w", err)
	}

	return nil
}

// applyEnvOverrides replaces file values with environment variables where
// set, so secrets can stay out of the checked-in config
func applyEnvOverrides(cfg *Config) {
	if dsn := os.Getenv("DEVPORTAL_DATABASE_DSN"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	if addr := os.Getenv("DEVPORTAL_REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	if secret := os.Getenv("DEVPORTAL_JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}
	if port := os.Getenv("DEVPORTAL_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.ServerPort = p
		}
	}
}

// findConfigFile searches for devportal_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "devportal_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
