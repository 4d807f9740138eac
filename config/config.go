package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

//go:generate mockgen -package mocks -destination mocks/mock_config_unmarshaler.go github.com/kasuboski/renamez/config ConfigUnmarshaler

type Config struct {
	Transmission Transmission `json:"transmission" yaml:"transmission" mapstructure:"transmission"`
	Library      Library      `json:"library" yaml:"library" mapstructure:"library"`
	Storage      Storage      `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server       Server       `json:"server" yaml:"server" mapstructure:"server"`
}

// Transmission is how to reach the Transmission RPC endpoint
type Transmission struct {
	Scheme   string        `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"omitempty,oneof=http https"`
	Host     string        `json:"host" yaml:"host" mapstructure:"host" validate:"omitempty,hostname|ip"`
	Port     int           `json:"port" yaml:"port" mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Username string        `json:"username" yaml:"username" mapstructure:"username"`
	Password string        `json:"password" yaml:"password" mapstructure:"password" validate:"excluded_without=Username"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"min=0"`

	// MaxRetries is the number of attempts made when the endpoint answers 429 or 503
	MaxRetries int `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"min=0"`
}

// Library is a local directory renamed in place instead of torrents
type Library struct {
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath"`
	LockFile string `json:"lockFile" yaml:"lockFile" mapstructure:"lockFile"`
}

type Server struct {
	Port      int     `json:"port" yaml:"port" mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	RateLimit float64 `json:"rateLimit" yaml:"rateLimit" mapstructure:"rateLimit" validate:"min=0"`
	Burst     int     `json:"burst" yaml:"burst" mapstructure:"burst" validate:"min=0"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, c.Validate()
}

// Validate checks field constraints
func (c Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
