package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the vsrctl configuration file.
type Config struct {
	RPCURL     string `yaml:"rpc_url"`
	Keypair    string `yaml:"keypair,omitempty"`
	Devnet     *bool  `yaml:"devnet,omitempty"`
	Commitment string `yaml:"commitment"`
	LogLevel   string `yaml:"log_level"`
	Output     string `yaml:"output"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		RPCURL:     solanarpc.MainNetBeta_RPC,
		Commitment: string(solanarpc.CommitmentConfirmed),
		LogLevel:   "warn",
		Output:     "yaml",
	}
}

// DefaultPath returns ~/.vsr/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".vsr", "config.yaml")
	}
	return filepath.Join(home, ".vsr", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return errors.New("rpc_url is required")
	}
	switch solanarpc.CommitmentType(c.Commitment) {
	case solanarpc.CommitmentProcessed, solanarpc.CommitmentConfirmed, solanarpc.CommitmentFinalized:
	default:
		return fmt.Errorf("unsupported commitment %q", c.Commitment)
	}
	switch strings.ToLower(c.Output) {
	case "yaml", "json":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// NewLogger builds a console logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
