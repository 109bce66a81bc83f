package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/gear-tech/sails-program-verifier/pkg/errors"
	logconf "github.com/gear-tech/sails-program-verifier/pkg/logger/conf"
)

type Config struct {
	HttpPort    int                `json:"httpPort" yaml:"httpPort"`
	DatabaseURL string             `json:"databaseUrl" yaml:"databaseUrl"`
	Log         *logconf.LogConfig `json:"log" yaml:"log"`
	Networks    NetworksConfig     `json:"networks" yaml:"networks"`
	Docker      DockerConfig       `json:"docker" yaml:"docker"`
	Builds      BuildsConfig       `json:"builds" yaml:"builds"`
	Scheduler   SchedulerConfig    `json:"scheduler" yaml:"scheduler"`
}

type NetworksConfig struct {
	MainnetURL string `json:"mainnet_url" yaml:"mainnet_url"`
	TestnetURL string `json:"testnet_url" yaml:"testnet_url"`
}

type DockerConfig struct {
	RegistryUser     string `json:"registry_user" yaml:"registry_user"`
	RegistryPassword string `json:"registry_password" yaml:"registry_password"`
}

type BuildsConfig struct {
	Root    string `json:"root" yaml:"root"`
	LogsDir string `json:"logs_dir" yaml:"logs_dir"`
}

type SchedulerConfig struct {
	MaxInProgress        int64 `json:"max_in_progress" yaml:"max_in_progress"`
	CheckIntervalSeconds int   `json:"check_interval_seconds" yaml:"check_interval_seconds"`
	DBMaxOpenConns       int   `json:"db_max_open_conns" yaml:"db_max_open_conns"`
}

func (cfg *Config) GetHttpPort() int {
	if cfg.HttpPort == 0 {
		return 3000
	}
	return cfg.HttpPort
}

func (cfg *BuildsConfig) GetRoot() string {
	if cfg.Root == "" {
		return "/tmp/builds"
	}
	return cfg.Root
}

func (cfg *BuildsConfig) GetLogsDir() string {
	if cfg.LogsDir == "" {
		return "logs"
	}
	return cfg.LogsDir
}

func (cfg *SchedulerConfig) GetMaxInProgress() int64 {
	if cfg.MaxInProgress <= 0 {
		return 10
	}
	return cfg.MaxInProgress
}

func (cfg *SchedulerConfig) GetCheckInterval() time.Duration {
	if cfg.CheckIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.CheckIntervalSeconds) * time.Second
}

func (cfg *SchedulerConfig) GetDBMaxOpenConns() int {
	if cfg.DBMaxOpenConns <= 0 {
		return 10
	}
	return cfg.DBMaxOpenConns
}

// LoadConfig reads the optional YAML config file (CONFIG_PATH, default
// config.yaml) and applies environment overrides on top. A missing file is
// not an error; a missing DATABASE_URL is.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	configFile, err := os.Open(configPath)
	if err == nil {
		defer configFile.Close()
		decoder := yaml.NewDecoder(configFile)
		if err := decoder.Decode(cfg); err != nil {
			return nil, errors.NewError().
				WithCode(errors.CodeInitializeError).
				WithMessage("failed to parse config file").
				WithError(err)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.NewError().
			WithCode(errors.CodeInitializeError).
			WithMessage("failed to open config file").
			WithError(err)
	}

	applyEnv(cfg)

	if cfg.DatabaseURL == "" {
		return nil, errors.WrapMessage("DATABASE_URL is not set", errors.CodeLackOfConfig)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("MAINNET_URL"); v != "" {
		cfg.Networks.MainnetURL = v
	}
	if v := os.Getenv("TESTNET_URL"); v != "" {
		cfg.Networks.TestnetURL = v
	}
	if v := os.Getenv("DOCKER_REGISTRY_USER"); v != "" {
		cfg.Docker.RegistryUser = v
	}
	if v := os.Getenv("DOCKER_REGISTRY_PASSWORD"); v != "" {
		cfg.Docker.RegistryPassword = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.HttpPort = port
		}
	}
}
