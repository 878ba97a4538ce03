package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Engine     string `yaml:"engine"       mapstructure:"engine"`
	ModelPath  string `yaml:"model_path"   mapstructure:"model_path"`
	PolicyPath string `yaml:"policy_path"  mapstructure:"policy_path"`
	FGAAPIURL  string `yaml:"fga_api_url"  mapstructure:"fga_api_url"`
	FGAStoreID string `yaml:"fga_store_id" mapstructure:"fga_store_id"`
	FGAModelID string `yaml:"fga_model_id" mapstructure:"fga_model_id"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".authz"), nil
}

func loadConfig(path string) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("engine", "casbin")
	v.SetDefault("model_path", "")
	v.SetDefault("policy_path", "")
	v.SetDefault("fga_api_url", "http://localhost:8080")

	// Env overrides: AUTHZ_ENGINE, AUTHZ_MODEL_PATH, etc.
	v.SetEnvPrefix("AUTHZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Read file if it exists, otherwise return defaults without error
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	// flag overrides win over file and env
	if engineKind != "" {
		c.Engine = engineKind
	}
	if modelPath != "" {
		c.ModelPath = modelPath
	}
	if policyPath != "" {
		c.PolicyPath = policyPath
	}
	return &c, nil
}
