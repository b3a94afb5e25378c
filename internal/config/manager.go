package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/stratohq/strato/internal/constants"
	"github.com/stratohq/strato/internal/utils"
	"github.com/stratohq/strato/pkg/models"
)

type ConfigManager struct {
	configPath string
	config     *models.GlobalConfig
}

// NewConfigManager loads config.toml from dir, or from ~/.strato when dir
// is empty.
func NewConfigManager(dir string) (*ConfigManager, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".strato")
	}

	cm := &ConfigManager{
		configPath: filepath.Join(dir, "config.toml"),
	}

	if err := cm.Load(); err != nil {
		if os.IsNotExist(err) {
			cm.config = &models.GlobalConfig{}
			return cm, nil
		}
		return nil, err
	}

	return cm, nil
}

func (cm *ConfigManager) Load() error {
	if _, err := os.Stat(cm.configPath); os.IsNotExist(err) {
		return err
	}

	var config models.GlobalConfig
	if _, err := toml.DecodeFile(cm.configPath, &config); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	cm.config = &config
	return nil
}

func (cm *ConfigManager) Save() error {
	stratoDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(stratoDir, 0700); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", stratoDir, err)
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cm.config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// config holds the API token, keep it out of other users' reach
	if err := utils.AtomicWriteFile(cm.configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cm *ConfigManager) GetConfig() *models.GlobalConfig {
	return cm.config
}

// Token resolves the API token: explicit flag, then environment, then the
// stored config.
func (cm *ConfigManager) Token(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("STRATO_TOKEN"); env != "" {
		return env
	}
	return cm.config.Token
}

// APIURL resolves the API base URL: environment, then the stored config,
// then the default.
func (cm *ConfigManager) APIURL() string {
	if env := os.Getenv("STRATO_API_URL"); env != "" {
		return env
	}
	if cm.config.APIURL != "" {
		return cm.config.APIURL
	}
	return constants.DefaultAPIURL
}
