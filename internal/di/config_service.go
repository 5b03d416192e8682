package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/majidmanzarpour/workspace-cli/internal/config"
)

// ConfigService wraps the loaded and validated configuration.
type ConfigService struct {
	Config *config.Config
	Path   string
}

// NewConfig loads the configuration from the config path.
// An empty path yields a zero-value config so the CLI works without a file.
func NewConfig(i do.Injector) (*ConfigService, error) {
	path := do.MustInvokeNamed[string](i, ConfigPathKey)

	if path == "" {
		return &ConfigService{Config: &config.Config{}}, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &ConfigService{
		Config: cfg,
		Path:   path,
	}, nil
}
