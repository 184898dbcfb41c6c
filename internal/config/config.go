package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/viper"

	"github.com/ilham-ap/parex/internal/util"
)

const (
	defaultConfigName = ".parex"
	defaultConfigDir  = ".parex"
)

// Default values applied to missing configuration fields
const (
	DefaultWorkers      = 4
	DefaultTimeout      = 30 * time.Second
	DefaultOutputFormat = "table"
	DefaultShell        = "/bin/sh"
)

// Manager handles parex configuration
type Manager struct {
	configPath string
	config     *Config
	viper      *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		viper:      viper.New(),
		config:     &Config{},
	}
}

// Load loads the parex configuration from file
func (m *Manager) Load() (*Config, error) {
	// Set up config file path
	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	} else {
		// Try multiple locations
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		// Check ~/.parex/config.yaml
		m.viper.AddConfigPath(filepath.Join(home, defaultConfigDir))
		// Check ~/.parex.yaml
		m.viper.AddConfigPath(home)
		m.viper.SetConfigName(defaultConfigName)
		m.viper.SetConfigType("yaml")
	}

	// Set environment variable support
	m.viper.SetEnvPrefix("PAREX")
	m.viper.AutomaticEnv()

	// Initialize config to ensure defaults are set even for empty configs
	m.config = &Config{}

	// Read config file
	if err := m.viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// File doesn't exist, apply defaults and return
		m.applyDefaults()
		return m.config, nil
	}

	// Unmarshal into config struct
	if err := m.viper.Unmarshal(m.config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	m.applyDefaults()

	if err := m.validate(); err != nil {
		return nil, err
	}

	return m.config, nil
}

// Save saves the current configuration to file
func (m *Manager) Save() error {
	if m.configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		configDir := filepath.Join(home, defaultConfigDir)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		m.configPath = filepath.Join(configDir, "config.yaml")
	}

	// Ensure directory exists
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config to file
	if err := m.viper.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// GetJob returns the configuration for a named job
func (m *Manager) GetJob(name string) (*JobConfig, bool) {
	if m.config.Jobs == nil {
		return nil, false
	}

	job, ok := m.config.Jobs[name]
	return &job, ok
}

// SetJob sets or updates a named job preset
func (m *Manager) SetJob(name string, job JobConfig) {
	if m.config.Jobs == nil {
		m.config.Jobs = make(map[string]JobConfig)
	}

	m.config.Jobs[name] = job
	m.viper.Set("jobs", m.config.Jobs)
}

// RemoveJob removes a named job preset
func (m *Manager) RemoveJob(name string) {
	if m.config.Jobs == nil {
		return
	}

	delete(m.config.Jobs, name)
	m.viper.Set("jobs", m.config.Jobs)
}

// JobNames returns the configured job names in sorted order
func (m *Manager) JobNames() []string {
	if m.config.Jobs == nil {
		return nil
	}

	names := make([]string, 0, len(m.config.Jobs))
	for name := range m.config.Jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyDefaults sets default values for configuration
func (m *Manager) applyDefaults() {
	if m.config == nil {
		return
	}

	if m.config.Defaults.Workers == 0 {
		m.config.Defaults.Workers = DefaultWorkers
	}

	if m.config.Defaults.Timeout == 0 {
		m.config.Defaults.Timeout = DefaultTimeout
	}

	if m.config.Defaults.OutputFormat == "" {
		m.config.Defaults.OutputFormat = DefaultOutputFormat
	}

	if m.config.Defaults.Shell == "" {
		m.config.Defaults.Shell = DefaultShell
	}
}

// validate rejects configurations that cannot be executed
func (m *Manager) validate() error {
	if m.config.Defaults.Workers < 0 {
		return util.NewValidationError("defaults.workers", m.config.Defaults.Workers, "must not be negative")
	}

	for name, job := range m.config.Jobs {
		if len(job.Commands) == 0 {
			return util.NewValidationError(
				fmt.Sprintf("jobs.%s.commands", name), nil, "job must define at least one command")
		}
		if job.Workers < 0 {
			return util.NewValidationError(
				fmt.Sprintf("jobs.%s.workers", name), job.Workers, "must not be negative")
		}
	}

	return nil
}
