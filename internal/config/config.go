package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultProfile        = "default"
	DefaultServiceBaseURL = "http://localhost:8000"
	DefaultDocumentID     = "f50e28300b77e78d0c047b45"
	DefaultWorkspaceID    = "7bc9dfac7226c7a02984cc3a"
	DefaultElementID      = "8b2be211d08ae2a28cf4a353"
)

const (
	envHome           = "CADCOPILOT_HOME"
	envServiceBaseURL = "CADCOPILOT_SERVICE_BASE_URL"
	envDocumentID     = "CADCOPILOT_DOCUMENT_ID"
	envWorkspaceID    = "CADCOPILOT_WORKSPACE_ID"
	envElementID      = "CADCOPILOT_ELEMENT_ID"
	envRequestTimeout = "CADCOPILOT_REQUEST_TIMEOUT"
	envLogFile        = "CADCOPILOT_LOG_FILE"
	envLogLevel       = "CADCOPILOT_LOG_LEVEL"
)

// Deployment identifies one recommendation service and the CAD document it
// analyzes.
type Deployment struct {
	ServiceBaseURL string        `yaml:"service_base_url"`
	DocumentID     string        `yaml:"document_id"`
	WorkspaceID    string        `yaml:"workspace_id"`
	ElementID      string        `yaml:"element_id"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"` // zero waits indefinitely
}

type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

type Config struct {
	Profiles      map[string]Deployment `yaml:"profiles"`
	ActiveProfile string                `yaml:"active_profile"`
	Log           LogConfig             `yaml:"log"`

	current *Deployment
	logging *LogConfig
	path    string
}

// DefaultDeployment returns the demo deployment.
func DefaultDeployment() Deployment {
	return Deployment{
		ServiceBaseURL: DefaultServiceBaseURL,
		DocumentID:     DefaultDocumentID,
		WorkspaceID:    DefaultWorkspaceID,
		ElementID:      DefaultElementID,
	}
}

func LoadConfig() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the config at configPath, creating a default file when none
// exists, and applies environment overrides to the active profile.
func LoadFrom(configPath string) (*Config, error) {
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.path = configPath

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	return config, nil
}

// Deployment returns the active deployment with overrides applied.
func (c *Config) Deployment() Deployment {
	if c.current == nil {
		return DefaultDeployment()
	}
	return *c.current
}

// Override replaces the active deployment for this process only; it is
// never written back by Save.
func (c *Config) Override(d Deployment) {
	c.current = &d
}

// UseProfile selects name as the active profile for this process.
func (c *Config) UseProfile(name string) error {
	profile, exists := c.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	c.current = &profile
	return c.applyEnv()
}

func (c *Config) IsValid() bool {
	return c.Deployment().Validate() == nil
}

// Path returns the config file location.
func Path() (string, error) {
	var configDir string

	// Use CADCOPILOT_HOME if set, otherwise use user's home directory
	if home := os.Getenv(envHome); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".cadcopilot", "config.yaml"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Deployment{
			DefaultProfile: DefaultDeployment(),
		},
		ActiveProfile: DefaultProfile,
		Log:           LogConfig{Level: "info"},
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		configPath, err = Path()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return errors.New("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile in name order so the choice is stable.
		names := c.ProfileNames()
		c.ActiveProfile = names[0]
		profile = c.Profiles[names[0]]
	}

	c.current = &profile
	return nil
}

func (c *Config) applyEnv() error {
	d := c.Deployment()
	if v := strings.TrimSpace(os.Getenv(envServiceBaseURL)); v != "" {
		d.ServiceBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envDocumentID)); v != "" {
		d.DocumentID = v
	}
	if v := strings.TrimSpace(os.Getenv(envWorkspaceID)); v != "" {
		d.WorkspaceID = v
	}
	if v := strings.TrimSpace(os.Getenv(envElementID)); v != "" {
		d.ElementID = v
	}
	if v := strings.TrimSpace(os.Getenv(envRequestTimeout)); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envRequestTimeout, err)
		}
		d.RequestTimeout = parsed
	}
	c.current = &d

	logCfg := c.Log
	if v := strings.TrimSpace(os.Getenv(envLogFile)); v != "" {
		logCfg.File = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		logCfg.Level = v
	}
	c.logging = &logCfg
	return nil
}

// Logging returns the log settings with environment overrides applied.
// Like Deployment, the overrides are never written back by Save.
func (c *Config) Logging() LogConfig {
	if c.logging == nil {
		return c.Log
	}
	return *c.logging
}

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the deployment can be used to build requests.
func (d Deployment) Validate() error {
	trimmed := strings.TrimSpace(d.ServiceBaseURL)
	if trimmed == "" {
		return errors.New("validate deployment: service_base_url is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("validate deployment: parse service_base_url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("validate deployment: service_base_url must include scheme and host")
	}
	if strings.TrimSpace(d.DocumentID) == "" {
		return errors.New("validate deployment: document_id is required")
	}
	if strings.TrimSpace(d.WorkspaceID) == "" {
		return errors.New("validate deployment: workspace_id is required")
	}
	if strings.TrimSpace(d.ElementID) == "" {
		return errors.New("validate deployment: element_id is required")
	}
	if d.RequestTimeout < 0 {
		return errors.New("validate deployment: request_timeout must be >= 0")
	}
	return nil
}
