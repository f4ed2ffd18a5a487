// Package configuration implements the reading of the optional KEY=VALUE
// configuration file into the application settings.
package configuration

import (
	"fmt"
	"strconv"
)

const (
	KeyCacheDir     = "cacheDir"
	KeyMaxPath      = "maxPath"
	KeyFilter       = "filter"
	KeyForceExtract = "forceExtract"
	KeyVerifyWrites = "verifyWrites"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Config holds the settings that can be read from a configuration file. Any
// of them can be overridden from the command-line.
type Config struct {
	CacheDir     string
	MaxPath      int
	Filter       string
	ForceExtract bool
	VerifyWrites bool
}

// DefaultConfig returns a pointer to a [Config] holding the defaults.
func DefaultConfig() *Config {
	return &Config{
		VerifyWrites: true,
	}
}

// Handler is the principal implementation for the configuration services.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// Load reads the given configuration files over the defaults. Without any
// filenames the defaults are returned as they are.
func (c *Handler) Load(filenames ...string) (*Config, error) {
	config := DefaultConfig()

	if len(filenames) == 0 {
		return config, nil
	}

	envMap, err := c.ReadGeneric(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config-load) %w", err)
	}

	if value := c.MapKeyToString(envMap, KeyCacheDir); value != "" {
		config.CacheDir = value
	}

	if value := c.MapKeyToString(envMap, KeyFilter); value != "" {
		config.Filter = value
	}

	if _, exists := envMap[KeyMaxPath]; exists {
		maxPath := c.MapKeyToInt(envMap, KeyMaxPath)
		if maxPath <= 0 {
			return nil, fmt.Errorf("(config-load) %w: %s=%q", ErrInvalidValue, KeyMaxPath, envMap[KeyMaxPath])
		}
		config.MaxPath = maxPath
	}

	for key, target := range map[string]*bool{
		KeyForceExtract: &config.ForceExtract,
		KeyVerifyWrites: &config.VerifyWrites,
	} {
		if _, exists := envMap[key]; !exists {
			continue
		}

		value, ok := c.MapKeyToBool(envMap, key)
		if !ok {
			return nil, fmt.Errorf("(config-load) %w: %s=%q", ErrInvalidValue, key, envMap[key])
		}
		*target = value
	}

	return config, nil
}

func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.GenericHandler.Read(filenames...)
}

func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToBool returns the boolean value of a key and whether it was a valid
// boolean at all.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string) (bool, bool) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return false, false
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}

	return boolValue, true
}
