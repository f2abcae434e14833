package welearn

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/ini.v1"
)

// DefaultConfigName is the name of the config file in the user's home directory
const DefaultConfigName = ".welearnrc"

// Credentials used to obtain a web service token
type Credentials struct {
	Username string
	Password string
}

// Settings that can come from the [settings] section or the command line
type Settings struct {
	ServerURL string
	CachePath string
	OutputDir string
}

// DefaultSettings are used for every setting neither the file nor the flags set
func DefaultSettings() Settings {
	return Settings{
		ServerURL: DefaultBaseURL,
		CachePath: DefaultCachePath,
		OutputDir: ".",
	}
}

// Config is the content of a .welearnrc file
type Config struct {
	Credentials Credentials
	// Courses are the configured course short-names, upper-cased, in file order
	Courses  []string
	Settings Settings
}

// DefaultConfigPath returns ~/.welearnrc
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", newError(KindConfig, "locate config", err)
	}
	return filepath.Join(home, DefaultConfigName), nil
}

// LoadConfig reads the INI config file at path
func LoadConfig(path string) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:    true,
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, newError(KindConfig, "read config", err)
	}

	auth, err := file.GetSection("auth")
	if err != nil {
		return nil, newError(KindConfig, "read config", fmt.Errorf("%s: missing [auth] section", path))
	}
	username, err := requiredKey(auth, "username")
	if err != nil {
		return nil, newError(KindConfig, "read config", fmt.Errorf("%s: %w", path, err))
	}
	password, err := requiredKey(auth, "password")
	if err != nil {
		return nil, newError(KindConfig, "read config", fmt.Errorf("%s: %w", path, err))
	}

	cfg := &Config{
		Credentials: Credentials{Username: username, Password: password},
		Settings:    DefaultSettings(),
	}

	if courses, err := file.GetSection("courses"); err == nil {
		seen := make(map[string]struct{})
		for _, key := range courses.KeyStrings() {
			name := normalizeCourse(key)
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			cfg.Courses = append(cfg.Courses, name)
		}
	}

	if section, err := file.GetSection("settings"); err == nil {
		fromFile := Settings{
			ServerURL: section.Key("url").String(),
			CachePath: section.Key("cache").String(),
			OutputDir: section.Key("output").String(),
		}
		if err := cfg.ApplySettings(fromFile); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ApplySettings overrides the current settings with every non-empty field of s
func (c *Config) ApplySettings(s Settings) error {
	if err := mergo.Merge(&c.Settings, s, mergo.WithOverride); err != nil {
		return newError(KindConfig, "merge settings", err)
	}
	return nil
}

func requiredKey(section *ini.Section, name string) (string, error) {
	if !section.HasKey(name) {
		return "", fmt.Errorf("missing %q in [%s]", name, section.Name())
	}
	value := strings.TrimSpace(section.Key(name).String())
	if value == "" {
		return "", errors.New(name + " is empty in [" + section.Name() + "]")
	}
	return value, nil
}
