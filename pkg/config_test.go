package welearn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".welearnrc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[auth]
username = alice
password = s3cr=t

[courses]
ma1101
PH2201 = Physics II
cs3101
MA1101
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, Credentials{Username: "alice", Password: "s3cr=t"}, cfg.Credentials)
	assert.Equal(t, []string{"MA1101", "PH2201", "CS3101"}, cfg.Courses)
	assert.Equal(t, DefaultSettings(), cfg.Settings)
}

func TestLoadConfigKeepsCommentCharactersInValues(t *testing.T) {
	path := writeConfig(t, "# my welearn account\n[auth]\nusername = alice\n; inline characters belong to the value\npassword = pa#ss;word\n\n[courses]\nMA1101\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "pa#ss;word", cfg.Credentials.Password)
	assert.Equal(t, []string{"MA1101"}, cfg.Courses)
}

func TestLoadConfigSettingsSection(t *testing.T) {
	path := writeConfig(t, `
[auth]
username = alice
password = secret

[settings]
url = https://moodle.example.org
output = downloads
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, Settings{
		ServerURL: "https://moodle.example.org",
		CachePath: DefaultCachePath,
		OutputDir: "downloads",
	}, cfg.Settings)
	assert.Empty(t, cfg.Courses)
}

func TestConfigApplySettingsOverridesNonEmpty(t *testing.T) {
	cfg := &Config{Settings: Settings{ServerURL: "https://a", CachePath: "c1", OutputDir: "o1"}}

	require.NoError(t, cfg.ApplySettings(Settings{CachePath: "c2"}))

	assert.Equal(t, Settings{ServerURL: "https://a", CachePath: "c2", OutputDir: "o1"}, cfg.Settings)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
	}{
		{name: "missing_file", missing: true},
		{name: "no_auth_section", content: "[courses]\nMA1101\n"},
		{name: "no_username", content: "[auth]\npassword = x\n"},
		{name: "empty_password", content: "[auth]\nusername = alice\npassword =\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent")
			if !tt.missing {
				path = writeConfig(t, tt.content)
			}
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Equal(t, KindConfig, KindOf(err))
		})
	}
}
