package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config dir and cwd at fresh temp dirs and clears
// every variable LoadAll reads.
func isolate(t *testing.T) (globalDir, localDir string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	for _, name := range []string{EnvAdminURL, EnvProxyURL, EnvTimeout, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvJSON, EnvConfig} {
		t.Setenv(name, "")
	}

	globalDir = filepath.Join(home, GlobalConfigDir)
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	localDir = t.TempDir()
	t.Chdir(localDir)
	return globalDir, localDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	assert.Equal(t, DefaultAdminURL, cfg.AdminURL)
	assert.Equal(t, DefaultProxyURL, cfg.ProxyURL)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.False(t, cfg.JSON)
	assert.Equal(t, SourceDefault, cfg.Sources["adminUrl"])
}

func TestLoadAll_Precedence(t *testing.T) {
	globalDir, localDir := isolate(t)

	writeFile(t, filepath.Join(globalDir, "config.yaml"), `
adminUrl: http://global:8888
proxyUrl: http://global:8500
timeout: 3s
logLevel: info
json: true
`)
	writeFile(t, filepath.Join(localDir, ".hfctl.yaml"), `
adminUrl: http://local:8888
timeout: 5s
json: false
`)
	t.Setenv(EnvTimeout, "7s")

	cfg, err := LoadAll()
	require.NoError(t, err)

	assert.Equal(t, "http://local:8888", cfg.AdminURL)
	assert.Equal(t, SourceLocal, cfg.Sources["adminUrl"])
	assert.Equal(t, "http://global:8500", cfg.ProxyURL)
	assert.Equal(t, SourceGlobal, cfg.Sources["proxyUrl"])
	assert.Equal(t, 7*time.Second, cfg.Timeout)
	assert.Equal(t, SourceEnv, cfg.Sources["timeout"])
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.JSON, "explicit false in the local file overrides global true")
	assert.Equal(t, SourceLocal, cfg.Sources["json"])
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, SourceDefault, cfg.Sources["logFormat"])
}

func TestResolve_FlagsWin(t *testing.T) {
	_, localDir := isolate(t)
	writeFile(t, filepath.Join(localDir, ".hfctl.yaml"), "adminUrl: http://local:8888\n")
	t.Setenv(EnvAdminURL, "http://env:8888")

	cfg, err := Resolve(&CLIConfig{AdminURL: "http://flag:8888", JSON: true})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:8888", cfg.AdminURL)
	assert.Equal(t, SourceFlag, cfg.Sources["adminUrl"])
	assert.True(t, cfg.JSON)
}

func TestResolve_EnvOverFiles(t *testing.T) {
	_, localDir := isolate(t)
	writeFile(t, filepath.Join(localDir, ".hfctl.yaml"), "adminUrl: http://local:8888\n")
	t.Setenv(EnvAdminURL, "http://env:8888")
	t.Setenv(EnvJSON, "yes")

	cfg, err := Resolve(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://env:8888", cfg.AdminURL)
	assert.Equal(t, SourceEnv, cfg.Sources["adminUrl"])
	assert.True(t, cfg.JSON)
}

func TestFindLocalConfig_ExplicitPath(t *testing.T) {
	isolate(t)
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "logFormat: json\n")
	t.Setenv(EnvConfig, explicit)

	cfg, err := LoadAll()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, SourceLocal, cfg.Sources["logFormat"])
}

func TestLoadAll_NoFiles(t *testing.T) {
	isolate(t)

	cfg, err := LoadAll()
	require.NoError(t, err)
	assert.Equal(t, NewDefault().AdminURL, cfg.AdminURL)
}

func TestLoadAll_BadFile(t *testing.T) {
	_, localDir := isolate(t)
	path := filepath.Join(localDir, ".hfctl.yaml")
	writeFile(t, path, "adminUrl: [unclosed\n")

	_, err := LoadAll()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	assert.Equal(t, path, cfgErr.Path)
}

func TestLoadAll_BadTimeout(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTimeout, "soon")

	_, err := LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTimeout)
}

func TestLoadConfigFile_WrongType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "adminUrl: http://x\ntimeout: later\n")

	_, err := LoadConfigFile(path)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	assert.Equal(t, 2, cfgErr.Line)
}

func TestMergeConfig_BoolWithoutSetFields(t *testing.T) {
	target := NewDefault()
	target.JSON = true

	MergeConfig(target, &CLIConfig{}, SourceFlag)
	assert.True(t, target.JSON, "false without SetFields is not an override")

	MergeConfig(target, &CLIConfig{SetFields: map[string]bool{"json": true}}, SourceFlag)
	assert.False(t, target.JSON)
}

func TestLogSource_Layers(t *testing.T) {
	globalDir, localDir := isolate(t)
	writeFile(t, filepath.Join(globalDir, "config.yaml"), "logSource: true\n")

	cfg, err := LoadAll()
	require.NoError(t, err)
	assert.True(t, cfg.LogSource)
	assert.Equal(t, SourceGlobal, cfg.Sources["logSource"])

	writeFile(t, filepath.Join(localDir, ".hfctl.yaml"), "logSource: false\n")
	cfg, err = LoadAll()
	require.NoError(t, err)
	assert.False(t, cfg.LogSource, "explicit false in the local file overrides the global true")
	assert.Equal(t, SourceLocal, cfg.Sources["logSource"])

	t.Setenv(EnvLogSource, "1")
	cfg, err = LoadAll()
	require.NoError(t, err)
	assert.True(t, cfg.LogSource)
	assert.Equal(t, SourceEnv, cfg.Sources["logSource"])
}
