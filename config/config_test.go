package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
dictionary:
  jmdict_path: "/data/JMdict_e.gz"
  kanjidic_path: "/data/kanjidic2.xml"
translate:
  url: "http://localhost:5000/translate"
  timeout: "3s"
cache:
  lookup_size: 500
  redis_addr: "localhost:6379"
log:
  level: "debug"
  format: "json"
server:
  addr: ":9090"
  allowed_origins: ["http://localhost:3000"]
analyze:
  workers: 2
`

func TestLoadYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, validYAML))
	t.Setenv("ANALYZE_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/JMdict_e.gz", cfg.Dictionary.JMdictPath)
	assert.Equal(t, 3*time.Second, cfg.Translate.Timeout)
	assert.Equal(t, "ja", cfg.Translate.Source)
	assert.Equal(t, 500, cfg.Cache.LookupSize)
	assert.Equal(t, 2048, cfg.Cache.ParadigmSize)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	// ENV overrides YAML
	assert.Equal(t, 4, cfg.Analyze.Workers)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Dictionary: DictionaryConfig{JMdictPath: "JMdict_e"},
			Log:        LogConfig{Level: "info", Format: "text"},
			Cache:      CacheConfig{LookupSize: 1},
			Analyze:    AnalyzeConfig{Workers: 1},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"no jmdict", func(c *Config) { c.Dictionary.JMdictPath = "" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"zero lookup cache", func(c *Config) { c.Cache.LookupSize = 0 }, false},
		{"zero workers", func(c *Config) { c.Analyze.Workers = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
