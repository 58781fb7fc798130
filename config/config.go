// Package config loads reader configuration from YAML and the environment.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Translate  TranslateConfig  `yaml:"translate"`
	Cache      CacheConfig      `yaml:"cache"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
	Analyze    AnalyzeConfig    `yaml:"analyze"`
}

// DictionaryConfig locates the dictionary files. KanjidicPath is optional;
// without it reports carry no furigana.
type DictionaryConfig struct {
	JMdictPath   string `yaml:"jmdict_path"   env:"DICT_JMDICT_PATH"   env-default:"./dict/JMdict_e.xml"`
	KanjidicPath string `yaml:"kanjidic_path" env:"DICT_KANJIDIC_PATH"`
}

// TranslateConfig points at a LibreTranslate-compatible service. An empty
// URL disables translation; fallbacks then show the placeholder.
type TranslateConfig struct {
	URL     string        `yaml:"url"     env:"TRANSLATE_URL"`
	Source  string        `yaml:"source"  env:"TRANSLATE_SOURCE"  env-default:"ja"`
	Target  string        `yaml:"target"  env:"TRANSLATE_TARGET"  env-default:"en"`
	Timeout time.Duration `yaml:"timeout" env:"TRANSLATE_TIMEOUT" env-default:"10s"`
	APIKey  string        `yaml:"api_key" env:"TRANSLATE_API_KEY"`
}

// CacheConfig bounds the in-process caches. With RedisAddr set,
// translations are shared through Redis instead.
type CacheConfig struct {
	LookupSize     int           `yaml:"lookup_size"     env:"CACHE_LOOKUP_SIZE"     env-default:"10000"`
	ParadigmSize   int           `yaml:"paradigm_size"   env:"CACHE_PARADIGM_SIZE"   env-default:"2048"`
	TranslationTTL time.Duration `yaml:"translation_ttl" env:"CACHE_TRANSLATION_TTL" env-default:"168h"`
	RedisAddr      string        `yaml:"redis_addr"      env:"CACHE_REDIS_ADDR"`
	RedisPassword  string        `yaml:"redis_password"  env:"CACHE_REDIS_PASSWORD"`
	RedisDB        int           `yaml:"redis_db"        env:"CACHE_REDIS_DB"        env-default:"0"`
}

// LogConfig holds logging settings. DumpDir, when set, receives one JSON
// file per analysed sentence.
type LogConfig struct {
	Level   string `yaml:"level"    env:"LOG_LEVEL"    env-default:"info"`
	Format  string `yaml:"format"   env:"LOG_FORMAT"   env-default:"text"`
	DumpDir string `yaml:"dump_dir" env:"LOG_DUMP_DIR"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr"            env:"SERVER_ADDR"            env-default:":8080"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS" env-default:"*"`
	ReadTimeout    time.Duration `yaml:"read_timeout"    env:"SERVER_READ_TIMEOUT"    env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout"   env:"SERVER_WRITE_TIMEOUT"   env-default:"60s"`
}

// AnalyzeConfig tunes per-sentence work.
type AnalyzeConfig struct {
	Workers int `yaml:"workers" env:"ANALYZE_WORKERS" env-default:"8"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)
