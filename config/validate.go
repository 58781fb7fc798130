package config

import (
	"fmt"
	"slices"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Dictionary.JMdictPath == "" {
		return fmt.Errorf("dictionary.jmdict_path is required")
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}
	if c.Cache.LookupSize <= 0 {
		return fmt.Errorf("cache.lookup_size must be > 0 (got %d)", c.Cache.LookupSize)
	}
	if c.Cache.ParadigmSize < 0 {
		return fmt.Errorf("cache.paradigm_size must be >= 0 (got %d)", c.Cache.ParadigmSize)
	}
	if c.Analyze.Workers <= 0 {
		return fmt.Errorf("analyze.workers must be > 0 (got %d)", c.Analyze.Workers)
	}
	return nil
}
