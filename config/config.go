// Package config provides the yaml-based application configuration.
package config

import (
	"fmt"
	"os"

	"github.com/tldsplit/tldsplit/log"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v2"
)

// Config is the main application configuration.
type Config struct {
	SuffixList SuffixListConfig `yaml:"suffixList"`
	Log        log.Config       `yaml:"log"`
	Prometheus PrometheusConfig `yaml:"prometheus"`
	HTTPHost   string           `yaml:"httpHost" default:"0.0.0.0"`
	HTTPPort   uint16           `yaml:"httpPort" default:"4100"`
}

// defaultListURL is the canonical Public Suffix List location.
const defaultListURL = "https://publicsuffix.org/list/public_suffix_list.dat"

// SuffixListConfig configures the rule source and the extractor.
type SuffixListConfig struct {
	// Source of the raw rule text: URL, file path or inline block.
	// Defaults to the canonical Public Suffix List URL.
	Source BytesSource `yaml:"source"`

	// CacheFile keeps the last successfully compiled raw list on disk,
	// as startup fallback when the source is unreachable.
	CacheFile string `yaml:"cacheFile" default:""`

	// RefreshPeriod between automatic reloads. Zero disables them.
	RefreshPeriod Duration `yaml:"refreshPeriod" default:"24h"`

	// IncludePrivate makes private-section rules eligible matches.
	IncludePrivate bool `yaml:"includePrivate" default:"false"`

	// CacheSize of the extract result LRU cache. Zero disables it.
	CacheSize int `yaml:"cacheSize" default:"4096"`

	Downloads DownloadsConfig `yaml:"downloads"`
}

// SetDefaults implements `defaults.Setter`: struct-kind fields cannot
// carry a `default:` tag, so the source default is set here.
func (c *SuffixListConfig) SetDefaults() {
	if c.Source == (BytesSource{}) {
		c.Source = NewBytesSource(defaultListURL)
	}
}

// DownloadsConfig configures download behavior of the rule source.
type DownloadsConfig struct {
	Timeout  Duration `yaml:"timeout" default:"5s"`
	Attempts uint     `yaml:"attempts" default:"3"`
	Cooldown Duration `yaml:"cooldown" default:"500ms"`
}

// PrometheusConfig contains the config values for prometheus
type PrometheusConfig struct {
	Enable bool   `yaml:"enable" default:"false"`
	Path   string `yaml:"path" default:"/metrics"`
}

// LoadConfig reads the config file. If mandatory is false, a missing
// file yields the default configuration.
func LoadConfig(path string, mandatory bool) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("can't apply default values: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mandatory {
			return cfg, nil
		}

		return nil, fmt.Errorf("can't read config file: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("wrong file structure: %w", err)
	}

	return cfg, nil
}
