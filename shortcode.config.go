package shortcode

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML form of the engine options.
//
//	max_depth: 32
//	substitution: span
//	match_timeout: 250ms
//	grammar_cache_ttl: 1h
//	sanitize: ugc
//
// Omitted keys keep their defaults. Unknown keys are rejected.
type Config struct {
	MaxDepth        int    `yaml:"max_depth"`
	Substitution    string `yaml:"substitution"`
	MatchTimeout    string `yaml:"match_timeout"`
	GrammarCacheTTL string `yaml:"grammar_cache_ttl"`
	Sanitize        string `yaml:"sanitize"`
}

// ParseConfig decodes and validates a YAML configuration document.
func ParseConfig(data []byte) (*Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigReadError("", ErrMsgConfigParse, err)
	}

	if _, err := cfg.Options(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigReadError(path, ErrMsgConfigRead, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options converts the configuration into engine options.
func (c *Config) Options() ([]Option, error) {
	if c == nil {
		return nil, nil
	}

	var opts []Option

	if c.MaxDepth < 0 {
		return nil, NewConfigError(FieldMaxDepth, strconv.Itoa(c.MaxDepth), ErrMsgInvalidMaxDepth)
	}
	if c.MaxDepth > 0 {
		opts = append(opts, WithMaxDepth(c.MaxDepth))
	}

	if c.Substitution != "" {
		mode, err := ParseSubstitutionMode(c.Substitution)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithSubstitutionMode(mode))
	}

	if c.MatchTimeout != "" {
		d, err := parseDuration(FieldTimeout, c.MatchTimeout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMatchTimeout(d))
	}

	if c.GrammarCacheTTL != "" {
		d, err := parseDuration(FieldCacheTTL, c.GrammarCacheTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithGrammarCache(d))
	}

	policy, err := SanitizePolicy(c.Sanitize)
	if err != nil {
		return nil, err
	}
	if policy != nil {
		opts = append(opts, WithOutputPolicy(policy))
	}

	return opts, nil
}

// ParseSubstitutionMode maps "global" and "span" to their modes.
func ParseSubstitutionMode(name string) (SubstitutionMode, error) {
	switch name {
	case SubstituteGlobal.String():
		return SubstituteGlobal, nil
	case SubstituteSpan.String():
		return SubstituteSpan, nil
	default:
		return SubstituteGlobal, NewConfigError(FieldMode, name, ErrMsgInvalidMode)
	}
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, NewConfigError(field, value, ErrMsgInvalidDuration)
	}
	return d, nil
}
