package config

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Marshal encodes the configuration as toml, json, or yaml.
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "toml":
		b, err := toml.Marshal(c)
		return b, errors.Wrap(err, "failed to marshal config to TOML")
	case "json":
		b, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to JSON")
		}
		return append(b, '\n'), nil
	case "yaml":
		b, err := yaml.Marshal(c)
		return b, errors.Wrap(err, "failed to marshal config to YAML")
	default:
		return nil, errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
}
