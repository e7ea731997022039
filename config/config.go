package config

//go:generate go run ../tools/schema-generator -out ../schema/definitions

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/familiar/errors"
	"github.com/grovetools/familiar/pkg/paths"
	"github.com/grovetools/familiar/schema"
	"github.com/grovetools/familiar/util/pathutil"
)

// EnvConfig names an alternative configuration file when --config is absent.
const EnvConfig = "FAMILIAR_CONFIG"

// Format is the syntax of a configuration file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the syntax from the file extension. Anything other than
// .yml or .yaml is read as TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ResolvePath returns the absolute configuration path: flagValue if set,
// then $FAMILIAR_CONFIG, then the XDG default. "~" and $VARS are expanded
// through getenv, which defaults to os.Getenv.
func ResolvePath(flagValue string, getenv func(string) string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	path := flagValue
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path == "" {
		path = paths.DefaultConfigFile(getenv)
	}
	if path == "" {
		return "", errors.EnvironmentMissing("HOME")
	}

	expanded, err := pathutil.Expand(path, getenv)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEnvironment, "failed to expand config path").
			WithDetail("path", path)
	}
	return expanded, nil
}

// Load reads and parses a familiar configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytes(data, FormatFor(path))
	if err != nil {
		if e, ok := errors.As(err); ok {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFromBytes parses a configuration document. The document's shape is
// checked against the schema reflected from Config before it is decoded.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	var raw map[string]interface{}
	if err := decode(data, format, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("failed to parse %s configuration", strings.ToUpper(string(format))))
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	validator, err := getValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	var cfg Config
	if err := decode(data, format, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("failed to parse %s configuration", strings.ToUpper(string(format))))
	}

	plugins, err := decodePlugins(cfg.RawPlugins)
	if err != nil {
		return nil, err
	}
	cfg.Plugins = plugins

	cfg.SetDefaults()
	return &cfg, nil
}

// Schema returns the JSON Schema configuration files are checked against.
func Schema() ([]byte, error) {
	validator, err := getValidator()
	if err != nil {
		return nil, err
	}
	return validator.JSON(), nil
}

var (
	validatorOnce   sync.Once
	cachedValidator *schema.Validator
	validatorErr    error
)

func getValidator() (*schema.Validator, error) {
	validatorOnce.Do(func() {
		cachedValidator, validatorErr = schema.NewValidator("familiar.schema.json", &Config{})
	})
	return cachedValidator, validatorErr
}

func decode(data []byte, format Format, target interface{}) error {
	if format == FormatYAML {
		return yaml.Unmarshal(data, target)
	}
	return toml.NewDecoder(bytes.NewReader(data)).Decode(target)
}

// decodePlugins maps the generic [[plugins]] tables onto PluginConfig.
func decodePlugins(raw []map[string]interface{}) ([]PluginConfig, error) {
	plugins := make([]PluginConfig, 0, len(raw))
	for i, table := range raw {
		var plugin PluginConfig
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &plugin,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create mapstructure decoder")
		}
		if err := decoder.Decode(table); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("failed to decode plugin %d", i)).
				WithDetail("plugin", i)
		}
		if plugin.Name == "" {
			return nil, errors.ConfigInvalid(fmt.Sprintf("plugin %d has no name", i)).
				WithDetail("plugin", i)
		}
		plugins = append(plugins, plugin)
	}
	return plugins, nil
}
