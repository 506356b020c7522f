package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/docweave/pkg/errors"
	"github.com/arthur-debert/docweave/pkg/flavor"
	"github.com/arthur-debert/docweave/pkg/logging"
)

// EnvPrefix starts every environment variable the loader reads. Levels are
// separated by a double underscore: DOCWEAVE_MARKDOWN__FLAVOR.
const EnvPrefix = "DOCWEAVE_"

// AppName is the directory name used under the XDG config home.
const AppName = "docweave"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "raw bytes provider requires a parser")
}

// LoadOptions selects the layers Load reads.
type LoadOptions struct {
	// Path is an explicit config file. A missing explicit file is an error.
	Path string
	// UserDir overrides the directory searched for the user config file.
	// Empty means $XDG_CONFIG_HOME/docweave.
	UserDir string
	// SkipUser disables the user config file.
	SkipUser bool
	// SkipEnv disables environment variables.
	SkipEnv bool
	// Overrides are applied last, keyed by dotted path ("markdown.flavor").
	Overrides map[string]interface{}
}

// UserConfigPaths returns the candidate user config files in search order.
func UserConfigPaths(dir string) []string {
	if dir == "" {
		dir = filepath.Join(xdg.ConfigHome, AppName)
	}
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
	}
}

// Load builds a Config from the layers in opts and validates it.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User config file, first match wins
	if !opts.SkipUser {
		for _, path := range UserConfigPaths(opts.UserDir) {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := loadFile(k, path); err != nil {
				return nil, err
			}
			logger.Debug().Str("path", path).Msg("loaded user config")
			break
		}
	}

	// 3. Explicit file
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file not found: %s", opts.Path).
				WithDetail("path", opts.Path)
		}
		if err := loadFile(k, opts.Path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.Path).Msg("loaded config file")
	}

	// 4. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
		}
	}

	// 5. Programmatic overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps DOCWEAVE_MARKDOWN__LIST_INDENT_WIDTH to
// markdown.list_indent_width.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := Default()
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				flavorHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.propagate()
	return cfg, nil
}

// flavorHookFunc resolves flavor aliases such as "github" while decoding.
// Unknown names pass through unchanged and are reported by Validate.
func flavorHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(flavor.Flavor("")) {
			return data, nil
		}
		if fl, err := flavor.Parse(reflect.ValueOf(data).String()); err == nil {
			return fl, nil
		}
		return data, nil
	}
}
