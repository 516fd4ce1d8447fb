package config

import (
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dunc/pkg/errors"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "DUNC_"

// Config is the tool configuration.
type Config struct {
	Project ProjectConfig `koanf:"project"`
	Install InstallConfig `koanf:"install"`
	Output  OutputConfig  `koanf:"output"`
	Logging LoggingConfig `koanf:"logging"`
}

// ProjectConfig controls how project manifests are located.
type ProjectConfig struct {
	ManifestNames []string `koanf:"manifest_names"`
}

// InstallConfig controls file installation.
type InstallConfig struct {
	DirPerm          fs.FileMode `koanf:"dir_perm"`
	SymlinkLocalOnly bool        `koanf:"symlink_local_only"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Format string `koanf:"format"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	File bool `koanf:"file"`
}

// Default returns the embedded defaults without reading any file or the
// environment.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load builds the configuration from defaults, the user file and the
// environment. A missing userFile is skipped unless required is set.
func Load(userFile string, required bool) (*Config, error) {
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Load user config if it exists
	if userFile != "" {
		if _, err := os.Stat(userFile); err == nil {
			if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userFile).
					WithDetail("path", userFile)
			}
		} else if required {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", userFile).
				WithDetail("path", userFile)
		}
	}

	// 3. Load env vars
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps DUNC_INSTALL_DIR_PERM to install.dir_perm. Empty values are
// dropped so an exported-but-empty variable does not clear a default.
func envKey(s string) string {
	if os.Getenv(s) == "" {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				stringToFileModeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// stringToFileModeHookFunc decodes octal strings such as "0755" into
// fs.FileMode values.
func stringToFileModeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(fs.FileMode(0)) {
			return data, nil
		}
		mode, err := strconv.ParseUint(data.(string), 8, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid permission bits %q: %w", data, err)
		}
		return fs.FileMode(mode), nil
	}
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case "auto", "term", "terminal", "text", "plain":
	default:
		return errors.Newf(errors.ErrConfigParse, "unknown output format: %s", c.Output.Format)
	}
	if c.Install.DirPerm&0700 != 0700 {
		return errors.Newf(errors.ErrConfigParse, "install.dir_perm %#o must grant the owner rwx", c.Install.DirPerm)
	}
	if len(c.Project.ManifestNames) == 0 {
		return errors.New(errors.ErrConfigParse, "project.manifest_names must not be empty")
	}
	return nil
}
