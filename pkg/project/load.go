package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dunc/pkg/errors"
)

// Locate finds the manifest for a package. A project file that is itself a
// TOML or YAML manifest wins; otherwise the first of names found in the
// project file's directory (or sourcePath when there is no project file)
// is used.
func Locate(projectFile, sourcePath string, names []string) (string, error) {
	if projectFile != "" && isManifestFile(projectFile) {
		if _, err := os.Stat(projectFile); err != nil {
			return "", errors.Wrapf(err, errors.ErrProjectNotFound, "project file '%s' does not exist", projectFile).
				WithDetail("path", projectFile)
		}
		return projectFile, nil
	}

	dir := sourcePath
	if projectFile != "" {
		dir = filepath.Dir(projectFile)
	}

	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", errors.Newf(errors.ErrProjectNotFound, "no manifest (%s) found in '%s'", strings.Join(names, ", "), dir).
		WithDetail("dir", dir)
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	raw, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	applyRuleDefaults(raw)

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(raw, ""), nil); err != nil {
		return nil, errors.Wrapf(err, errors.ErrProjectParse, "failed to load manifest %s", path)
	}

	var m Manifest
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &m,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &m, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrProjectParse, "failed to decode manifest %s", path).
			WithDetail("path", path)
	}
	m.Path = path

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func readRaw(path string) (map[string]interface{}, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrProjectNotFound, "failed to read manifest %s", path).
				WithDetail("path", path)
		}
		raw := map[string]interface{}{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrapf(err, errors.ErrProjectParse, "failed to parse manifest %s", path).
				WithDetail("path", path)
		}
		return raw, nil
	default:
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrProjectNotFound, "failed to read manifest %s", path).
				WithDetail("path", path)
		}
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrProjectParse, "failed to parse manifest %s", path).
				WithDetail("path", path)
		}
		return k.Raw(), nil
	}
}

// applyRuleDefaults makes rules recursive unless they say otherwise.
func applyRuleDefaults(raw map[string]interface{}) {
	setDefault := func(rule map[string]interface{}) {
		if _, ok := rule["recursive"]; !ok {
			rule["recursive"] = true
		}
	}

	switch rules := raw["install"].(type) {
	case []interface{}:
		for _, r := range rules {
			if rule, ok := r.(map[string]interface{}); ok {
				setDefault(rule)
			}
		}
	case []map[string]interface{}:
		for _, rule := range rules {
			setDefault(rule)
		}
	}
}
