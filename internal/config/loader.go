package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "SQLCLAUSE_"

// FileNames are the config file names searched in the working directory.
var FileNames = []string{"sqlclause.yaml", "sqlclause.yml"}

// nested keys whose environment form uses "_" where koanf expects ".".
var nested = []string{"ignore_fields_without_directive"}

// findFile returns the config file to use.
// Priority: explicit path > sqlclause.yaml > sqlclause.yml
func findFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range FileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads the configuration from defaults, the config file, environment
// variables and flags. Only flags that were set on the command line are
// considered. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"index":                                 DefaultIndex,
		"ignore_none":                           true,
		"ignore_fields_without_directive.where": true,
		"ignore_fields_without_directive.set":   true,
		"ignore_set_and_where_conflict":         false,
		"format":                                DefaultFormat,
		"out":                                   DefaultOut,
		"package":                               DefaultPackage,
		"verbose":                               false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file
	used := findFile(path)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", used, err)
		}
	}

	// 3. Environment: SQLCLAUSE_IGNORE_NONE -> ignore_none,
	// SQLCLAUSE_IGNORE_FIELDS_WITHOUT_DIRECTIVE_SET -> ignore_fields_without_directive.set
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, prefix := range nested {
		if rest, ok := strings.CutPrefix(key, prefix+"_"); ok {
			return prefix + "." + rest
		}
	}
	return key
}

// flagKey maps a flag name to its config key. Kebab-case becomes snake_case;
// "start" is the short form of "index", and the per-kind directive flags map
// to their nested keys.
func flagKey(name string) string {
	switch name {
	case "start":
		return "index"
	case "ignore-where-without-directive":
		return "ignore_fields_without_directive.where"
	case "ignore-set-without-directive":
		return "ignore_fields_without_directive.set"
	}
	return strings.ReplaceAll(name, "-", "_")
}
