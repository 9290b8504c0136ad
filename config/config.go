package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/polypheny/polytype/polytype"
)

// PolytypeDir holds the default configuration file and the logs.
var PolytypeDir = func() string {
	dir, err := homedir.Expand("~/.polytype")
	if err != nil {
		log.Fatalf("couldn't get user home directory: %s", err)
	}
	return dir
}()

var DefaultConfigPath = filepath.Join(PolytypeDir, "polytype.yml")

type Config struct {
	TypeSystem map[string]interface{} `yaml:"typeSystem"`
	Cache      map[string]interface{} `yaml:"cache"`
	Logging    map[string]interface{} `yaml:"logging"`
	Repl       map[string]interface{} `yaml:"repl"`
}

func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	var config Config

	err = yaml.NewDecoder(f).Decode(&config)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}

	return &config, nil
}

// Read reads the configuration at path, or at DefaultConfigPath if path is empty.
// A missing default configuration file yields an empty configuration.
func Read(path string) (*Config, error) {
	if path != "" {
		return ReadConfig(path)
	}
	if _, err := os.Stat(DefaultConfigPath); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return ReadConfig(DefaultConfigPath)
}

// TypeSystem builds the type system described by the typeSystem section.
func TypeSystem(config *Config) (*polytype.BaseTypeSystem, error) {
	section := config.TypeSystem
	if section == nil {
		section = map[string]interface{}{}
	}
	ts := &polytype.BaseTypeSystem{}

	var err error
	if ts.NumericPrecision, err = GetInt(section, "numeric.maxPrecision", WithDefault(0)); err != nil {
		return nil, errors.Wrap(err, "couldn't get maximum numeric precision")
	}
	if ts.NumericScale, err = GetInt(section, "numeric.maxScale", WithDefault(0)); err != nil {
		return nil, errors.Wrap(err, "couldn't get maximum numeric scale")
	}
	if ts.NumericPrecision < 0 || ts.NumericScale < 0 {
		return nil, errors.New("numeric precision and scale can't be negative")
	}
	if ts.DefaultPrecisions, err = kindPrecisions(section, "precision.default"); err != nil {
		return nil, errors.Wrap(err, "couldn't get default precisions")
	}
	if ts.MaxPrecisions, err = kindPrecisions(section, "precision.max"); err != nil {
		return nil, errors.Wrap(err, "couldn't get maximum precisions")
	}
	if ts.RaggedUnionsToVarying, err = GetBool(section, "raggedUnionsToVarying", WithDefault(false)); err != nil {
		return nil, errors.Wrap(err, "couldn't get raggedUnionsToVarying")
	}

	charset, err := GetString(section, "charset", WithDefault(""))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't get charset")
	}
	if charset != "" {
		if ts.Charset, err = polytype.CharsetByName(charset); err != nil {
			return nil, errors.Wrap(err, "couldn't resolve default charset")
		}
	}

	return ts, nil
}

// kindPrecisions reads a map from kind names to precisions.
func kindPrecisions(section map[string]interface{}, field string) (map[polytype.Kind]int, error) {
	m, err := GetMap(section, field, WithDefault(map[string]interface{}{}))
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[polytype.Kind]int, len(m))
	for name := range m {
		kind, ok := polytype.KindByName(name)
		if !ok {
			return nil, errors.Errorf("unknown kind %s", strings.ToUpper(name))
		}
		precision, err := GetInt(m, name)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't get precision of %s", kind)
		}
		out[kind] = precision
	}
	return out, nil
}

// ResultCacheSize is the number of memoized LeastRestrictive results, 0 disables the cache.
func ResultCacheSize(config *Config) (int64, error) {
	size, err := GetInt(config.Cache, "results", WithDefault(0))
	if err != nil {
		return 0, errors.Wrap(err, "couldn't get result cache size")
	}
	return int64(size), nil
}

// LogPath is the file the CLI logs to.
func LogPath(config *Config) (string, error) {
	path, err := GetString(config.Logging, "path", WithDefault(filepath.Join(PolytypeDir, "logs.txt")))
	if err != nil {
		return "", errors.Wrap(err, "couldn't get log path")
	}
	return homedir.Expand(path)
}

// ReplHistory lists the commands the repl starts with in its history.
func ReplHistory(config *Config) ([]string, error) {
	history, err := GetStringList(config.Repl, "history", WithDefault([]string(nil)))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't get repl history")
	}
	return history, nil
}

// LoggingEnabled reports whether the CLI logs to LogPath at all.
func LoggingEnabled(config *Config) (bool, error) {
	enabled, err := GetBool(config.Logging, "enabled", WithDefault(true))
	if err != nil {
		return false, errors.Wrap(err, "couldn't get logging.enabled")
	}
	return enabled, nil
}
