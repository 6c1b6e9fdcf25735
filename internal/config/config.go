// Package config loads filedemand settings and the object catalog from a
// config file and FDEMAND_* environment variables.
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/filedemand/filedemand"
)

const envPrefix = "FDEMAND"

// Config mirrors the config file.
type Config struct {
	Root        string       `mapstructure:"root"`
	Process     any          `mapstructure:"process"` // bool, or a list of modes to flush
	Extend      bool         `mapstructure:"exted"`
	Encoding    string       `mapstructure:"encoding"`
	Concurrency int          `mapstructure:"concurrency"`
	Cache       CacheConfig  `mapstructure:"cache"`
	Log         LogConfig    `mapstructure:"log"`
	Objects     []ObjectSpec `mapstructure:"objects"`
}

// CacheConfig holds the in-memory cache settings.
type CacheConfig struct {
	// Expire accepts integer milliseconds or a duration string ("90s").
	Expire time.Duration `mapstructure:"expire"`
	Length int           `mapstructure:"length"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// ObjectSpec declares one catalog object.
type ObjectSpec struct {
	Key      string `mapstructure:"key"`
	Type     string `mapstructure:"type"`
	Name     string `mapstructure:"name"`
	Mode     string `mapstructure:"mode"`
	JSON     bool   `mapstructure:"json"`
	Defaults any    `mapstructure:"defaults"`
}

// Load reads path (optional) and applies defaults and environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(millisecondsHook())); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("process", true)
	v.SetDefault("exted", false)
	v.SetDefault("encoding", filedemand.DefaultEncoding)
	v.SetDefault("concurrency", filedemand.DefaultConcurrency)
	v.SetDefault("cache.expire", filedemand.DefaultExpire.Milliseconds())
	v.SetDefault("cache.length", filedemand.DefaultLength)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.compress", false)
}

// millisecondsHook decodes numbers as milliseconds and strings either as
// milliseconds or as Go durations.
func millisecondsHook() mapstructure.DecodeHookFunc {
	target := reflect.TypeOf(time.Duration(0))

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != target {
			return data, nil
		}

		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Millisecond, nil
		case int64:
			return time.Duration(v) * time.Millisecond, nil
		case float64:
			return time.Duration(v * float64(time.Millisecond)), nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return time.Duration(0), nil
			}
			if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
				return time.Duration(ms) * time.Millisecond, nil
			}
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid duration %q", v)
			}
			return d, nil
		case time.Duration:
			return v, nil
		default:
			return nil, fmt.Errorf("unsupported duration type %T", data)
		}
	}
}

// FlushModes interprets Process.
func (c *Config) FlushModes() ([]filedemand.Mode, error) {
	var names []string

	switch v := c.Process.(type) {
	case nil:
		return filedemand.AllModes, nil
	case bool:
		if v {
			return filedemand.AllModes, nil
		}
		return nil, nil
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			if b {
				return filedemand.AllModes, nil
			}
			return nil, nil
		}
		names = strings.Split(v, ",")
	case []string:
		names = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, newFieldError("process", fmt.Sprintf("unexpected entry %v", item))
			}
			names = append(names, s)
		}
	default:
		return nil, newFieldError("process", fmt.Sprintf("unsupported type %T", v))
	}

	modes := make([]filedemand.Mode, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		m, err := filedemand.ParseMode(name)
		if err != nil {
			return nil, newFieldError("process", err.Error())
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// Catalog converts the declared objects.
func (c *Config) Catalog() ([]filedemand.Object, error) {
	objs := make([]filedemand.Object, 0, len(c.Objects))
	for i, decl := range c.Objects {
		kind, err := filedemand.ParseKind(decl.Type)
		if err != nil {
			return nil, newFieldError(objectField(i, decl.Key, "type"), err.Error())
		}
		mode, err := filedemand.ParseMode(decl.Mode)
		if err != nil {
			return nil, newFieldError(objectField(i, decl.Key, "mode"), err.Error())
		}
		objs = append(objs, filedemand.Object{
			Key:      decl.Key,
			Kind:     kind,
			Name:     decl.Name,
			Mode:     mode,
			JSON:     decl.JSON,
			Defaults: decl.Defaults,
		})
	}
	return objs, nil
}

// Options translates the registry settings into Open options.
func (c *Config) Options() ([]filedemand.Option, error) {
	modes, err := c.FlushModes()
	if err != nil {
		return nil, err
	}

	opts := []filedemand.Option{
		filedemand.WithEncoding(c.Encoding),
		filedemand.WithCacheExpire(c.Cache.Expire),
		filedemand.WithCacheLength(c.Cache.Length),
		filedemand.WithConcurrency(c.Concurrency),
	}
	if len(modes) == 0 {
		opts = append(opts, filedemand.WithoutFlush())
	} else {
		opts = append(opts, filedemand.WithFlushModes(modes...))
	}
	return opts, nil
}
