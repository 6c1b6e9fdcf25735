package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/filedemand/filedemand"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fdemand.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Root != "." {
		t.Errorf("root = %q, want .", cfg.Root)
	}
	if cfg.Encoding != filedemand.DefaultEncoding {
		t.Errorf("encoding = %q", cfg.Encoding)
	}
	if cfg.Cache.Expire != filedemand.DefaultExpire {
		t.Errorf("cache.expire = %v, want %v", cfg.Cache.Expire, filedemand.DefaultExpire)
	}
	if cfg.Cache.Length != filedemand.DefaultLength {
		t.Errorf("cache.length = %d", cfg.Cache.Length)
	}
	if cfg.Concurrency != filedemand.DefaultConcurrency {
		t.Errorf("concurrency = %d", cfg.Concurrency)
	}
	if cfg.Extend {
		t.Error("exted defaults to false")
	}

	modes, err := cfg.FlushModes()
	if err != nil {
		t.Fatalf("FlushModes: %v", err)
	}
	if !reflect.DeepEqual(modes, filedemand.AllModes) {
		t.Errorf("flush modes = %v, want all", modes)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
root: /srv/app
exted: true
encoding: iso-8859-1
process: [dynamic, cache]
cache:
  expire: 1500
  length: 50
log:
  level: debug
objects:
  - key: cfg
    type: file
    name: config.json
    mode: dynamic
    json: true
    defaults:
      port: 8080
  - key: tmp
    type: folder
    name: tmp
    mode: cache
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Root != "/srv/app" || !cfg.Extend || cfg.Encoding != "iso-8859-1" {
		t.Errorf("unexpected settings: %+v", cfg)
	}
	if cfg.Cache.Expire != 1500*time.Millisecond {
		t.Errorf("cache.expire = %v, want 1.5s", cfg.Cache.Expire)
	}
	if cfg.Cache.Length != 50 {
		t.Errorf("cache.length = %d, want 50", cfg.Cache.Length)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}

	modes, err := cfg.FlushModes()
	if err != nil {
		t.Fatalf("FlushModes: %v", err)
	}
	if want := []filedemand.Mode{filedemand.Dynamic, filedemand.Cache}; !reflect.DeepEqual(modes, want) {
		t.Errorf("flush modes = %v, want %v", modes, want)
	}

	objs, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(objs) != 2 {
		t.Fatalf("catalog has %d objects, want 2", len(objs))
	}

	cfgObj := objs[0]
	if cfgObj.Key != "cfg" || cfgObj.Kind != filedemand.File || cfgObj.Mode != filedemand.Dynamic || !cfgObj.JSON {
		t.Errorf("objects[0] = %+v", cfgObj)
	}
	defaults, ok := cfgObj.Defaults.(map[string]any)
	if !ok || defaults["port"] != 8080 {
		t.Errorf("objects[0].defaults = %#v", cfgObj.Defaults)
	}

	if objs[1].Kind != filedemand.Folder || objs[1].Mode != filedemand.Cache {
		t.Errorf("objects[1] = %+v", objs[1])
	}
}

func TestLoad_ExpireDurationString(t *testing.T) {
	path := writeConfig(t, "cache:\n  expire: 90s\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Expire != 90*time.Second {
		t.Errorf("cache.expire = %v, want 90s", cfg.Cache.Expire)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FDEMAND_ROOT", "/from/env")
	t.Setenv("FDEMAND_CACHE_EXPIRE", "250")
	t.Setenv("FDEMAND_PROCESS", "static,temp")

	cfg, err := Load(writeConfig(t, "root: /from/file\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Root != "/from/env" {
		t.Errorf("root = %q, want /from/env", cfg.Root)
	}
	if cfg.Cache.Expire != 250*time.Millisecond {
		t.Errorf("cache.expire = %v, want 250ms", cfg.Cache.Expire)
	}

	modes, err := cfg.FlushModes()
	if err != nil {
		t.Fatalf("FlushModes: %v", err)
	}
	if want := []filedemand.Mode{filedemand.Static, filedemand.Temp}; !reflect.DeepEqual(modes, want) {
		t.Errorf("flush modes = %v, want %v", modes, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad expire", "cache:\n  expire: -5\n", "cache.expire"},
		{"bad concurrency", "concurrency: 0\n", "concurrency"},
		{"bad process", "process: [static, forever]\n", "process"},
		{
			"bad mode",
			"objects:\n  - key: a\n    type: file\n    name: a\n    mode: eternal\n",
			"objects[0](a).mode",
		},
		{
			"bad type",
			"objects:\n  - key: a\n    type: link\n    name: a\n    mode: temp\n",
			"objects[0](a).type",
		},
		{
			"duplicate key",
			"objects:\n  - {key: a, type: file, name: a, mode: temp}\n  - {key: a, type: file, name: b, mode: temp}\n",
			"objects[1](a).key",
		},
		{
			"missing key",
			"objects:\n  - {type: file, name: a, mode: temp}\n",
			"objects[0].key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}

			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a FieldError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestFlushModes(t *testing.T) {
	tests := []struct {
		name    string
		process any
		want    []filedemand.Mode
		wantErr bool
	}{
		{"true", true, filedemand.AllModes, false},
		{"false", false, nil, false},
		{"string false", "false", nil, false},
		{"csv", "cache, dynamic", []filedemand.Mode{filedemand.Cache, filedemand.Dynamic}, false},
		{"list", []any{"static"}, []filedemand.Mode{filedemand.Static}, false},
		{"empty list", []any{}, []filedemand.Mode{}, false},
		{"non-string entry", []any{1}, nil, true},
		{"unsupported", 3.5, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Process: tt.process}
			got, err := c.FlushModes()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FlushModes: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptions_DisablesFlush(t *testing.T) {
	c := &Config{Process: false, Encoding: "utf-8", Concurrency: 2}
	c.Cache.Expire = time.Second
	c.Cache.Length = 5

	opts, err := c.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}

	resolved := &filedemand.Options{FlushModes: filedemand.AllModes}
	for _, opt := range opts {
		opt(resolved)
	}
	if len(resolved.FlushModes) != 0 {
		t.Errorf("flush modes = %v, want none", resolved.FlushModes)
	}
	if resolved.CacheExpire != time.Second || resolved.CacheLength != 5 || resolved.Concurrency != 2 {
		t.Errorf("unexpected options: %+v", resolved)
	}
}
