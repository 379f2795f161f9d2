package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
default_library = "dfm"

[libraries.dfm]
id = "123456"
type = "group"
api_key = "secret"

[libraries.personal]
id = "42"
type = "user"

[defaults]
tag_filters = ["#RELEVANCE: Direct", "-#exclude"]
style = "apa"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	lib, err := cfg.GetLibrary("")
	if err != nil {
		t.Fatalf("GetLibrary() error = %v", err)
	}
	if lib.ID != "123456" || lib.Type != "group" || lib.APIKey != "secret" {
		t.Fatalf("unexpected default library %+v", lib)
	}

	lib, err = cfg.GetLibrary("personal")
	if err != nil {
		t.Fatalf("GetLibrary(personal) error = %v", err)
	}
	if lib.ID != "42" || lib.Type != "user" {
		t.Fatalf("unexpected library %+v", lib)
	}

	want := []string{"#RELEVANCE: Direct", "-#exclude"}
	if !reflect.DeepEqual(cfg.Defaults.TagFilters, want) {
		t.Fatalf("TagFilters = %v, want %v", cfg.Defaults.TagFilters, want)
	}
	if cfg.Defaults.Style != "apa" {
		t.Fatalf("Style = %q, want apa", cfg.Defaults.Style)
	}
}

func TestGetLibraryErrors(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.GetLibrary(""); err == nil {
		t.Fatalf("expected error when no default library is configured")
	}
	if _, err := cfg.GetLibrary("missing"); err == nil {
		t.Fatalf("expected error for unknown library name")
	}
}

func TestLoadFromInvalid(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	if _, err := LoadFrom(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
