// Package config carries the analysis core's constants and its
// project-level configuration file, grounded on the teacher's
// internal/ext/config.go (yaml.v3 struct tags, a package-level default
// extension list consumed by internal/modules).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is the default source extension (spec.md §6.2 implies a
// single-language source tree; kept as a fallback for directories with
// no recognised file yet).
const SourceFileExt = ".py"

// SourceFileExtensions lists every extension treated as source when
// scanning a module directory (spec.md §4.C loader walk).
var SourceFileExtensions = []string{".py", ".pyi"}

// StubFileExt marks a stub-only source file (spec.md §3.2 ModuleKind.Stub).
const StubFileExt = ".pyi"

// Typeshed layout constants (spec.md §6.4).
const (
	TypeshedStdlibDirFmt  = "stdlib/%s"
	TypeshedStdlib2and3   = "stdlib/2and3"
	TypeshedThirdParty    = "third_party"
	SitePackagesDirName   = "site-packages"
	DistInfoSuffix        = ".dist-info"
	StubPackageSuffix     = "-stubs"
	CacheDirName          = ".kestrel-cache"
)

// Config is the project configuration file (kestrel.yaml), matching the
// teacher's funxy.yaml loaded by internal/ext/config.go.
type Config struct {
	TypeshedRoot     string   `yaml:"typeshed_root"`
	UserSearchPaths  []string `yaml:"search_paths"`
	LanguageVersion  string   `yaml:"language_version"`
	CacheEnabled     bool     `yaml:"cache_enabled"`
	CacheDir         string   `yaml:"cache_dir"`
	IntrospectHelper string   `yaml:"introspect_helper"`
}

// Default returns the configuration used when no kestrel.yaml is found.
func Default() *Config {
	return &Config{
		LanguageVersion: "3",
		CacheEnabled:    true,
		CacheDir:        CacheDirName,
	}
}

// Load reads and parses a kestrel.yaml file at path, matching the
// teacher's config-loading style (os.ReadFile + yaml.Unmarshal wrapped
// with fmt.Errorf).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
