// Package config loads generation settings from YAML, .env files and the
// environment.
package config

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/srcweave/srcweave/pkg/enum"
)

const (
	// FileName is looked up in the source root when no config path is given.
	FileName = ".srcweave.yaml"
	// EnvFile is read from the source root when present.
	EnvFile = ".env"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SRCWEAVE_"

	defaultMaxFileSize = 10 * 1024 * 1024
)

// Config holds generation settings.
type Config struct {
	// Output is a directory, a .db/.sqlite file or ":memory:".
	Output        string   `yaml:"output"`
	Title         string   `yaml:"title"`
	Patterns      []string `yaml:"patterns"`
	Tests         bool     `yaml:"tests"`
	IncludeHidden bool     `yaml:"include_hidden"`
	MaxFileSize   int64    `yaml:"max_file_size"`
	// Workers bounds concurrent rendering; 0 means one per CPU.
	Workers       int      `yaml:"workers"`
	StrictNesting bool     `yaml:"strict_nesting"`
	Extensions    []string `yaml:"extensions"`
	SkipDirs      []string `yaml:"skip_dirs"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Output:        "site",
		Patterns:      []string{"./..."},
		MaxFileSize:   defaultMaxFileSize,
		StrictNesting: true,
		Extensions:    append([]string(nil), enum.DefaultExtensions...),
		SkipDirs:      append([]string(nil), enum.DefaultSkipDirs...),
	}
}

// Load resolves settings for the tree at root. Later sources win:
// defaults, the YAML file (path, or FileName in root when path is empty),
// root/.env, then SRCWEAVE_* variables from the process environment.
func Load(path, root string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, FileName)
	}
	if err := cfg.loadYAML(path, explicit); err != nil {
		return nil, err
	}

	dotenv, err := readDotEnv(filepath.Join(root, EnvFile))
	if err != nil {
		return nil, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output is required")
	}
	if c.Workers < 0 {
		return errors.Newf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxFileSize < 0 {
		return errors.Newf("max_file_size must not be negative, got %d", c.MaxFileSize)
	}
	if len(c.Patterns) == 0 {
		return errors.New("at least one package pattern is required")
	}
	return nil
}

func (c *Config) loadYAML(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		// A file without a document decodes to io.EOF.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return nil
}

func readDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return env, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = splitList(v)
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "parsing %s%s", EnvPrefix, name)
		}
		*dst = b
		return nil
	}
	integer := func(name string, dst *int64) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parsing %s%s", EnvPrefix, name)
		}
		*dst = n
		return nil
	}

	str("OUTPUT", &c.Output)
	str("TITLE", &c.Title)
	list("PATTERNS", &c.Patterns)
	list("EXTENSIONS", &c.Extensions)
	list("SKIP_DIRS", &c.SkipDirs)

	workers := int64(c.Workers)
	for name, dst := range map[string]*int64{"WORKERS": &workers, "MAX_FILE_SIZE": &c.MaxFileSize} {
		if err := integer(name, dst); err != nil {
			return err
		}
	}
	c.Workers = int(workers)

	for name, dst := range map[string]*bool{
		"TESTS":          &c.Tests,
		"INCLUDE_HIDDEN": &c.IncludeHidden,
		"STRICT_NESTING": &c.StrictNesting,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
