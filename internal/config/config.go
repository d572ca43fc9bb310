// Package config loads the pcomb CLI settings from a YAML or JSON file.
//
// Files are validated against an embedded JSON Schema before they are applied over
// the defaults. Command line flags are applied by the caller afterwards.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// DefaultFile is searched for in the working directory when no path is given.
const DefaultFile = ".pcomb.yaml"

// DebugEnv enables debug logging when set to a true value.
const DebugEnv = "PCOMB_DEBUG"

//go:embed schema.json
var schemaJSON []byte

// Config holds the CLI settings.
type Config struct {
	Version string  `json:"version,omitempty" yaml:"version,omitempty"`
	Format  string  `json:"format" yaml:"format"`
	Partial bool    `json:"partial" yaml:"partial"`
	Debug   bool    `json:"debug" yaml:"debug"`
	Params  Params  `json:"params" yaml:"params"`
	Strings Strings `json:"strings" yaml:"strings"`
}

// Params configures the param-list delimiters.
type Params struct {
	Start     string `json:"start" yaml:"start"`
	Separator string `json:"separator" yaml:"separator"`
	End       string `json:"end" yaml:"end"`
}

// Strings configures the escape-aware string scanner.
type Strings struct {
	Terminal string `json:"terminal" yaml:"terminal"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format: "text",
		Params: Params{Start: "(", Separator: ",", End: ")"},
		Strings: Strings{
			Terminal: `"`,
		},
	}
}

// Runes returns the delimiters as characters.
func (p Params) Runes() (start, sep, end rune) {
	return firstRune(p.Start), firstRune(p.Separator), firstRune(p.End)
}

// Rune returns the terminal character.
func (s Strings) Rune() rune {
	return firstRune(s.Terminal)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// Validate checks constraints the schema cannot express.
func (c Config) Validate() error {
	start, sep, end := c.Params.Runes()
	if start == sep || start == end || sep == end {
		return fmt.Errorf("params delimiters must differ: %q %q %q", c.Params.Start, c.Params.Separator, c.Params.End)
	}
	return nil
}

// Load reads the config file at path over the defaults. An empty path searches
// SearchPaths and falls back to the defaults when none exists. The returned string
// is the file that was read, or "" when none was.
func Load(path string) (Config, string, error) {
	if path == "" {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, "", fmt.Errorf("failed to read config: %w", err)
		}
		if err := decode(data, filepath.Ext(path), &cfg); err != nil {
			return Config{}, "", fmt.Errorf("%s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// SearchPaths lists the locations tried when no config path is given.
func SearchPaths() []string {
	paths := []string{DefaultFile}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pcomb", "config.yaml"))
	}
	return paths
}

// Parse decodes and validates a config document over the defaults. ext selects
// the syntax: ".json" for JSON, anything else for YAML.
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	if err := decode(data, ext, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, ext string, cfg *Config) error {
	var doc any
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("invalid YAML: %w", err)
		}
	}
	if doc == nil {
		doc = map[string]any{}
	}

	// The validator works on JSON values, so YAML documents are normalized first.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("unsupported config value: %w", err)
	}
	var value any
	if err := json.Unmarshal(normalized, &value); err != nil {
		return err
	}

	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(value); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("invalid config: %s", ve.Error())
		}
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func applyEnv(cfg *Config) {
	if val := os.Getenv(DebugEnv); val != "" {
		if on, err := strconv.ParseBool(val); err == nil {
			cfg.Debug = on
		}
	}
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if compiler.Formats == nil {
			compiler.Formats = make(map[string]func(interface{}) bool)
		}
		compiler.Formats["semver"] = isSemver

		const url = "schema://pcomb-config.json"
		if err := compiler.AddResource(url, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("config schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(url)
	})
	return schema, schemaErr
}

// isSemver accepts versions with or without the leading "v".
func isSemver(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return semver.IsValid(s)
}
