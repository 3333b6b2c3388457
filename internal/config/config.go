// Package config loads jsonxf CLI defaults from a YAML file.
//
// The file is selected by the --config flag or the JSONXF_CONFIG environment
// variable. There is no automatic discovery. Every key is optional; keys that
// are absent leave the preset untouched, and command-line flags override
// whatever the file sets.
//
//	minimize: false
//	indent: "\t"
//	line_separator: "\r\n"
//	record_separator: "\n"
//	strict: true
//	palette: tokyo-night
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pkt.systems/jsonxf"
)

// EnvVar names the environment variable consulted when no --config flag is
// given.
const EnvVar = "JSONXF_CONFIG"

// File is the on-disk configuration. Pointer fields distinguish "unset" from
// an explicit zero value such as an empty record separator.
type File struct {
	Minimize              *bool   `yaml:"minimize"`
	Indent                *string `yaml:"indent"`
	LineSeparator         *string `yaml:"line_separator"`
	AfterColon            *string `yaml:"after_colon"`
	RecordSeparator       *string `yaml:"record_separator"`
	TrailingOutput        *string `yaml:"trailing_output"`
	EagerRecordSeparators *bool   `yaml:"eager_record_separators"`
	Strict                *bool   `yaml:"strict"`
	MaxDepth              *int    `yaml:"max_depth"`
	Palette               *string `yaml:"palette"`
	Color                 *string `yaml:"color"`
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func Parse(data []byte) (*File, error) {
	var cfg File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Color != nil {
		switch *cfg.Color {
		case "auto", "always", "never":
		default:
			return nil, fmt.Errorf("parsing config: color must be auto, always or never, got %q", *cfg.Color)
		}
	}
	return &cfg, nil
}

// Resolve returns the path named by flagValue, falling back to EnvVar. An
// empty result means no config file.
func Resolve(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvVar)
}

// Options builds formatter options: the preset selected by Minimize, then
// every field the file sets.
func (c *File) Options() jsonxf.Options {
	opts := jsonxf.PrettyOptions()
	if c == nil {
		return opts
	}
	if c.Minimize != nil && *c.Minimize {
		opts = jsonxf.MinifyOptions()
	}
	c.Apply(&opts)
	return opts
}

// Apply copies the fields set in the file onto opts.
func (c *File) Apply(opts *jsonxf.Options) {
	if c == nil {
		return
	}
	setString(&opts.Indent, c.Indent)
	setString(&opts.LineSeparator, c.LineSeparator)
	setString(&opts.AfterColon, c.AfterColon)
	setString(&opts.RecordSeparator, c.RecordSeparator)
	setString(&opts.TrailingOutput, c.TrailingOutput)
	setString(&opts.Palette, c.Palette)
	if c.EagerRecordSeparators != nil {
		opts.EagerRecordSeparators = *c.EagerRecordSeparators
	}
	if c.Strict != nil {
		opts.Strict = *c.Strict
	}
	if c.MaxDepth != nil {
		opts.MaxDepth = *c.MaxDepth
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
