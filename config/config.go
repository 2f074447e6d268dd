// Package config loads field mapping configuration from YAML or JSON files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/francoispqt/gojay"
	"github.com/viant/recordmap"
	"github.com/viant/recordmap/conv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type (
	// Config represents mapping configuration
	Config struct {
		Global *Options `yaml:"global,omitempty"`
		Fields []*Field `yaml:"fields,omitempty"`
	}

	// Field represents a single struct field mapping
	Field struct {
		Field     string   `yaml:"field"`
		Names     []string `yaml:"names,omitempty"`
		Index     *int     `yaml:"index,omitempty"`
		NameIndex *int     `yaml:"nameIndex,omitempty"`
		Ignore    bool     `yaml:"ignore,omitempty"`
		Default   *string  `yaml:"default,omitempty"`
		Optional  bool     `yaml:"optional,omitempty"`
		Options   *Options `yaml:"options,omitempty"`
	}

	// Options represents type conversion options, lists replace existing values unless AppendValues is set
	Options struct {
		Locale         string   `yaml:"locale,omitempty"`
		NumberStyles   string   `yaml:"numberStyles,omitempty"`
		DateTimeStyles string   `yaml:"dateTimeStyles,omitempty"`
		Formats        []string `yaml:"formats,omitempty"`
		TrueValues     []string `yaml:"trueValues,omitempty"`
		FalseValues    []string `yaml:"falseValues,omitempty"`
		NullValues     []string `yaml:"nullValues,omitempty"`
		AppendValues   bool     `yaml:"appendValues,omitempty"`
	}
)

// Load loads config from .yaml, .yml or .json file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported config extension: %v", ext)
	}
}

// ParseYAML parses YAML config
func ParseYAML(data []byte) (*Config, error) {
	ret := &Config{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse yaml config: %w", err)
	}
	return ret, nil
}

// ParseJSON parses JSON config
func ParseJSON(data []byte) (*Config, error) {
	ret := &Config{}
	if err := gojay.UnmarshalJSONObject(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse json config: %w", err)
	}
	return ret, nil
}

// Apply applies config to class map
func (c *Config) Apply(classMap *recordmap.ClassMap) error {
	if classMap.IsFrozen() {
		return recordmap.ErrFrozen
	}
	if c.Global != nil {
		if err := c.Global.apply(classMap.Options()); err != nil {
			return fmt.Errorf("invalid global options: %w", err)
		}
	}
	for _, field := range c.Fields {
		fieldMap := classMap.Field(field.Field)
		if fieldMap == nil {
			return fmt.Errorf("field %v was missing in %v", field.Field, classMap.Type())
		}
		if err := field.apply(fieldMap); err != nil {
			return fmt.Errorf("invalid field %v: %w", field.Field, err)
		}
	}
	return nil
}

func (f *Field) apply(fieldMap *recordmap.FieldMap) error {
	if len(f.Names) > 0 {
		fieldMap.Name(f.Names...)
	}
	if f.Index != nil {
		fieldMap.Index(*f.Index)
	}
	if f.NameIndex != nil {
		fieldMap.NameIndex(*f.NameIndex)
	}
	if f.Ignore {
		fieldMap.Ignore(true)
	}
	if f.Default != nil {
		fieldMap.Default(*f.Default)
	}
	if f.Optional {
		fieldMap.Optional()
	}
	if f.Options == nil {
		return nil
	}
	return f.Options.apply(fieldMap.Data().TypeConverterOptions)
}

func (o *Options) apply(options *conv.Options) error {
	if o.Locale != "" {
		locale, err := language.Parse(o.Locale)
		if err != nil {
			return fmt.Errorf("invalid locale: %w", err)
		}
		options.SetLocale(locale)
	}
	if o.NumberStyles != "" {
		style, err := conv.ParseNumberStyles(o.NumberStyles)
		if err != nil {
			return err
		}
		options.SetNumberStyle(style)
	}
	if o.DateTimeStyles != "" {
		style, err := conv.ParseDateTimeStyles(o.DateTimeStyles)
		if err != nil {
			return err
		}
		options.SetDateTimeStyle(style)
	}
	if o.Formats != nil {
		formats := make([]string, len(o.Formats))
		for i, format := range o.Formats {
			formats[i] = conv.TimeLayout(format)
		}
		options.SetFormats(formats...)
	}
	clearValues := !o.AppendValues
	if o.TrueValues != nil {
		options.AddBooleanValues(true, clearValues, o.TrueValues...)
	}
	if o.FalseValues != nil {
		options.AddBooleanValues(false, clearValues, o.FalseValues...)
	}
	if o.NullValues != nil {
		options.AddNullValues(clearValues, o.NullValues...)
	}
	return nil
}
