package recordmap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/viant/recordmap/conv"
	"github.com/viant/recordmap/tags"
	"github.com/viant/tagly/format"
	"golang.org/x/text/language"
)

const (
	// TagName defines default mapping tag name
	TagName = "csv"

	// SetMarkerTag defines set marker tag
	SetMarkerTag = "setMarker"

	presenceMarkerTag = "presenceMarker"
)

// Tag represents mapping tag, e.g.
//
//	csv:"name=amount|total,format='%.2f',null={NULL|N/A},locale=de-DE"
//
// null, true and false lists keep empty elements: null={|NULL} matches an empty column and NULL,
// a bare null or null= declares the empty string only.
type Tag struct {
	Names          []string
	Index          *int
	NameIndex      int
	Ignore         bool
	Default        *string
	Optional       bool
	Locale         *language.Tag
	NumberStyles   *conv.NumberStyles
	DateTimeStyles *conv.DateTimeStyles
	Formats        []string
	NullValues     []string
	TrueValues     []string
	FalseValues    []string
	CaseFormat     string
}

// IsSetMarker returns true if field holds presence flags
func IsSetMarker(tag reflect.StructTag) bool {
	for _, name := range []string{SetMarkerTag, presenceMarkerTag} {
		if value, ok := tag.Lookup(name); ok && value != "false" {
			return true
		}
	}
	return false
}

// ParseTag parses mapping tag, tagly format tag supplies name, date layout and ignore when not defined by mapping tag
func ParseTag(field reflect.StructField, tagName string) (*Tag, error) {
	if tagName == "" {
		tagName = TagName
	}
	ret := &Tag{}
	if value, ok := field.Tag.Lookup(tagName); ok {
		if err := ret.parse(value); err != nil {
			return nil, fmt.Errorf("invalid %v tag on %v: %w", tagName, field.Name, err)
		}
	}
	fTag, err := format.Parse(field.Tag)
	if err != nil {
		return nil, fmt.Errorf("invalid format tag on %v: %w", field.Name, err)
	}
	if fTag != nil {
		ret.inherit(fTag)
	}
	return ret, nil
}

func (t *Tag) inherit(fTag *format.Tag) {
	if len(t.Names) == 0 && fTag.Name != "" && fTag.Name != "-" {
		t.Names = []string{fTag.Name}
	}
	if t.CaseFormat == "" {
		t.CaseFormat = fTag.CaseFormat
	}
	if fTag.Ignore || fTag.Name == "-" {
		t.Ignore = true
	}
	if t.Formats == nil {
		switch {
		case fTag.TimeLayout != "":
			t.Formats = []string{fTag.TimeLayout}
		case fTag.DateFormat != "":
			t.Formats = []string{conv.TimeLayout(fTag.DateFormat)}
		}
	}
}

func (t *Tag) parse(value string) error {
	if strings.TrimSpace(value) == "-" {
		t.Ignore = true
		return nil
	}
	position := 0
	return tags.Values(value).MatchPairs(func(key, value string) error {
		position++
		if value == "" && isSentinelKey(key) {
			return t.set(key, value)
		}
		if value == "" {
			switch strings.ToLower(key) {
			case "ignore":
				t.Ignore = true
			case "optional":
				t.Optional = true
			default:
				if position > 1 {
					return fmt.Errorf("unsupported key: %v", key)
				}
				t.Names = tags.Elements(key)
			}
			return nil
		}
		return t.set(key, value)
	})
}

func isSentinelKey(key string) bool {
	switch strings.ToLower(key) {
	case "null", "true", "false":
		return true
	}
	return false
}

func (t *Tag) set(key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "name":
		t.Names = tags.Elements(value)
	case "index":
		var index int
		if index, err = strconv.Atoi(value); err == nil {
			t.Index = &index
		}
	case "nameindex":
		t.NameIndex, err = strconv.Atoi(value)
	case "ignore":
		t.Ignore, err = strconv.ParseBool(value)
	case "optional":
		t.Optional, err = strconv.ParseBool(value)
	case "default":
		t.Default = &value
	case "locale":
		var locale language.Tag
		if locale, err = language.Parse(value); err == nil {
			t.Locale = &locale
		}
	case "numberstyles":
		var style conv.NumberStyles
		if style, err = conv.ParseNumberStyles(value); err == nil {
			t.NumberStyles = &style
		}
	case "datetimestyles":
		var style conv.DateTimeStyles
		if style, err = conv.ParseDateTimeStyles(value); err == nil {
			t.DateTimeStyles = &style
		}
	case "format":
		t.Formats = tags.Elements(value)
		for i, item := range t.Formats {
			t.Formats[i] = conv.TimeLayout(item)
		}
	case "null":
		t.NullValues = tags.Sentinels(value)
	case "true":
		t.TrueValues = tags.Sentinels(value)
	case "false":
		t.FalseValues = tags.Sentinels(value)
	default:
		return fmt.Errorf("unsupported key: %v", key)
	}
	if err != nil {
		return fmt.Errorf("invalid %v: %w", key, err)
	}
	return nil
}

func (t *Tag) apply(field *FieldMap) {
	if len(t.Names) > 0 {
		field.Name(t.Names...)
	}
	if t.Index != nil {
		field.Index(*t.Index)
	}
	field.NameIndex(t.NameIndex)
	if t.Ignore {
		field.Ignore(true)
	}
	if t.Default != nil {
		field.Default(*t.Default)
	}
	if t.Optional {
		field.Optional()
	}
	option := field.TypeConverterOption()
	if t.Locale != nil {
		option.Locale(*t.Locale)
	}
	if t.NumberStyles != nil {
		option.NumberStyles(*t.NumberStyles)
	}
	if t.DateTimeStyles != nil {
		option.DateTimeStyles(*t.DateTimeStyles)
	}
	if t.Formats != nil {
		option.Formats(t.Formats...)
	}
	if t.NullValues != nil {
		option.NullValues(t.NullValues...)
	}
	if t.TrueValues != nil {
		option.TrueValues(t.TrueValues...)
	}
	if t.FalseValues != nil {
		option.FalseValues(t.FalseValues...)
	}
}
