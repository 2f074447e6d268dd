package conv

import (
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/language"
)

type valueList uint8

const (
	trueValueList valueList = 1 << iota
	falseValueList
	nullValueList
)

// Options represents type conversion options of a field or a global default.
// Pointer fields and nil Formats mean "inherit"; sentinel lists are never nil
// once created with NewOptions or modified with a setter.
type Options struct {
	// Locale drives number separators, nil inherits global locale
	Locale *language.Tag
	// DateTimeStyle controls date/time parsing permissiveness
	DateTimeStyle *DateTimeStyles
	// NumberStyle controls numeric parsing permissiveness
	NumberStyle *NumberStyles
	// Formats lists patterns tried in order; nil inherits, empty means none
	Formats []string
	// BooleanTrueValues lists strings read as true
	BooleanTrueValues []string
	// BooleanFalseValues lists strings read as false
	BooleanFalseValues []string
	// NullValues lists strings read as null
	NullValues []string

	configured valueList
	resolved   bool
}

// NewOptions creates empty options inheriting everything
func NewOptions() *Options {
	return &Options{
		BooleanTrueValues:  []string{},
		BooleanFalseValues: []string{},
		NullValues:         []string{},
	}
}

// DefaultOptions returns global defaults
func DefaultOptions() *Options {
	ret := NewOptions()
	ret.SetLocale(language.AmericanEnglish)
	ret.SetNumberStyle(NumberStyleFloat | NumberStyleAllowThousands)
	ret.SetDateTimeStyle(DateTimeStyleNone)
	return ret
}

// SetLocale sets locale, last write wins
func (o *Options) SetLocale(locale language.Tag) *Options {
	o.Locale = &locale
	return o
}

// SetDateTimeStyle sets date/time parsing style
func (o *Options) SetDateTimeStyle(style DateTimeStyles) *Options {
	o.DateTimeStyle = &style
	return o
}

// SetNumberStyle sets number parsing style
func (o *Options) SetNumberStyle(style NumberStyles) *Options {
	o.NumberStyle = &style
	return o
}

// SetFormats replaces formats; no arguments leaves an empty, non nil list
func (o *Options) SetFormats(formats ...string) *Options {
	o.Formats = append(make([]string, 0, len(formats)), formats...)
	return o
}

// AddBooleanValues appends true or false sentinel values, optionally clearing existing ones first
func (o *Options) AddBooleanValues(isTrue bool, clearValues bool, values ...string) *Options {
	if isTrue {
		o.BooleanTrueValues = appendValues(o.BooleanTrueValues, clearValues, values)
		o.configured |= trueValueList
		return o
	}
	o.BooleanFalseValues = appendValues(o.BooleanFalseValues, clearValues, values)
	o.configured |= falseValueList
	return o
}

// AddNullValues appends null sentinel values, optionally clearing existing ones first
func (o *Options) AddNullValues(clearValues bool, values ...string) *Options {
	o.NullValues = appendValues(o.NullValues, clearValues, values)
	o.configured |= nullValueList
	return o
}

// Clone returns a deep copy
func (o *Options) Clone() *Options {
	if o == nil {
		return NewOptions()
	}
	ret := &Options{
		BooleanTrueValues:  copyValues(o.BooleanTrueValues),
		BooleanFalseValues: copyValues(o.BooleanFalseValues),
		NullValues:         copyValues(o.NullValues),
		configured:         o.configured,
	}
	if o.Locale != nil {
		ret.SetLocale(*o.Locale)
	}
	if o.DateTimeStyle != nil {
		ret.SetDateTimeStyle(*o.DateTimeStyle)
	}
	if o.NumberStyle != nil {
		ret.SetNumberStyle(*o.NumberStyle)
	}
	if o.Formats != nil {
		ret.Formats = copyValues(o.Formats)
	}
	return ret
}

// Merge returns a copy of o with overrides applied in order.
// Set scalars and non nil Formats override; a sentinel list overrides when it
// was configured with a setter or is not empty.
func (o *Options) Merge(overrides ...*Options) *Options {
	ret := o.Clone()
	for _, override := range overrides {
		if override == nil {
			continue
		}
		if override.Locale != nil {
			ret.SetLocale(*override.Locale)
		}
		if override.DateTimeStyle != nil {
			ret.SetDateTimeStyle(*override.DateTimeStyle)
		}
		if override.NumberStyle != nil {
			ret.SetNumberStyle(*override.NumberStyle)
		}
		if override.Formats != nil {
			ret.Formats = copyValues(override.Formats)
		}
		if override.overrides(trueValueList, override.BooleanTrueValues) {
			ret.BooleanTrueValues = copyValues(override.BooleanTrueValues)
			ret.configured |= trueValueList
		}
		if override.overrides(falseValueList, override.BooleanFalseValues) {
			ret.BooleanFalseValues = copyValues(override.BooleanFalseValues)
			ret.configured |= falseValueList
		}
		if override.overrides(nullValueList, override.NullValues) {
			ret.NullValues = copyValues(override.NullValues)
			ret.configured |= nullValueList
		}
	}
	return ret
}

// Fingerprint returns options hash
func (o *Options) Fingerprint() uint64 {
	if o == nil {
		return 0
	}
	builder := strings.Builder{}
	if o.Locale != nil {
		builder.WriteString(o.Locale.String())
	}
	builder.WriteByte(0)
	if o.DateTimeStyle != nil {
		builder.WriteString(strconv.Itoa(int(*o.DateTimeStyle)))
	}
	builder.WriteByte(0)
	if o.NumberStyle != nil {
		builder.WriteString(strconv.Itoa(int(*o.NumberStyle)))
	}
	builder.WriteByte(0)
	builder.WriteString(strconv.Itoa(int(o.configured)))
	for _, list := range [][]string{o.Formats, o.BooleanTrueValues, o.BooleanFalseValues, o.NullValues} {
		builder.WriteByte(1)
		if list == nil {
			builder.WriteByte(2)
		}
		for _, item := range list {
			builder.WriteString(strconv.Quote(item))
		}
	}
	return xxh3.HashString(builder.String())
}

// IsNullValue returns true if text matches any null value
func (o *Options) IsNullValue(text string) bool {
	return o != nil && matchAny(o.NullValues, text)
}

// IsTrueValue returns true if text matches any boolean true value
func (o *Options) IsTrueValue(text string) bool {
	return o != nil && matchAny(o.BooleanTrueValues, text)
}

// IsFalseValue returns true if text matches any boolean false value
func (o *Options) IsFalseValue(text string) bool {
	return o != nil && matchAny(o.BooleanFalseValues, text)
}

func (o *Options) overrides(list valueList, values []string) bool {
	return o.configured&list != 0 || len(values) > 0
}

func (o *Options) locale() language.Tag {
	if o.Locale == nil {
		return language.AmericanEnglish
	}
	return *o.Locale
}

func (o *Options) numberStyle() NumberStyles {
	if o.NumberStyle == nil {
		return NumberStyleFloat | NumberStyleAllowThousands
	}
	return *o.NumberStyle
}

func (o *Options) dateTimeStyle() DateTimeStyles {
	if o.DateTimeStyle == nil {
		return DateTimeStyleNone
	}
	return *o.DateTimeStyle
}

func (o *Options) format() string {
	if len(o.Formats) == 0 {
		return ""
	}
	return o.Formats[0]
}

func appendValues(target []string, clearValues bool, values []string) []string {
	if clearValues || target == nil {
		target = make([]string, 0, len(values))
	}
	return append(target, values...)
}

func copyValues(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append(make([]string, 0, len(values)), values...)
}
