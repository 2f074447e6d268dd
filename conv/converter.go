package conv

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/viant/recordmap/internal/cache"
)

var (
	timeType            = reflect.TypeOf(time.Time{})
	durationType        = reflect.TypeOf(time.Duration(0))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// TypeConverter converts a single type from and to text
type TypeConverter interface {
	FromString(text string, opts *Options) (interface{}, error)
	ToString(value interface{}, opts *Options) (string, error)
}

// Funcs adapts functions to TypeConverter
type Funcs struct {
	From func(text string, opts *Options) (interface{}, error)
	To   func(value interface{}, opts *Options) (string, error)
}

// FromString calls From
func (f Funcs) FromString(text string, opts *Options) (interface{}, error) {
	if f.From == nil {
		return nil, ErrUnsupportedType
	}
	return f.From(text, opts)
}

// ToString calls To or formats value with %v
func (f Funcs) ToString(value interface{}, opts *Options) (string, error) {
	if f.To == nil {
		return fmt.Sprintf("%v", value), nil
	}
	return f.To(value, opts)
}

// Converter converts field text using global options merged with field options.
// It is safe for concurrent use once field options stop changing.
type Converter struct {
	global   *Options
	custom   sync.Map // map[reflect.Type]TypeConverter
	resolved *cache.SyncMap[uint64, *Options]
}

// NewConverter creates a converter, unset global options fall back to DefaultOptions
func NewConverter(global *Options) *Converter {
	base := DefaultOptions().Merge(global)
	base.resolved = true
	return &Converter{global: base, resolved: cache.NewSyncMap[uint64, *Options]()}
}

// Options returns resolved global options
func (c *Converter) Options() *Options {
	return c.global
}

// Register registers a custom converter for the supplied type
func (c *Converter) Register(t reflect.Type, converter TypeConverter) {
	c.custom.Store(t, converter)
}

// Resolve returns global options overridden by field options
func (c *Converter) Resolve(field *Options) *Options {
	if field == nil {
		return c.global
	}
	if field.resolved {
		return field
	}
	return c.resolved.GetOrCreate(field.Fingerprint(), func() *Options {
		ret := c.global.Merge(field)
		ret.resolved = true
		return ret
	})
}

// IsNull returns true if text is a null value for field options
func (c *Converter) IsNull(text string, field *Options) bool {
	return c.Resolve(field).IsNullValue(text)
}

// FromString converts text into a value of type t.
// Text matching a null value yields the zero value of t.
func (c *Converter) FromString(text string, t reflect.Type, field *Options) (interface{}, error) {
	opts := c.Resolve(field)
	if opts.IsNullValue(text) {
		return reflect.Zero(t).Interface(), nil
	}
	value, err := c.fromString(text, t, opts)
	if err != nil {
		return nil, &ConversionError{Text: text, Type: t, Err: err}
	}
	return value.Interface(), nil
}

// ToString converts value to text; nil values yield the first null value or an empty string
func (c *Converter) ToString(value interface{}, field *Options) (string, error) {
	opts := c.Resolve(field)
	if value == nil {
		return nullText(opts), nil
	}
	rValue := reflect.ValueOf(value)
	text, err := c.toString(rValue, opts)
	if err != nil {
		return "", &ConversionError{Type: rValue.Type(), Err: err}
	}
	return text, nil
}

func (c *Converter) lookup(t reflect.Type) (TypeConverter, bool) {
	v, ok := c.custom.Load(t)
	if !ok {
		return nil, false
	}
	return v.(TypeConverter), true
}

func (c *Converter) fromString(text string, t reflect.Type, opts *Options) (reflect.Value, error) {
	if custom, ok := c.lookup(t); ok {
		v, err := custom.FromString(text, opts)
		if err != nil {
			return reflect.Value{}, err
		}
		if v == nil {
			return reflect.Zero(t), nil
		}
		return assignable(reflect.ValueOf(v), t)
	}
	if t.Kind() == reflect.Ptr {
		if text == "" {
			return reflect.Zero(t), nil
		}
		elem, err := c.fromString(text, t.Elem(), opts)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}
	switch t {
	case timeType:
		ts, err := parseTime(text, opts)
		return reflect.ValueOf(ts), err
	case durationType:
		d, err := time.ParseDuration(text)
		return reflect.ValueOf(d), err
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		ptr := reflect.New(t)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
	result := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		result.SetString(text)
	case reflect.Bool:
		v, err := parseBool(text, opts)
		if err != nil {
			return reflect.Value{}, err
		}
		result.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := parseInt(text, t.Bits(), opts)
		if err != nil {
			return reflect.Value{}, err
		}
		result.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := parseUint(text, t.Bits(), opts)
		if err != nil {
			return reflect.Value{}, err
		}
		result.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := parseFloat(text, t.Bits(), opts)
		if err != nil {
			return reflect.Value{}, err
		}
		result.SetFloat(v)
	case reflect.Slice:
		if t.Elem().Kind() != reflect.Uint8 {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
		}
		result.SetBytes([]byte(text))
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
		}
		result.Set(reflect.ValueOf(text))
	default:
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
	}
	return result, nil
}

func (c *Converter) toString(value reflect.Value, opts *Options) (string, error) {
	if custom, ok := c.lookup(value.Type()); ok {
		return custom.ToString(value.Interface(), opts)
	}
	switch value.Kind() {
	case reflect.Ptr, reflect.Interface:
		if value.IsNil() {
			return nullText(opts), nil
		}
		return c.toString(value.Elem(), opts)
	}
	switch value.Type() {
	case timeType:
		return formatTime(value.Interface().(time.Time), opts), nil
	case durationType:
		return time.Duration(value.Int()).String(), nil
	}
	if value.Type().Implements(textMarshalerType) {
		data, err := value.Interface().(encoding.TextMarshaler).MarshalText()
		return string(data), err
	}
	switch value.Kind() {
	case reflect.String:
		return value.String(), nil
	case reflect.Bool:
		return formatBool(value.Bool(), opts), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return formatInt(value.Int(), opts), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return formatUint(value.Uint(), opts), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(value.Float(), value.Type().Bits(), opts), nil
	case reflect.Slice:
		if value.Type().Elem().Kind() == reflect.Uint8 {
			return string(value.Bytes()), nil
		}
	}
	return "", fmt.Errorf("%w: %v", ErrUnsupportedType, value.Type())
}

func parseBool(text string, opts *Options) (bool, error) {
	if opts.IsTrueValue(text) {
		return true, nil
	}
	if opts.IsFalseValue(text) {
		return false, nil
	}
	switch normalizeSentinel(text) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidBool, text)
}

func formatBool(v bool, opts *Options) string {
	if v && len(opts.BooleanTrueValues) > 0 {
		return opts.BooleanTrueValues[0]
	}
	if !v && len(opts.BooleanFalseValues) > 0 {
		return opts.BooleanFalseValues[0]
	}
	return strconv.FormatBool(v)
}

func nullText(opts *Options) string {
	if len(opts.NullValues) > 0 {
		return opts.NullValues[0]
	}
	return ""
}

func assignable(value reflect.Value, t reflect.Type) (reflect.Value, error) {
	switch {
	case value.Type().AssignableTo(t):
		return value, nil
	case value.Type().ConvertibleTo(t):
		return value.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("converter returned %v, expected %v", value.Type(), t)
}
