package recordmap

import (
	"reflect"
	"unsafe"

	"github.com/viant/recordmap/conv"
	"github.com/viant/xunsafe"
)

// FieldMapData holds mapping of a struct field to a record column
type FieldMapData struct {
	Member               *xunsafe.Field
	Names                []string
	NameIndex            int
	Index                int // -1 when column is resolved by name or position
	Ignore               bool
	Default              *string
	Optional             bool
	TypeConverter        conv.TypeConverter
	TypeConverterOptions *conv.Options
}

// Type returns mapped field type
func (d *FieldMapData) Type() reflect.Type {
	return d.Member.Type
}

func (d *FieldMapData) value(ptr unsafe.Pointer) interface{} {
	return reflect.NewAt(d.Member.Type, d.Member.Pointer(ptr)).Elem().Interface()
}

func (d *FieldMapData) setValue(ptr unsafe.Pointer, value interface{}) {
	target := reflect.NewAt(d.Member.Type, d.Member.Pointer(ptr)).Elem()
	if value == nil {
		target.Set(reflect.Zero(d.Member.Type))
		return
	}
	target.Set(reflect.ValueOf(value))
}

// FieldMap maps a struct field, setters return the same handle for chaining
type FieldMap struct {
	classMap    *ClassMap
	data        FieldMapData
	resolved    *conv.Options
	markerIndex int
}

// ClassMap returns owning class map
func (f *FieldMap) ClassMap() *ClassMap {
	return f.classMap
}

// Data returns field mapping data
func (f *FieldMap) Data() *FieldMapData {
	return &f.data
}

// Name replaces column names, subsequent names are alternates tried in order
func (f *FieldMap) Name(names ...string) *FieldMap {
	f.mutable()
	f.data.Names = append(make([]string, 0, len(names)), names...)
	return f
}

// NameIndex sets which occurrence of a duplicated column name is used
func (f *FieldMap) NameIndex(index int) *FieldMap {
	f.mutable()
	f.data.NameIndex = index
	return f
}

// Index sets column position, it takes precedence over names
func (f *FieldMap) Index(index int) *FieldMap {
	f.mutable()
	f.data.Index = index
	return f
}

// Ignore excludes field from reading and writing
func (f *FieldMap) Ignore(ignore bool) *FieldMap {
	f.mutable()
	f.data.Ignore = ignore
	return f
}

// Default sets text used when column is missing or empty
func (f *FieldMap) Default(text string) *FieldMap {
	f.mutable()
	f.data.Default = &text
	return f
}

// Optional allows column to be missing
func (f *FieldMap) Optional() *FieldMap {
	f.mutable()
	f.data.Optional = true
	return f
}

// TypeConverter sets field specific converter
func (f *FieldMap) TypeConverter(converter conv.TypeConverter) *FieldMap {
	f.mutable()
	f.data.TypeConverter = converter
	return f
}

// TypeConverterOption returns type conversion options builder of this field
func (f *FieldMap) TypeConverterOption() *TypeConverterOption {
	return &TypeConverterOption{fieldMap: f}
}

func (f *FieldMap) mutable() {
	if f.classMap != nil && f.classMap.IsFrozen() {
		panic(ErrFrozen)
	}
}

func (f *FieldMap) column() string {
	if len(f.data.Names) > 0 {
		return f.data.Names[0]
	}
	return f.data.Member.Name
}

func (f *FieldMap) fromString(text string) (interface{}, error) {
	if converter := f.data.TypeConverter; converter != nil {
		if f.classMap.converter.IsNull(text, f.resolved) {
			return reflect.Zero(f.data.Member.Type).Interface(), nil
		}
		value, err := converter.FromString(text, f.resolved)
		if err != nil {
			return nil, &conv.ConversionError{Field: f.column(), Text: text, Type: f.data.Member.Type, Err: err}
		}
		return value, nil
	}
	value, err := f.classMap.converter.FromString(text, f.data.Member.Type, f.resolved)
	if err != nil {
		return nil, withField(err, f.column())
	}
	return value, nil
}

func (f *FieldMap) toString(value interface{}) (string, error) {
	if converter := f.data.TypeConverter; converter != nil && value != nil {
		text, err := converter.ToString(value, f.resolved)
		if err != nil {
			return "", &conv.ConversionError{Field: f.column(), Type: f.data.Member.Type, Err: err}
		}
		return text, nil
	}
	text, err := f.classMap.converter.ToString(value, f.resolved)
	if err != nil {
		return "", withField(err, f.column())
	}
	return text, nil
}

func withField(err error, field string) error {
	if conversionErr, ok := err.(*conv.ConversionError); ok {
		conversionErr.Field = field
	}
	return err
}
