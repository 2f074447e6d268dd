package recordmap

import (
	"github.com/viant/recordmap/conv"
	"golang.org/x/text/language"
)

// TypeConverterOption configures type conversion options of a single field.
// Every setter returns the owning FieldMap so that mapping calls can be chained.
type TypeConverterOption struct {
	fieldMap *FieldMap
}

// Locale sets locale used for number separators
func (o *TypeConverterOption) Locale(tag language.Tag) *FieldMap {
	o.options().SetLocale(tag)
	return o.fieldMap
}

// DateTimeStyles sets date/time parsing styles
func (o *TypeConverterOption) DateTimeStyles(style conv.DateTimeStyles) *FieldMap {
	o.options().SetDateTimeStyle(style)
	return o.fieldMap
}

// NumberStyles sets number parsing styles
func (o *TypeConverterOption) NumberStyles(style conv.NumberStyles) *FieldMap {
	o.options().SetNumberStyle(style)
	return o.fieldMap
}

// Formats replaces formats, calling it without arguments leaves an empty list
func (o *TypeConverterOption) Formats(formats ...string) *FieldMap {
	o.options().SetFormats(formats...)
	return o.fieldMap
}

// BooleanValues appends strings read as true (isTrue) or false, existing values are removed first when clearValues is set
func (o *TypeConverterOption) BooleanValues(isTrue, clearValues bool, values ...string) *FieldMap {
	o.options().AddBooleanValues(isTrue, clearValues, values...)
	return o.fieldMap
}

// TrueValues replaces strings read as true
func (o *TypeConverterOption) TrueValues(values ...string) *FieldMap {
	return o.BooleanValues(true, true, values...)
}

// FalseValues replaces strings read as false
func (o *TypeConverterOption) FalseValues(values ...string) *FieldMap {
	return o.BooleanValues(false, true, values...)
}

// NullValues replaces strings read as null
func (o *TypeConverterOption) NullValues(values ...string) *FieldMap {
	return o.NullValuesWith(true, values...)
}

// NullValuesWith appends strings read as null, existing values are removed first when clearValues is set
func (o *TypeConverterOption) NullValuesWith(clearValues bool, values ...string) *FieldMap {
	o.options().AddNullValues(clearValues, values...)
	return o.fieldMap
}

func (o *TypeConverterOption) options() *conv.Options {
	o.fieldMap.mutable()
	data := &o.fieldMap.data
	if data.TypeConverterOptions == nil {
		data.TypeConverterOptions = conv.NewOptions()
	}
	return data.TypeConverterOptions
}
