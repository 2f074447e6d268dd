package recordmap

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/viant/recordmap/conv"
	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

// ClassMap maps struct fields to record columns.
// A class map is configured by a single goroutine, Freeze publishes it for concurrent decoding and encoding.
type ClassMap struct {
	rType       reflect.Type
	fields      []*FieldMap
	byName      map[string]*FieldMap
	marker      *Marker
	options     *conv.Options
	converters  map[reflect.Type]conv.TypeConverter
	converter   *conv.Converter
	tagName     string
	caseFormat  text.CaseFormat
	hasHeader   bool
	concurrency int
	frozen      atomic.Bool
	once        sync.Once
}

// Type returns mapped struct type
func (c *ClassMap) Type() reflect.Type {
	return c.rType
}

// Field returns field mapping by struct field name or nil
func (c *ClassMap) Field(name string) *FieldMap {
	return c.byName[name]
}

// Map is an alias of Field panicking when field does not exist
func (c *ClassMap) Map(name string) *FieldMap {
	ret := c.Field(name)
	if ret == nil {
		panic(fmt.Sprintf("field %v was missing in %v", name, c.rType))
	}
	return ret
}

// Fields returns field mappings in declaration order
func (c *ClassMap) Fields() []*FieldMap {
	return c.fields
}

// Options returns global type conversion options; changes made after Freeze have no effect
func (c *ClassMap) Options() *conv.Options {
	return c.options
}

// Marker returns presence marker or nil
func (c *ClassMap) Marker() *Marker {
	return c.marker
}

// Converter returns type converter, nil before Freeze
func (c *ClassMap) Converter() *conv.Converter {
	if !c.IsFrozen() {
		return nil
	}
	return c.converter
}

// HasHeader returns true if the first record is a header
func (c *ClassMap) HasHeader() bool {
	return c.hasHeader
}

// Header returns column names of mapped fields in write order, unassigned columns are empty
func (c *ClassMap) Header() []string {
	fields := c.writeFields()
	ret := make([]string, len(fields))
	for i, field := range fields {
		if field != nil {
			ret[i] = field.column()
		}
	}
	return ret
}

// IsFrozen returns true once mapping is published
func (c *ClassMap) IsFrozen() bool {
	return c.frozen.Load()
}

// Freeze resolves field options against global options and rejects further mapping changes
func (c *ClassMap) Freeze() {
	c.once.Do(func() {
		c.converter = conv.NewConverter(c.options)
		for t, converter := range c.converters {
			c.converter.Register(t, converter)
		}
		for _, field := range c.fields {
			field.resolved = c.converter.Resolve(field.data.TypeConverterOptions)
		}
		c.frozen.Store(true)
	})
}

// readFields returns mapped fields, ignored fields are skipped
func (c *ClassMap) readFields() []*FieldMap {
	ret := make([]*FieldMap, 0, len(c.fields))
	for _, field := range c.fields {
		if !field.data.Ignore {
			ret = append(ret, field)
		}
	}
	return ret
}

// positions assigns record columns to mapped fields: a field with an explicit Index takes that column,
// the remaining fields fill free columns in declaration order
func (c *ClassMap) positions() ([]*FieldMap, []int) {
	fields := c.readFields()
	positions := make([]int, len(fields))
	taken := make(map[int]bool, len(fields))
	for i, field := range fields {
		if field.data.Index >= 0 {
			positions[i] = field.data.Index
			taken[field.data.Index] = true
		}
	}
	next := 0
	for i, field := range fields {
		if field.data.Index >= 0 {
			continue
		}
		for taken[next] {
			next++
		}
		positions[i] = next
		taken[next] = true
	}
	return fields, positions
}

// writeFields returns mapped fields by column, unassigned columns are nil.
// When explicit indexes collide the first declared field is written.
func (c *ClassMap) writeFields() []*FieldMap {
	fields, positions := c.positions()
	size := 0
	for _, position := range positions {
		if position >= size {
			size = position + 1
		}
	}
	ret := make([]*FieldMap, size)
	for i, field := range fields {
		if ret[positions[i]] == nil {
			ret[positions[i]] = field
		}
	}
	return ret
}

func (c *ClassMap) defaultName(field reflect.StructField, caseFormat text.CaseFormat) string {
	if caseFormat == "" {
		caseFormat = c.caseFormat
	}
	if caseFormat == "" {
		return field.Name
	}
	if field.Name == "ID" {
		switch caseFormat {
		case text.CaseFormatLower, text.CaseFormatLowerCamel, text.CaseFormatLowerUnderscore:
			return "id"
		}
	}
	src := text.DetectCaseFormat(field.Name)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(field.Name, caseFormat)
}

func (c *ClassMap) init() error {
	for i := 0; i < c.rType.NumField(); i++ {
		field := c.rType.Field(i)
		if !field.IsExported() || IsSetMarker(field.Tag) {
			continue
		}
		tag, err := ParseTag(field, c.tagName)
		if err != nil {
			return err
		}
		fieldMap := &FieldMap{classMap: c, markerIndex: c.marker.Index(field.Name)}
		fieldMap.data = FieldMapData{
			Member:               xunsafe.NewField(field),
			Index:                -1,
			TypeConverterOptions: conv.NewOptions(),
		}
		fieldMap.Name(c.defaultName(field, text.CaseFormat(tag.CaseFormat)))
		tag.apply(fieldMap)
		c.fields = append(c.fields, fieldMap)
		c.byName[field.Name] = fieldMap
	}
	return nil
}

// NewClassMap creates class map for supplied struct type, fields are mapped by csv and format tags
func NewClassMap(t reflect.Type, opts ...Option) (*ClassMap, error) {
	rType := EnsureStructType(t)
	if rType == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}
	ret := &ClassMap{
		rType:       rType,
		byName:      make(map[string]*FieldMap, rType.NumField()),
		options:     conv.NewOptions(),
		converters:  map[reflect.Type]conv.TypeConverter{},
		tagName:     TagName,
		hasHeader:   true,
		concurrency: runtime.GOMAXPROCS(0),
	}
	Options(opts).Apply(ret)
	var err error
	if ret.marker, err = NewMarker(rType); err != nil {
		return nil, err
	}
	if err = ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

// NewClassMapFor creates class map for T
func NewClassMapFor[T any](opts ...Option) (*ClassMap, error) {
	return NewClassMap(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}
