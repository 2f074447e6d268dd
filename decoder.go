package recordmap

import (
	"fmt"
	"reflect"
)

type binding struct {
	field  *FieldMap
	column int // -1 when column is absent
}

// Decoder decodes records into structs of a class map type
type Decoder struct {
	classMap *ClassMap
	bindings []binding
}

// ClassMap returns decoder class map
func (d *Decoder) ClassMap() *ClassMap {
	return d.classMap
}

// Decode decodes record into dest, dest has to be a pointer to the class map struct
func (d *Decoder) Decode(record []string, dest interface{}) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.IsNil() || destValue.Type().Elem() != d.classMap.rType {
		return fmt.Errorf("%w: expected %v, but had %T", ErrTypeMismatch, reflect.PointerTo(d.classMap.rType), dest)
	}
	ptr, _ := structPointer(dest, d.classMap.rType)
	marker := d.classMap.marker
	if marker != nil {
		marker.SetAll(ptr, false)
	}
	for _, bound := range d.bindings {
		field := bound.field
		text, ok := "", false
		if bound.column >= 0 && bound.column < len(record) {
			text, ok = record[bound.column], true
		}
		if (!ok || text == "") && field.data.Default != nil {
			text, ok = *field.data.Default, true
		}
		if !ok {
			if field.data.Optional {
				continue
			}
			return fmt.Errorf("%w: %v at %v", ErrMissingColumn, field.column(), bound.column)
		}
		value, err := field.fromString(text)
		if err != nil {
			return err
		}
		field.data.setValue(ptr, value)
		if marker != nil && field.markerIndex != -1 && !d.classMap.converter.IsNull(text, field.resolved) {
			if err = marker.Set(ptr, field.markerIndex, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewDecoder creates decoder freezing class map; columns are matched by explicit index, then header names.
// Without header the remaining fields take free columns in declaration order, as the Encoder writes them.
func NewDecoder(classMap *ClassMap, header []string) (*Decoder, error) {
	classMap.Freeze()
	fields, positions := classMap.positions()
	ret := &Decoder{classMap: classMap, bindings: make([]binding, 0, len(fields))}
	for i, field := range fields {
		column := positions[i]
		if header != nil && field.data.Index < 0 {
			column = lookupColumn(header, field.data.Names, field.data.NameIndex)
			if column == -1 && !field.data.Optional && field.data.Default == nil {
				return nil, fmt.Errorf("%w: %v, header: %v", ErrMissingColumn, field.column(), header)
			}
		}
		ret.bindings = append(ret.bindings, binding{field: field, column: column})
	}
	return ret, nil
}

func lookupColumn(header []string, names []string, nameIndex int) int {
	for _, name := range names {
		occurrence := 0
		for i, candidate := range header {
			if candidate != name {
				continue
			}
			if occurrence == nameIndex {
				return i
			}
			occurrence++
		}
	}
	return -1
}
