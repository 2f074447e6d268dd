package recordmap

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// Marker records which mapped fields were present in a decoded record.
// The holder is a struct field tagged setMarker:"true" pointing to a struct of bool fields
// named after the mapped fields.
type Marker struct {
	t      reflect.Type
	holder *xunsafe.Field
	fields []*xunsafe.Field
	index  map[string]int
}

// Index returns marker field index or -1
func (m *Marker) Index(name string) int {
	if m == nil {
		return -1
	}
	pos, ok := m.index[name]
	if !ok || m.fields[pos] == nil {
		return -1
	}
	return pos
}

// Holder returns the marker holder field
func (m *Marker) Holder() *xunsafe.Field {
	return m.holder
}

// Ensure allocates marker holder when nil and returns its pointer
func (m *Marker) Ensure(ptr unsafe.Pointer) unsafe.Pointer {
	if m.holder.IsNil(ptr) {
		holder := reflect.New(m.holder.Type.Elem())
		reflect.NewAt(m.holder.Type, m.holder.Pointer(ptr)).Elem().Set(holder)
	}
	return m.holder.ValuePointer(ptr)
}

// SetAll sets all marker fields with supplied flag
func (m *Marker) SetAll(ptr unsafe.Pointer, flag bool) {
	markerPtr := m.Ensure(ptr)
	for _, field := range m.fields {
		if field != nil {
			field.SetBool(markerPtr, flag)
		}
	}
}

// Set sets field marker
func (m *Marker) Set(ptr unsafe.Pointer, index int, flag bool) error {
	if index < 0 || index >= len(m.fields) || m.fields[index] == nil {
		return fmt.Errorf("field at index %v was missing in set marker", index)
	}
	m.fields[index].SetBool(m.Ensure(ptr), flag)
	return nil
}

// IsSet returns true if field has been set, all fields are considered set when holder is nil
func (m *Marker) IsSet(ptr unsafe.Pointer, index int) bool {
	if m.holder.IsNil(ptr) {
		return true
	}
	if index < 0 || index >= len(m.fields) || m.fields[index] == nil {
		return false
	}
	return m.fields[index].Bool(m.holder.ValuePointer(ptr))
}

func (m *Marker) init() error {
	holderType := EnsureStructType(m.holder.Type)
	if m.holder.Type.Kind() != reflect.Ptr || holderType == nil {
		return fmt.Errorf("marker holder %v has to be a pointer to struct, but had %v", m.holder.Name, m.holder.Type)
	}
	m.fields = make([]*xunsafe.Field, len(m.index))
	for i := 0; i < holderType.NumField(); i++ {
		markerField := holderType.Field(i)
		pos, ok := m.index[markerField.Name]
		if !ok {
			return fmt.Errorf("marker field: '%v' does not have corresponding struct field", markerField.Name)
		}
		if markerField.Type.Kind() != reflect.Bool {
			return fmt.Errorf("marker field: '%v' has to be bool", markerField.Name)
		}
		m.fields[pos] = xunsafe.NewField(markerField)
	}
	return nil
}

// NewMarker returns struct field set marker or nil when struct has no marker holder
func NewMarker(t reflect.Type) (*Marker, error) {
	if t = EnsureStructType(t); t == nil {
		return nil, ErrNotStruct
	}
	result := &Marker{t: t, index: make(map[string]int, t.NumField())}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if IsSetMarker(field.Tag) {
			result.holder = xunsafe.NewField(field)
			continue
		}
		result.index[field.Name] = len(result.index)
	}
	if result.holder == nil {
		return nil, nil
	}
	return result, result.init()
}

// GenMarkerFields generates marker struct fields for all fields of t but the marker holder
func GenMarkerFields(t reflect.Type) []reflect.StructField {
	var result []reflect.StructField
	if t = EnsureStructType(t); t == nil {
		return result
	}
	boolType := reflect.TypeOf(true)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if IsSetMarker(field.Tag) || !field.IsExported() {
			continue
		}
		result = append(result, reflect.StructField{Name: field.Name, Type: boolType})
	}
	return result
}
