package recordmap

import (
	"fmt"
)

// Encoder encodes structs of a class map type into records
type Encoder struct {
	classMap *ClassMap
	fields   []*FieldMap
}

// Header returns header record
func (e *Encoder) Header() []string {
	return e.classMap.Header()
}

// Encode encodes src, a struct or pointer to struct of the class map type, into a record.
// Columns not assigned to any field are empty.
// Fields flagged as not set by the presence marker are written as null.
func (e *Encoder) Encode(src interface{}) ([]string, error) {
	ptr, err := structPointer(src, e.classMap.rType)
	if err != nil {
		return nil, fmt.Errorf("%w: expected %v, but had %T", err, e.classMap.rType, src)
	}
	marker := e.classMap.marker
	record := make([]string, len(e.fields))
	for i, field := range e.fields {
		if field == nil {
			continue
		}
		var value interface{}
		if marker == nil || field.markerIndex == -1 || marker.IsSet(ptr, field.markerIndex) {
			value = field.data.value(ptr)
		}
		if record[i], err = field.toString(value); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// NewEncoder creates encoder freezing class map
func NewEncoder(classMap *ClassMap) *Encoder {
	classMap.Freeze()
	return &Encoder{classMap: classMap, fields: classMap.writeFields()}
}
