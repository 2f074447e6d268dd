package recordmap

import (
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// EnsureStructType returns struct type for struct, pointer or slice type, otherwise nil
func EnsureStructType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Struct:
		return t
	case reflect.Ptr, reflect.Slice:
		return EnsureStructType(t.Elem())
	}
	return nil
}

// structPointer returns pointer to a struct of type t held by value, structs are copied
func structPointer(value interface{}, t reflect.Type) (unsafe.Pointer, error) {
	if value == nil {
		return nil, ErrTypeMismatch
	}
	rValue := reflect.ValueOf(value)
	switch {
	case rValue.Kind() == reflect.Ptr && rValue.Type().Elem() == t:
		if rValue.IsNil() {
			return nil, ErrTypeMismatch
		}
		return xunsafe.AsPointer(value), nil
	case rValue.Type() == t:
		dup := reflect.New(t)
		dup.Elem().Set(rValue)
		return xunsafe.AsPointer(dup.Interface()), nil
	}
	return nil, ErrTypeMismatch
}
