package serializer

import "reflect"

// isNilModel reports whether model is nil or a typed nil pointer, map, or slice.
func isNilModel(model any) bool {
	if model == nil {
		return true
	}
	v := reflect.ValueOf(model)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
