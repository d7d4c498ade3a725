package mat73

import (
	"reflect"
	"strings"
)

// attrString reads a named attribute off a *hdf5.Group or *hdf5.Dataset
// via reflection, the same technique internal/decode and internal/mcos
// use for the same reason: the attribute slice's element type lives in
// an internal package this module cannot import by name.
func attrString(obj any, name string) (string, bool) {
	m := reflect.ValueOf(obj).MethodByName("Attributes")
	if !m.IsValid() {
		return "", false
	}
	out := m.Call(nil)
	if len(out) != 2 || !out[1].IsNil() {
		return "", false
	}
	attrs := out[0]
	if attrs.Kind() != reflect.Slice {
		return "", false
	}
	for i := 0; i < attrs.Len(); i++ {
		el := attrs.Index(i)
		if el.Kind() == reflect.Ptr {
			if el.IsNil() {
				continue
			}
			el = el.Elem()
		}
		nameField := el.FieldByName("Name")
		if !nameField.IsValid() || nameField.Kind() != reflect.String || nameField.String() != name {
			continue
		}
		dataField := el.FieldByName("Data")
		if !dataField.IsValid() {
			return "", true
		}
		b, _ := dataField.Interface().([]byte)
		return strings.TrimRight(string(b), "\x00"), true
	}
	return "", false
}
