package decode

import (
	"reflect"
	"strings"
)

// reflectAttrString reads a named attribute off a *hdf5.Group or
// *hdf5.Dataset and interprets it as a null-terminated ASCII string,
// the encoding MATLAB uses for MATLAB_class.
//
// Both types expose an Attributes() ([]*core.Attribute, error) method
// whose element type lives in an internal package this module cannot
// import by name. Its Name and Data fields are exported, so reflection
// reaches them without naming the type — the same technique
// rawhdf5.ExtractSuperblock uses for the superblock.
func reflectAttrString(obj any, name string) (string, bool) {
	data, ok := reflectAttrBytes(obj, name)
	if !ok {
		return "", false
	}
	return strings.TrimRight(string(data), "\x00"), true
}

func reflectAttrBytes(obj any, name string) ([]byte, bool) {
	m := reflect.ValueOf(obj).MethodByName("Attributes")
	if !m.IsValid() {
		return nil, false
	}
	out := m.Call(nil)
	if len(out) != 2 {
		return nil, false
	}
	if !out[1].IsNil() {
		return nil, false
	}
	attrs := out[0]
	if attrs.Kind() != reflect.Slice {
		return nil, false
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
		if !nameField.IsValid() || nameField.Kind() != reflect.String {
			continue
		}
		if nameField.String() != name {
			continue
		}
		dataField := el.FieldByName("Data")
		if !dataField.IsValid() {
			return nil, true
		}
		b, _ := dataField.Interface().([]byte)
		return b, true
	}
	return nil, false
}
