package mcos

import "reflect"

// reflectNameData reads the exported Name and Data fields off a value
// of github.com/scigolib/hdf5's internal *core.Attribute type, which
// this package cannot import by name. This duplicates
// decode.reflectAttrBytes; it is not exported from that package, and
// this package otherwise has no dependency on decode's internals.
func reflectNameData(a any) (name string, data []byte, ok bool) {
	v := reflect.ValueOf(a)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", nil, false
	}
	nameField := v.FieldByName("Name")
	dataField := v.FieldByName("Data")
	if !nameField.IsValid() || nameField.Kind() != reflect.String || !dataField.IsValid() {
		return "", nil, false
	}
	b, _ := dataField.Interface().([]byte)
	return nameField.String(), b, true
}
