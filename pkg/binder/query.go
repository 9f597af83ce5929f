package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Query fills the fields of the struct pointed to by v from r's query string.
// Field names come from the `query` tag, falling back to the lowercased field
// name; `query:"-"` skips a field. Absent parameters leave fields untouched.
// Supported kinds: string, bool, signed and unsigned integers, and pointers to them.
func Query(r *http.Request, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrFailedToParseQuery)
	}
	rv = rv.Elem()
	rt := rv.Type()
	values := r.URL.Query()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		name := paramName(sf)
		if name == "" {
			continue
		}
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := setField(field, raw[0]); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFailedToParseQuery, name, err)
		}
	}
	return nil
}

func paramName(sf reflect.StructField) string {
	tag, ok := sf.Tag.Lookup("query")
	if !ok || tag == "" {
		return strings.ToLower(sf.Name)
	}
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func setField(field reflect.Value, value string) error {
	if field.Kind() == reflect.Pointer {
		ptr := reflect.New(field.Type().Elem())
		if err := setField(ptr.Elem(), value); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid bool %q", value)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint %q", value)
		}
		field.SetUint(n)
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}
