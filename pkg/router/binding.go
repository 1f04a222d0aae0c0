package router

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// bindQuery fills obj from the request query string. Field names come from
// the json tag. Only basic kinds are supported, nested structs are not.
func bindQuery(req *http.Request, obj any) error {
	v := reflect.ValueOf(obj).Elem()
	t := v.Type()
	query := req.URL.Query()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		if !query.Has(name) {
			continue
		}

		s := query.Get(name)
		switch field.Type.Kind() {
		case reflect.String:
			v.Field(i).SetString(s)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value of %s: %w", name, err)
			}
			v.Field(i).SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value of %s: %w", name, err)
			}
			v.Field(i).SetUint(n)
		case reflect.Float32, reflect.Float64:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("invalid value of %s: %w", name, err)
			}
			v.Field(i).SetFloat(f)
		case reflect.Bool:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("invalid value of %s: %w", name, err)
			}
			v.Field(i).SetBool(b)
		default:
			return fmt.Errorf("unsupported type %s of field %s", field.Type.Kind(), name)
		}
	}

	return nil
}
