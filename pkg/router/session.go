package router

import (
	"context"
	"reflect"
	"strings"

	"github.com/questclash/backend/pkg/xcontext"
)

// loadSessionValues fills request fields tagged with session from the
// cookie session. A tag of the form session:"name,delete" consumes the
// value so it cannot be replayed.
func loadSessionValues(ctx context.Context, req any) error {
	v := reflect.ValueOf(req).Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	store := xcontext.SessionStore(ctx)
	session, err := store.Get(xcontext.HTTPRequest(ctx))
	if err != nil {
		return err
	}

	needSave := false
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("session")
		if tag == "" {
			continue
		}

		name, option, _ := strings.Cut(tag, ",")
		if value, ok := session.Values[name]; ok {
			fv := reflect.ValueOf(value)
			if fv.Type().AssignableTo(t.Field(i).Type) {
				v.Field(i).Set(fv)
			}
		}

		if option == "delete" {
			delete(session.Values, name)
			needSave = true
		}
	}

	if needSave {
		return store.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx), session)
	}

	return nil
}

// saveSessionValues persists response fields tagged with session into the
// cookie session.
func saveSessionValues(ctx context.Context, resp any) error {
	v := reflect.ValueOf(resp)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil
	}

	store := xcontext.SessionStore(ctx)
	session, err := store.Get(xcontext.HTTPRequest(ctx))
	if err != nil {
		return err
	}

	needSave := false
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("session")
		if tag == "" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		session.Values[name] = v.Field(i).Interface()
		needSave = true
	}

	if needSave {
		return store.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx), session)
	}

	return nil
}
