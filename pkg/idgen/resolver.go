package idgen

import (
	"context"
	"reflect"
	"strings"
)

// TagName is the struct tag read by AssignIDs.
const TagName = "idgen"

// AssignIDs fills empty string fields of the struct pointed to by target
// that carry an `idgen:"<name>[,global][,prefix=<p>]"` tag. Fields that
// already hold a value are left alone.
func AssignIDs(ctx context.Context, gen IdGenerator, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return configErr("", "assign target must be a non-nil struct pointer, got %T", target)
	}

	elem := rv.Elem()
	typ := elem.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag, ok := field.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}

		ts := parseTag(tag)
		fv := elem.Field(i)
		if !field.IsExported() || fv.Kind() != reflect.String {
			return configErr(ts.name, "field %s.%s must be an exported string", typ.Name(), field.Name)
		}
		if fv.String() != "" {
			continue
		}

		var (
			id  string
			err error
		)
		if ts.global {
			id, err = gen.GenerateGlobalID(ctx, ts.name)
		} else {
			id, err = gen.GenerateID(ctx, ts.name)
		}
		if err != nil {
			return err
		}
		fv.SetString(ts.prefix + id)
	}
	return nil
}

type tagSpec struct {
	name   string
	global bool
	prefix string
}

func parseTag(tag string) tagSpec {
	parts := strings.Split(tag, ",")
	ts := tagSpec{name: strings.TrimSpace(parts[0])}
	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)
		switch {
		case opt == "global":
			ts.global = true
		case strings.HasPrefix(opt, "prefix="):
			ts.prefix = strings.TrimPrefix(opt, "prefix=")
		}
	}
	return ts
}
