package model

import (
	"reflect"
	"strings"
)

// NormalizeEntity trims string fields on a pointer-to-struct entity and
// lowercases any field named Email. Applied at the boundary before
// validation so stored data is tidy regardless of input source.
func NormalizeEntity(entity any) {
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	t := s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Kind() != reflect.String || !f.CanSet() {
			continue
		}
		val := strings.TrimSpace(f.String())
		if t.Field(i).Name == "Email" {
			val = strings.ToLower(val)
		}
		f.SetString(val)
	}
}
