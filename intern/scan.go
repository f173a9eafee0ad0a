package intern

import (
	"github.com/bfastfmt/bfast/errs"
	"github.com/bfastfmt/bfast/value"
)

// Scan walks v's value graph, interning every object key it finds into
// b. It does not intern string-typed values, timestamps, UUIDs, or any
// other payload — only object keys are interned per spec.
func Scan(v value.Value, b *Builder) error {
	switch v.Kind() {
	case value.KindList, value.KindFloatArray:
		for _, item := range v.AsList() {
			if err := Scan(item, b); err != nil {
				return err
			}
		}
	case value.KindObject:
		obj := v.AsObject()
		for _, pair := range obj.Pairs() {
			if _, err := b.Intern(pair.Key); err != nil {
				return errs.AtPath(pair.Key, err)
			}
			if err := Scan(pair.Value, b); err != nil {
				return errs.AtPath(pair.Key, err)
			}
		}
	}

	return nil
}
