package value

import (
	"reflect"
	"regexp"
	"sort"

	"github.com/google/uuid"
)

// decimalGrammar is the canonical decimal textual grammar from the wire
// spec: an optional sign, an integer part, an optional fractional part,
// an optional exponent.
var decimalGrammar = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)

// ValidDecimal reports whether s matches the canonical decimal grammar.
// Hosts with an arbitrary-precision decimal type should format through
// it before calling Decimal; hosts without one can still round-trip the
// string form as long as it validates.
func ValidDecimal(s string) bool {
	return decimalGrammar.MatchString(s)
}

// FromUUID builds a canonical UUID value from a github.com/google/uuid
// identifier.
func FromUUID(id uuid.UUID) Value {
	return UUID(id.String())
}

// ToUUID parses v's canonical form back into a github.com/google/uuid
// identifier. v must have Kind() == KindUUID.
func ToUUID(v Value) (uuid.UUID, error) {
	return uuid.Parse(v.AsString())
}

// FromEnum unwraps a host enum-like type down to its underlying string
// representation, the same flattening the original B-FAST extension
// applied to Python Enum members before serializing.
func FromEnum(name string) Value {
	return String(name)
}

// FromSequence converts any ordered host sequence (slice, tuple, set,
// frozenset) into a List. Sets and frozensets have no wire-level
// identity distinct from an ordered list; callers that need to
// reconstruct set semantics on decode do so at the application layer.
func FromSequence(items []Value) Value {
	return List(items...)
}

// From converts an arbitrary Go value x into a Value, for callers that
// would rather hand BFAST a host struct than build a Value tree by
// hand. It tries, in order: x is already a Value; x implements
// Converter; reflection over x's underlying Go kind. A host type with
// no BFAST representation (a chan, a func, or a map whose keys are not
// strings) yields *ErrUnsupportedHostType. A struct whose fields are all
// unexported converts to an empty Object.
func From(x any) (Value, error) {
	if v, ok := x.(Value); ok {
		return v, nil
	}
	if c, ok := x.(Converter); ok {
		return c.ToBFAST()
	}

	return fromReflect(reflect.ValueOf(x))
}

// bfastTag is the struct tag fromReflect consults for field name
// overrides and skips, e.g. `bfast:"full_name"` or `bfast:"-"`.
const bfastTag = "bfast"

func fromReflect(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return Null(), nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}

		return fromReflect(rv.Elem())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int64(int64(rv.Uint())), nil //nolint:gosec
	case reflect.Float32, reflect.Float64:
		return Float64(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}

		return fromReflectSequence(rv)
	case reflect.Map:
		return fromReflectMap(rv)
	case reflect.Struct:
		return fromReflectStruct(rv)
	default:
		return Value{}, &ErrUnsupportedHostType{GoType: rv.Type().String()}
	}
}

func fromReflectSequence(rv reflect.Value) (Value, error) {
	items := make([]Value, rv.Len())
	for i := range items {
		v, err := fromReflect(rv.Index(i))
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}

	return FromSequence(items), nil
}

// fromReflectMap requires string-keyed maps; any other key type has no
// canonical BFAST object-key representation.
func fromReflectMap(rv reflect.Value) (Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return Value{}, &ErrUnsupportedHostType{GoType: rv.Type().String()}
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	obj := NewObject()
	for _, k := range keys {
		v, err := fromReflect(rv.MapIndex(reflect.ValueOf(k)))
		if err != nil {
			return Value{}, err
		}
		obj.Append(k, v)
	}

	return Obj(obj), nil
}

func fromReflectStruct(rv reflect.Value) (Value, error) {
	t := rv.Type()
	obj := NewObject()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}

		name := field.Name
		if tagVal, ok := field.Tag.Lookup(bfastTag); ok {
			if tagVal == "-" {
				continue
			}
			if tagVal != "" {
				name = tagVal
			}
		}

		v, err := fromReflect(rv.Field(i))
		if err != nil {
			return Value{}, err
		}
		obj.Append(name, v)
	}

	return Obj(obj), nil
}
