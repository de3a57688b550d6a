package convert

import (
	"encoding"
	"encoding/base64"
	"math/big"
	"reflect"
	"strconv"

	"github.com/signadot/jsondoc/debug"
	"github.com/signadot/jsondoc/ir"
)

// Unmarshaler is implemented by types that fill themselves from a node.
// A registered converter takes precedence.
type Unmarshaler interface {
	UnmarshalNode(*ir.Node) error
}

var (
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// FromNode fills the value target points to from n. Converters are
// looked up with ResolveForDeserialize for every value on the way, then
// the built-in rules mirror those of ToNode. Object members with no
// matching struct field are ignored; null leaves a zero value.
func (r *Registry) FromNode(n *ir.Node, target any) error {
	if n == nil {
		return ir.ErrNilNode
	}
	val := reflect.ValueOf(target)
	if !val.IsValid() || val.Kind() != reflect.Pointer || val.IsNil() {
		return &ConvertError{Type: reflect.TypeOf(target), Err: ErrTarget}
	}
	return r.fromValue(n, val.Elem(), ir.Pointer{})
}

func (r *Registry) fromValue(n *ir.Node, val reflect.Value, path ir.Pointer) error {
	if n == nil {
		return convErr(path, val.Type(), ir.ErrNilNode, "")
	}
	typ := val.Type()
	if conv := r.ResolveForDeserialize(typ); conv != nil {
		got, err := conv.FromNode(n)
		if err != nil {
			return convErr(path, typ, err, "")
		}
		if got == nil {
			return convErr(path, typ, ErrConversionFailed, "converter for %s returned nil", conv.Type)
		}
		if !assign(val, reflect.ValueOf(got)) {
			return convErr(path, typ, ErrConversionFailed, "converter for %s returned %T", conv.Type, got)
		}
		return nil
	}

	switch typ {
	case nodeType:
		val.Set(reflect.ValueOf(n.Clone()))
		return nil
	case nodeType.Elem():
		val.Set(reflect.ValueOf(n.Clone()).Elem())
		return nil
	}
	if typ.Kind() == reflect.Pointer {
		if n.Type == ir.NullType {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return r.fromValue(n, val.Elem(), path)
	}
	if val.CanAddr() && !builtinTypes[typ] {
		addr := val.Addr()
		if typ := addr.Type(); typ.Implements(unmarshalerType) {
			if err := addr.Interface().(Unmarshaler).UnmarshalNode(n); err != nil {
				return convErr(path, typ, err, "")
			}
			return nil
		}
		if typ.Implements(textUnmarshalerType) && n.Type == ir.StringType {
			if err := addr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(n.String)); err != nil {
				return convErr(path, typ, err, "")
			}
			return nil
		}
	}
	if n.Type == ir.NullType {
		val.Set(reflect.Zero(typ))
		return nil
	}

	switch typ {
	case numberType:
		num, err := expectNumber(n, typ, path)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(*num.Clone()))
		return nil
	case bigIntType:
		num, err := expectNumber(n, typ, path)
		if err != nil {
			return err
		}
		b, ok := num.BigInt()
		if !ok {
			return convErr(path, typ, ir.ErrNumber, "%s is not an integer", num)
		}
		val.Set(reflect.ValueOf(b).Elem())
		return nil
	case decimalType:
		num, err := expectNumber(n, typ, path)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(num.Decimal()))
		return nil
	case jsonNumberType:
		num, err := expectNumber(n, typ, path)
		if err != nil {
			return err
		}
		val.SetString(num.String())
		return nil
	}

	switch typ.Kind() {
	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return convErr(path, typ, ErrNoConverter, "no converter for interface")
		}
		if v := toAny(n); v != nil {
			val.Set(reflect.ValueOf(v))
		} else {
			val.Set(reflect.Zero(typ))
		}
		return nil
	case reflect.Bool:
		if n.Type != ir.BoolType {
			return mismatch(path, typ, ir.BoolType, n)
		}
		val.SetBool(n.Bool)
		return nil
	case reflect.String:
		if n.Type != ir.StringType {
			return mismatch(path, typ, ir.StringType, n)
		}
		val.SetString(n.String)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		num, err := expectNumber(n, typ, path)
		if err != nil {
			return err
		}
		i, ok := num.Int64()
		if !ok || val.OverflowInt(i) {
			return convErr(path, typ, ir.ErrNumber, "%s does not fit", num)
		}
		val.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		num, err := expectNumber(n, typ, path)
		if err != nil {
			return err
		}
		b, ok := num.BigInt()
		if !ok || b.Sign() < 0 || !b.IsUint64() || val.OverflowUint(b.Uint64()) {
			return convErr(path, typ, ir.ErrNumber, "%s does not fit", num)
		}
		val.SetUint(b.Uint64())
		return nil
	case reflect.Float32, reflect.Float64:
		num, err := expectNumber(n, typ, path)
		if err != nil {
			return err
		}
		f := num.Float64()
		if val.OverflowFloat(f) {
			return convErr(path, typ, ir.ErrNumber, "%s does not fit", num)
		}
		val.SetFloat(f)
		return nil
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 && n.Type == ir.StringType {
			b, err := base64.StdEncoding.DecodeString(n.String)
			if err != nil {
				return convErr(path, typ, err, "")
			}
			val.SetBytes(b)
			return nil
		}
		if n.Type != ir.ArrayType {
			return mismatch(path, typ, ir.ArrayType, n)
		}
		s := reflect.MakeSlice(typ, len(n.Values), len(n.Values))
		for i, v := range n.Values {
			if err := r.fromValue(v, s.Index(i), path.Elem(i)); err != nil {
				return err
			}
		}
		val.Set(s)
		return nil
	case reflect.Array:
		if n.Type != ir.ArrayType {
			return mismatch(path, typ, ir.ArrayType, n)
		}
		val.SetZero()
		for i, v := range n.Values {
			if i >= val.Len() {
				break
			}
			if err := r.fromValue(v, val.Index(i), path.Elem(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		return r.fromObjectToMap(n, val, path)
	case reflect.Struct:
		return r.fromObjectToStruct(n, val, path)
	}
	return convErr(path, typ, ErrNoConverter, "")
}

func (r *Registry) fromObjectToMap(n *ir.Node, val reflect.Value, path ir.Pointer) error {
	typ := val.Type()
	if n.Type != ir.ObjectType {
		return mismatch(path, typ, ir.ObjectType, n)
	}
	if val.IsNil() {
		val.Set(reflect.MakeMapWithSize(typ, len(n.Fields)))
	}
	for i, name := range n.Fields {
		k := reflect.New(typ.Key()).Elem()
		if err := setMapKey(k, name); err != nil {
			return convErr(path.Field(name), typ.Key(), err, "bad key %q", name)
		}
		e := reflect.New(typ.Elem()).Elem()
		if err := r.fromValue(n.Values[i], e, path.Field(name)); err != nil {
			return err
		}
		val.SetMapIndex(k, e)
	}
	return nil
}

func setMapKey(k reflect.Value, name string) error {
	if k.Kind() == reflect.String {
		k.SetString(name)
		return nil
	}
	if tu, ok := k.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText([]byte(name))
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(name, 10, k.Type().Bits())
		if err != nil {
			return err
		}
		k.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(name, 10, k.Type().Bits())
		if err != nil {
			return err
		}
		k.SetUint(u)
		return nil
	}
	return ErrNoConverter
}

func (r *Registry) fromObjectToStruct(n *ir.Node, val reflect.Value, path ir.Pointer) error {
	typ := val.Type()
	if n.Type != ir.ObjectType {
		return mismatch(path, typ, ir.ObjectType, n)
	}
	fs := structFields(typ)
	for i, name := range n.Fields {
		f := lookupField(fs, name)
		if f == nil {
			if debug.Convert() {
				debug.Logf("ignoring member %q at %s: no field in %s", name, path, typ)
			}
			continue
		}
		fv, ok := fieldByIndex(val, f.index, true)
		if !ok || !fv.CanSet() {
			continue
		}
		if err := r.fromValue(n.Values[i], fv, path.Field(name)); err != nil {
			return err
		}
	}
	return nil
}

func expectNumber(n *ir.Node, typ reflect.Type, path ir.Pointer) (*ir.Number, error) {
	if n.Type != ir.NumberType || n.Number == nil {
		return nil, mismatch(path, typ, ir.NumberType, n)
	}
	return n.Number, nil
}

func mismatch(path ir.Pointer, typ reflect.Type, want ir.Type, n *ir.Node) error {
	return &ConvertError{
		Path: path,
		Type: typ,
		Err:  &ir.TypeMismatchError{Name: path.String(), Expected: want, Actual: n.Type},
	}
}

// assign stores got in dst, following the same steps as
// ResolveForDeserialize in reverse: directly, through a pointer in
// either direction, or into an embedded field.
func assign(dst, got reflect.Value) bool {
	gt := got.Type()
	dt := dst.Type()
	switch {
	case gt.AssignableTo(dt):
		dst.Set(got)
		return true
	case dt.Kind() == reflect.Pointer && gt.AssignableTo(dt.Elem()):
		p := reflect.New(dt.Elem())
		p.Elem().Set(got)
		dst.Set(p)
		return true
	case gt.Kind() == reflect.Pointer && !got.IsNil() && gt.Elem().AssignableTo(dt):
		dst.Set(got.Elem())
		return true
	}
	if dt.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dt.Elem()))
		}
		return assign(dst.Elem(), got)
	}
	if dt.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < dt.NumField(); i++ {
		if !dt.Field(i).Anonymous {
			continue
		}
		f := dst.Field(i)
		if f.CanSet() && assign(f, got) {
			return true
		}
	}
	return false
}

// ToAny converts n to plain Go values: nil, bool, string, []any,
// map[string]any, and for numbers int64 (Int32 and Int64), *big.Int or
// decimal.Decimal. Keyword and raw values become their text.
func (r *Registry) ToAny(n *ir.Node) any {
	return toAny(n)
}

func toAny(n *ir.Node) any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case ir.BoolType:
		return n.Bool
	case ir.NumberType:
		switch n.Number.Kind {
		case ir.Int32, ir.Int64:
			return n.Number.Int
		case ir.BigInt:
			return new(big.Int).Set(n.Number.Big)
		default:
			return n.Number.Dec
		}
	case ir.StringType, ir.KeywordType, ir.RawType:
		return n.String
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = toAny(v)
		}
		return res
	case ir.ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			res[f] = toAny(n.Values[i])
		}
		return res
	}
	return nil
}

