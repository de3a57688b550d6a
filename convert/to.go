package convert

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/signadot/jsondoc/ir"
)

// Marshaler is implemented by types that convert themselves to a node.
// A registered converter takes precedence.
type Marshaler interface {
	MarshalNode() (*ir.Node, error)
}

var (
	nodeType          = reflect.TypeFor[*ir.Node]()
	numberType        = reflect.TypeFor[ir.Number]()
	bigIntType        = reflect.TypeFor[big.Int]()
	decimalType       = reflect.TypeFor[decimal.Decimal]()
	jsonNumberType    = reflect.TypeFor[json.Number]()
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

	// handled before the marshaler interfaces, which some of them
	// implement
	builtinTypes = map[reflect.Type]bool{
		nodeType.Elem(): true,
		numberType:      true,
		bigIntType:      true,
		decimalType:     true,
		jsonNumberType:  true,
	}
)

// ToNode converts a Go value to a node. For each value, a converter
// registered for its exact dynamic type is used first. Otherwise the
// built-in rules apply: booleans, numbers of every Go kind, strings,
// *big.Int, decimal.Decimal, json.Number, *ir.Node (cloned), Marshaler
// and encoding.TextMarshaler implementations, slices, arrays, maps with
// string or integer keys, and structs through their exported fields and
// `json` tags.
//
// A Go value that refers to itself fails with an error wrapping
// ir.ErrCycle.
func (r *Registry) ToNode(v any) (*ir.Node, error) {
	c := &toState{r: r, visited: map[visit]bool{}}
	return c.value(reflect.ValueOf(v), ir.Pointer{})
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

type toState struct {
	r       *Registry
	visited map[visit]bool
}

func (c *toState) value(val reflect.Value, path ir.Pointer) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()
	if conv := c.r.ResolveForSerialize(typ); conv != nil {
		return c.call(conv, val, path)
	}
	switch typ.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if val.IsNil() {
			return ir.Null(), nil
		}
	}
	switch typ {
	case nodeType:
		return val.Interface().(*ir.Node).Clone(), nil
	case nodeType.Elem():
		n := val.Interface().(ir.Node)
		return n.Clone(), nil
	case numberType:
		n := val.Interface().(ir.Number)
		return ir.FromNumber(n.Clone()), nil
	case bigIntType:
		n := val.Interface().(big.Int)
		return ir.FromNumber(ir.NewBigInt(&n)), nil
	case decimalType:
		return ir.FromNumber(ir.NewDecimal(val.Interface().(decimal.Decimal))), nil
	case jsonNumberType:
		n, err := ir.ParseNumber(val.String())
		if err != nil {
			return nil, convErr(path, typ, err, "")
		}
		return ir.FromNumber(n), nil
	}
	if typ.Kind() == reflect.Pointer && builtinTypes[typ.Elem()] {
		return c.value(val.Elem(), path)
	}
	if typ.Implements(marshalerType) {
		n, err := val.Interface().(Marshaler).MarshalNode()
		return c.check(n, err, typ, path)
	}
	if typ.Implements(textMarshalerType) {
		text, err := val.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, convErr(path, typ, err, "")
		}
		return ir.FromString(string(text)), nil
	}

	switch typ.Kind() {
	case reflect.Pointer:
		return c.ref(val, path, func() (*ir.Node, error) {
			return c.value(val.Elem(), path)
		})
	case reflect.Interface:
		return c.value(val.Elem(), path)
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ir.FromNumber(ir.NewBigInt(new(big.Int).SetUint64(val.Uint()))), nil
	case reflect.Float32, reflect.Float64:
		f := val.Float()
		if typ.Kind() == reflect.Float32 {
			// shortest text of the float32, not of its float64 widening
			f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'g', -1, 32), 64)
		}
		n, err := ir.NewFloat(f)
		if err != nil {
			return nil, convErr(path, typ, err, "")
		}
		return ir.FromNumber(n), nil
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 && !typ.Elem().Implements(marshalerType) {
			return ir.FromString(base64.StdEncoding.EncodeToString(val.Bytes())), nil
		}
		return c.ref(val, path, func() (*ir.Node, error) {
			return c.array(val, path)
		})
	case reflect.Array:
		return c.array(val, path)
	case reflect.Map:
		return c.ref(val, path, func() (*ir.Node, error) {
			return c.object(val, path)
		})
	case reflect.Struct:
		return c.structure(val, path)
	}
	return nil, convErr(path, typ, ErrNoConverter, "")
}

func (c *toState) call(conv *Converter, val reflect.Value, path ir.Pointer) (*ir.Node, error) {
	n, err := conv.ToNode(val.Interface())
	return c.check(n, err, val.Type(), path)
}

func (c *toState) check(n *ir.Node, err error, typ reflect.Type, path ir.Pointer) (*ir.Node, error) {
	if err != nil {
		return nil, convErr(path, typ, err, "")
	}
	if n == nil {
		return nil, convErr(path, typ, ErrConversionFailed, "converter returned no node")
	}
	return n, nil
}

// ref guards reference kinds against self reference. The same value may
// appear in several branches; only a value containing itself fails.
func (c *toState) ref(val reflect.Value, path ir.Pointer, f func() (*ir.Node, error)) (*ir.Node, error) {
	k := visit{ptr: val.Pointer(), typ: val.Type()}
	if c.visited[k] {
		return nil, convErr(path, val.Type(), ir.ErrCycle, "value refers to itself")
	}
	c.visited[k] = true
	defer delete(c.visited, k)
	return f()
}

func (c *toState) array(val reflect.Value, path ir.Pointer) (*ir.Node, error) {
	n := val.Len()
	elts := make([]*ir.Node, n)
	for i := range n {
		elt, err := c.value(val.Index(i), path.Elem(i))
		if err != nil {
			return nil, err
		}
		elts[i] = elt
	}
	return ir.FromSlice(elts), nil
}

// object converts a map. Members are sorted by key.
func (c *toState) object(val reflect.Value, path ir.Pointer) (*ir.Node, error) {
	typ := val.Type()
	type member struct {
		key string
		val reflect.Value
	}
	members := make([]member, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		k, err := mapKey(iter.Key())
		if err != nil {
			return nil, convErr(path, typ, err, "")
		}
		members = append(members, member{key: k, val: iter.Value()})
	}
	slices.SortFunc(members, func(a, b member) int {
		return strings.Compare(a.key, b.key)
	})
	kvs := make([]ir.KeyVal, len(members))
	for i, m := range members {
		v, err := c.value(m.val, path.Field(m.key))
		if err != nil {
			return nil, err
		}
		kvs[i] = ir.KeyVal{Key: m.key, Val: v}
	}
	return ir.FromKeyVals(kvs), nil
}

func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		return string(b), err
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", ErrNoConverter
}

// structure converts a struct in field declaration order.
func (c *toState) structure(val reflect.Value, path ir.Pointer) (*ir.Node, error) {
	fs := structFields(val.Type())
	kvs := make([]ir.KeyVal, 0, len(fs))
	for i := range fs {
		f := &fs[i]
		fv, ok := fieldByIndex(val, f.index, false)
		if !ok {
			continue
		}
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		v, err := c.value(fv, path.Field(f.name))
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: f.name, Val: v})
	}
	return ir.FromKeyVals(kvs), nil
}
