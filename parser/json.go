package parser

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"

	"github.com/polypheny/polytype/polytype"
)

// ParseJSON parses a JSON type document, e.g.
//   {"kind": "DECIMAL", "precision": 5, "scale": 2, "nullable": true}
// Nested types (component, key, value, field types) are documents or SQL type strings.
func ParseJSON(factory *polytype.Factory, data []byte) (*polytype.Type, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't parse json")
	}
	return typeFromJSON(factory, v)
}

func typeFromJSON(factory *polytype.Factory, v *fastjson.Value) (*polytype.Type, error) {
	switch v.Type() {
	case fastjson.TypeString:
		text, _ := v.StringBytes()
		return ParseType(factory, string(text))
	case fastjson.TypeObject:
	default:
		return nil, errors.Errorf("expected a type document or a type string, got %s", v.Type())
	}

	kindName := string(v.GetStringBytes("kind"))
	if kindName == "" {
		return nil, errors.New("missing kind")
	}
	var t *polytype.Type
	switch kindName {
	case "ARRAY", "MULTISET":
		component := v.Get("component")
		if component == nil {
			return nil, errors.Errorf("%s needs a component", kindName)
		}
		element, err := typeFromJSON(factory, component)
		if err != nil {
			return nil, errors.Wrap(err, "couldn't parse component type")
		}
		if kindName == "ARRAY" {
			cardinality := polytype.NotSpecified
			if v.Exists("cardinality") {
				cardinality = v.GetInt("cardinality")
			}
			t = factory.CreateArrayType(element, cardinality)
		} else {
			t = factory.CreateMultisetType(element, polytype.NotSpecified)
		}

	case "MAP":
		if !v.Exists("key") || !v.Exists("value") {
			return nil, errors.New("MAP needs a key and a value")
		}
		key, err := typeFromJSON(factory, v.Get("key"))
		if err != nil {
			return nil, errors.Wrap(err, "couldn't parse key type")
		}
		value, err := typeFromJSON(factory, v.Get("value"))
		if err != nil {
			return nil, errors.Wrap(err, "couldn't parse value type")
		}
		t = factory.CreateMapType(key, value)

	case "ROW":
		list := v.Get("fields")
		if list == nil {
			return nil, errors.New("ROW needs a fields list")
		}
		fields, err := list.Array()
		if err != nil {
			return nil, errors.Wrap(err, "ROW needs a fields list")
		}
		builder := factory.Builder()
		for i, field := range fields {
			name := string(field.GetStringBytes("name"))
			if !field.Exists("type") {
				return nil, errors.Errorf("field %d has no type", i)
			}
			fieldType, err := typeFromJSON(factory, field.Get("type"))
			if err != nil {
				return nil, errors.Wrapf(err, "couldn't parse type of field %d", i)
			}
			builder.Add(name, fieldType)
		}
		t = builder.UniquifyNames().Build()

	case "INTERVAL":
		interval := v.Get("interval")
		if interval == nil {
			return nil, errors.New("INTERVAL needs an interval qualifier")
		}
		start, ok := polytype.TimeUnitByName(string(interval.GetStringBytes("start")))
		if !ok {
			return nil, errors.Errorf("invalid interval start %s", interval.Get("start"))
		}
		end := polytype.TimeUnitNone
		if interval.Exists("end") {
			if end, ok = polytype.TimeUnitByName(string(interval.GetStringBytes("end"))); !ok {
				return nil, errors.Errorf("invalid interval end %s", interval.Get("end"))
			}
		}
		if !validIntervalRange(start, end) {
			return nil, errors.Errorf("invalid interval %s TO %s", start, end)
		}
		startPrecision, fractionalPrecision := polytype.NotSpecified, polytype.NotSpecified
		if interval.Exists("startPrecision") {
			startPrecision = interval.GetInt("startPrecision")
		}
		if interval.Exists("fractionalSecondPrecision") {
			fractionalPrecision = interval.GetInt("fractionalSecondPrecision")
		}
		t = factory.CreateIntervalType(polytype.NewIntervalQualifierWithPrecision(start, startPrecision, end, fractionalPrecision))

	default:
		kind, ok := kindAliases[kindName]
		if !ok {
			if kind, ok = polytype.KindByName(kindName); !ok {
				return nil, errors.Errorf("unknown kind %s", kindName)
			}
		}
		if kind.IsSpecial() || kind == polytype.KindStructured || kind == polytype.KindDistinct || kind == polytype.KindPath {
			return nil, errors.Errorf("kind %s can't be described by a plain document", kindName)
		}
		precision, scale := polytype.NotSpecified, polytype.NotSpecified
		if v.Exists("precision") {
			precision = v.GetInt("precision")
		}
		if v.Exists("scale") {
			scale = v.GetInt("scale")
		}
		if precision < polytype.NotSpecified || scale < polytype.NotSpecified {
			return nil, errors.New("precision and scale can't be negative")
		}
		if !kind.AllowsPrecScale(precision != polytype.NotSpecified, scale != polytype.NotSpecified) {
			return nil, errors.Errorf("%s doesn't take this precision and scale", kind)
		}
		switch {
		case scale != polytype.NotSpecified:
			t = factory.CreateTypeWithScale(kind, precision, scale)
		case precision != polytype.NotSpecified:
			t = factory.CreateTypeWithPrecision(kind, precision)
		default:
			t = factory.CreateType(kind)
		}
		if polytype.InCharFamily(t) && (v.Exists("charset") || v.Exists("collation")) {
			var err error
			if t, err = withCharsetAndCollation(factory, t, v); err != nil {
				return nil, err
			}
		}
	}

	if v.Exists("nullable") {
		nullable, err := v.Get("nullable").Bool()
		if err != nil {
			return nil, errors.Wrap(err, "invalid nullable")
		}
		t = factory.CreateTypeWithNullability(t, nullable)
	}
	return t, nil
}

func withCharsetAndCollation(factory *polytype.Factory, t *polytype.Type, v *fastjson.Value) (*polytype.Type, error) {
	var charset *polytype.Charset
	var collation *polytype.Collation
	var err error
	if v.Exists("charset") {
		if charset, err = polytype.CharsetByName(string(v.GetStringBytes("charset"))); err != nil {
			return nil, err
		}
	}
	if v.Exists("collation") {
		if collation, err = polytype.NewCollation(string(v.GetStringBytes("collation")), polytype.CoercibilityExplicit); err != nil {
			return nil, err
		}
	}
	switch {
	case charset == nil:
		charset = collation.Charset()
	case collation == nil:
		collation = polytype.ImplicitCollation(charset)
	case !collation.Charset().Equal(charset):
		return nil, errors.Errorf("collation %s doesn't belong to charset %s", collation.Name(), charset.Name())
	}
	return factory.CreateTypeWithCharsetAndCollation(t, charset, collation), nil
}

// InferJSON derives the type of a sample JSON value. Integral numbers are BIGINT,
// other numbers DOUBLE, RFC 3339 strings TIMESTAMP, objects rows with their fields
// sorted by name and arrays arrays of the least restrictive element type.
func InferJSON(factory *polytype.Factory, data []byte) (*polytype.Type, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't parse json")
	}
	return inferType(factory, v), nil
}

func inferType(factory *polytype.Factory, value *fastjson.Value) *polytype.Type {
	switch value.Type() {
	case fastjson.TypeNull:
		return factory.CreateType(polytype.KindNull)
	case fastjson.TypeString:
		v, _ := value.StringBytes()
		if _, err := time.Parse(time.RFC3339Nano, string(v)); err == nil {
			return factory.CreateType(polytype.KindTimestamp)
		}
		return factory.CreateType(polytype.KindVarchar)
	case fastjson.TypeNumber:
		if _, err := value.Int64(); err == nil {
			return factory.CreateType(polytype.KindBigInt)
		}
		return factory.CreateType(polytype.KindDouble)
	case fastjson.TypeTrue, fastjson.TypeFalse:
		return factory.CreateType(polytype.KindBoolean)
	case fastjson.TypeObject:
		obj, _ := value.Object()
		type field struct {
			name string
			t    *polytype.Type
		}
		fields := make([]field, 0, obj.Len())
		obj.Visit(func(key []byte, v *fastjson.Value) {
			fields = append(fields, field{name: string(key), t: inferType(factory, v)})
		})
		sort.Slice(fields, func(i, j int) bool {
			return fields[i].name < fields[j].name
		})
		builder := factory.Builder()
		for _, f := range fields {
			builder.Add(f.name, f.t)
		}
		return builder.Build()
	case fastjson.TypeArray:
		arr, _ := value.Array()
		elements := make([]*polytype.Type, len(arr))
		for i := range arr {
			elements[i] = inferType(factory, arr[i])
		}
		var element *polytype.Type
		switch len(elements) {
		case 0:
			element = factory.CreateType(polytype.KindNull)
		case 1:
			element = elements[0]
		default:
			if element = factory.LeastRestrictive(elements); element == nil {
				element = factory.CreateType(polytype.KindAny)
			}
		}
		return factory.CreateArrayType(element, polytype.NotSpecified)
	}
	panic("impossible, json type switch bug")
}
