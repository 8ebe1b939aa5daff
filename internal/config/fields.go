package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Whole-number fields are bounded to int32 like the API types they mirror.
var (
	minInt = decimal.NewFromInt(math.MinInt32)
	maxInt = decimal.NewFromInt(math.MaxInt32)
)

// fields reads loosely-typed values out of a composite spec.
// A key that is absent or null yields the default.
type fields map[string]any

// lookup returns the first present key among aliases.
func (f fields) lookup(keys ...string) (string, any, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok && v != nil {
			return k, v, true
		}
	}
	return keys[0], nil, false
}

func (f fields) str(def string, keys ...string) (string, error) {
	key, v, ok := f.lookup(keys...)
	if !ok {
		return def, nil
	}
	switch v.(type) {
	case map[string]any, []any:
		return "", &ConfigurationError{Field: key, Value: v, Err: fmt.Errorf("expected a string")}
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &ConfigurationError{Field: key, Value: v, Err: err}
	}
	return strings.TrimSpace(s), nil
}

func (f fields) integer(def int, keys ...string) (int, error) {
	key, v, ok := f.lookup(keys...)
	if !ok {
		return def, nil
	}
	if s, isString := v.(string); isString {
		v = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(cast.ToString(v))
	if err != nil {
		return 0, &ConfigurationError{Field: key, Value: v, Err: fmt.Errorf("not a number")}
	}
	if !d.IsInteger() {
		return 0, &ConfigurationError{Field: key, Value: v, Err: fmt.Errorf("not a whole number")}
	}
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return 0, &ConfigurationError{Field: key, Value: v, Err: fmt.Errorf("out of range")}
	}
	return int(d.IntPart()), nil
}

func (f fields) boolean(def bool, keys ...string) (bool, error) {
	key, v, ok := f.lookup(keys...)
	if !ok {
		return def, nil
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := cast.ToBoolE(strings.ToLower(strings.TrimSpace(t)))
		if err != nil {
			return false, &ConfigurationError{Field: key, Value: v, Err: err}
		}
		return b, nil
	default:
		return false, &ConfigurationError{Field: key, Value: v, Err: fmt.Errorf("expected a boolean")}
	}
}

func (f fields) capacity(def decimal.Decimal, keys ...string) (decimal.Decimal, error) {
	key, v, ok := f.lookup(keys...)
	if !ok {
		return def, nil
	}
	var (
		d   decimal.Decimal
		err error
	)
	switch t := v.(type) {
	case float64:
		d = decimal.NewFromFloat(t)
	case float32:
		d = decimal.NewFromFloat32(t)
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(t))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		var i int64
		i, err = cast.ToInt64E(t)
		d = decimal.NewFromInt(i)
	default:
		err = fmt.Errorf("unsupported type %T", v)
	}
	if err != nil {
		return decimal.Zero, &ConfigurationError{Field: key, Value: v, Err: fmt.Errorf("not a number")}
	}
	return d, nil
}

func (f fields) strings(keys ...string) ([]string, error) {
	key, v, ok := f.lookup(keys...)
	if !ok {
		return nil, nil
	}
	var out []string
	switch t := v.(type) {
	case string:
		out = strings.Split(t, ",")
	case []any, []string:
		list, err := cast.ToStringSliceE(t)
		if err != nil {
			return nil, &ConfigurationError{Field: key, Value: v, Err: err}
		}
		out = list
	default:
		return nil, &ConfigurationError{Field: key, Value: v, Err: fmt.Errorf("expected a list of strings")}
	}
	out = lo.Map(out, func(s string, _ int) string { return strings.TrimSpace(s) })
	return lo.Uniq(lo.Compact(out)), nil
}

// object decodes a nested object into out.
func (f fields) object(out any, keys ...string) (bool, error) {
	key, v, ok := f.lookup(keys...)
	if !ok {
		return false, nil
	}
	if _, isMap := v.(map[string]any); !isMap {
		return false, &ConfigurationError{Field: key, Value: v, Err: fmt.Errorf("expected an object")}
	}
	if err := mapstructure.Decode(v, out); err != nil {
		return false, &ConfigurationError{Field: key, Value: v, Err: err}
	}
	return true, nil
}
