package config

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("field not found")

type Option func(options *options)

type options struct {
	withDefault  bool
	defaultValue interface{}
}

func WithDefault(value interface{}) Option {
	return func(options *options) {
		options.withDefault = true
		options.defaultValue = value
	}
}

// GetInterface gets the given, potentially nested (dot-separated), field irrespective of its type.
func GetInterface(config map[string]interface{}, field string, opts ...Option) (interface{}, error) {
	out, _, err := lookup(config, field, opts)
	return out, err
}

// lookup resolves a dotted field. A missing field yields the default, if one was given.
func lookup(config map[string]interface{}, field string, opts []Option) (out interface{}, isDefault bool, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	section := config
	path := strings.Split(field, ".")
	for i, name := range path {
		element, ok := section[name]
		if !ok {
			if o.withDefault {
				return o.defaultValue, true, nil
			}
			return nil, false, errors.Wrapf(ErrNotFound, "couldn't get %s", field)
		}
		if i == len(path)-1 {
			return element, false, nil
		}
		if section, ok = element.(map[string]interface{}); !ok {
			return nil, false, errors.Errorf("%s should be a map, got: %v", strings.Join(path[:i+1], "."), reflect.TypeOf(element))
		}
	}
	panic("unreachable")
}

// GetMap gets a sub-map from the given field.
func GetMap(config map[string]interface{}, field string, opts ...Option) (map[string]interface{}, error) {
	out, _, err := lookup(config, field, opts)
	if err != nil {
		return nil, err
	}
	m, ok := out.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("%s: expected map, got %v", field, reflect.TypeOf(out))
	}
	return m, nil
}

// GetString gets a string from the given field.
func GetString(config map[string]interface{}, field string, opts ...Option) (string, error) {
	out, _, err := lookup(config, field, opts)
	if err != nil {
		return "", err
	}
	s, ok := out.(string)
	if !ok {
		return "", errors.Errorf("%s: expected string, got %v", field, reflect.TypeOf(out))
	}
	return s, nil
}

// GetStringList gets a string list from the given field. A null list is empty.
func GetStringList(config map[string]interface{}, field string, opts ...Option) ([]string, error) {
	out, isDefault, err := lookup(config, field, opts)
	switch {
	case err != nil:
		return nil, err
	case isDefault:
		list, ok := out.([]string)
		if !ok {
			return nil, errors.Errorf("%s: default should be a string slice, got %v", field, reflect.TypeOf(out))
		}
		return list, nil
	case out == nil:
		return nil, nil
	}

	items, ok := out.([]interface{})
	if !ok {
		return nil, errors.Errorf("%s: expected list, got %v", field, reflect.TypeOf(out))
	}
	list := make([]string, len(items))
	for i, item := range items {
		if list[i], ok = item.(string); !ok {
			return nil, errors.Errorf("%s: expected string slice, got %v at index %d", field, reflect.TypeOf(item), i)
		}
	}
	return list, nil
}

// GetInt gets an int from the given field.
func GetInt(config map[string]interface{}, field string, opts ...Option) (int, error) {
	out, _, err := lookup(config, field, opts)
	if err != nil {
		return 0, err
	}
	n, ok := out.(int)
	if !ok {
		return 0, errors.Errorf("%s: expected int, got %v", field, reflect.TypeOf(out))
	}
	return n, nil
}

// GetBool gets a bool from the given field.
func GetBool(config map[string]interface{}, field string, opts ...Option) (bool, error) {
	out, _, err := lookup(config, field, opts)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, errors.Errorf("%s: expected bool, got %v", field, reflect.TypeOf(out))
	}
	return b, nil
}
