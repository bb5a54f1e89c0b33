// Package config loads gridview settings from YAML into layered bindings
// addressed by dotted keys.
package config

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrUnexpectedType = errors.New("unexpected type")
)

// Binding resolves dotted keys against its own values first and then
// delegates to its parent.
type Binding struct {
	values map[string]any
	parent *Binding
}

// NewBinding layers values over parent. A nil parent ends the chain.
func NewBinding(values map[string]any, parent *Binding) *Binding {
	if values == nil {
		values = make(map[string]any)
	}
	return &Binding{values: values, parent: parent}
}

// Defaults is the root binding holding every built-in value.
func Defaults() *Binding {
	return NewBinding(map[string]any{
		GridOverscanBackward:     10,
		GridOverscanForward:      10,
		GridEstimateRow:          50.0,
		GridEstimateColumn:       50.0,
		GridHeaderHeight:         50.0,
		GridStyleMaxEntries:      0,
		SessionHandlerBufferSize: 16,
		SessionHandlerNumWorkers: 4,
		SessionIdleAfter:         "150ms",
		LogLevel:                 "info",
		LogFile:                  "gridview.log",
		DemoRows:                 10000,
		DemoColumns:              1000,
		DemoSeed:                 1,
	}, nil)
}

// Lookup returns the value bound to key in the nearest scope.
func (b *Binding) Lookup(key string) (any, error) {
	for scope := b; scope != nil; scope = scope.parent {
		if v, ok := scope.values[key]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}

// Typed fetches key and asserts it to T.
func Typed[T any](b *Binding, key string) (T, error) {
	return typedValueOf[T](key, func() (any, error) {
		return b.Lookup(key)
	})
}

// MustTyped is the panic-on-failure variant of Typed.
func MustTyped[T any](b *Binding, key string) T {
	v, err := Typed[T](b, key)
	if err != nil {
		panic(err)
	}
	return v
}

func typedValueOf[T any](key string, getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, err
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrUnexpectedType, key, res)
	}
	return val, nil
}

func (b *Binding) Int(key string) (int, error) {
	raw, err := b.Lookup(key)
	if err != nil {
		return 0, err
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %s is %T", ErrUnexpectedType, key, raw)
}

// Float accepts integer values too, since YAML decodes "50" as an int.
func (b *Binding) Float(key string) (float64, error) {
	raw, err := b.Lookup(key)
	if err != nil {
		return 0, err
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: %s is %T", ErrUnexpectedType, key, raw)
}

func (b *Binding) String(key string) (string, error) {
	return Typed[string](b, key)
}

// Duration parses strings such as "150ms".
func (b *Binding) Duration(key string) (time.Duration, error) {
	raw, err := b.Lookup(key)
	if err != nil {
		return 0, err
	}
	switch v := raw.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return d, nil
	}
	return 0, fmt.Errorf("%w: %s is %T", ErrUnexpectedType, key, raw)
}
