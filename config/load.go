package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var ErrUnknownKey = errors.New("unknown config key")

// Load reads a YAML file and layers it over Defaults.
func Load(path string) (*Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse flattens a YAML document into dotted keys under the config prefix
// and layers the result over Defaults. Every unknown key is reported.
//
//	grid:
//	  overscan:
//	    backward: 5
//
// binds config.grid.overscan.backward to 5.
func Parse(data []byte) (*Binding, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	values := make(map[string]any)
	flatten(Prefix, doc, values)

	defaults := Defaults()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var err error
	for _, k := range keys {
		if _, ok := defaults.values[k]; !ok {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrUnknownKey, k))
		}
	}
	if err != nil {
		return nil, err
	}
	return NewBinding(values, defaults), nil
}

func flatten(prefix string, node map[string]any, out map[string]any) {
	for k, v := range node {
		key := prefix + delimiter + k
		if child, ok := v.(map[string]any); ok {
			flatten(key, child, out)
			continue
		}
		out[key] = v
	}
}
