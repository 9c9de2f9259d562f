package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrConfiguration indicates the registry source is missing or malformed.
// It is the only error in this module that is fatal to startup.
var ErrConfiguration = errors.New("registry: configuration error")

// LoadRegistry reads a name→URL mapping from a JSON file. An unreadable or
// malformed file, or an empty mapping, is a configuration error; the caller
// must not proceed to discovery.
func LoadRegistry(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return ParseRegistry(data)
}

// ParseRegistry decodes a name→URL mapping from JSON bytes.
func ParseRegistry(data []byte) (map[string]string, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid registry json: %v", ErrConfiguration, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: registry is empty", ErrConfiguration)
	}
	for name, url := range raw {
		if name == "" || url == "" {
			return nil, fmt.Errorf("%w: registry entry with empty name or url", ErrConfiguration)
		}
	}
	return raw, nil
}
