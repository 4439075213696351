package director

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteScript writes a script to a YAML file
func WriteScript(script *Script, path string) error {
	data, err := yaml.Marshal(script)
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScript reads and validates a script from a YAML file
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	script, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

// ParseScript decodes a script, fills defaults and validates it.
func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}

	script.applyDefaults()
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}
