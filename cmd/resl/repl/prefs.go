package repl

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Prefs holds REPL settings persisted between sessions, grounded on the
// teacher's lang/format.go YAML encoding path (there used to render a
// Value; here repurposed to serialize the REPL's own small settings
// struct instead).
type Prefs struct {
	Pretty bool `yaml:"pretty"`
}

// LoadPrefs reads prefs from path, tolerating a missing file (the first
// run on a machine, or persistence disabled via an empty path).
func LoadPrefs(path string) (Prefs, error) {
	var p Prefs

	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}

		return p, err
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, err
	}

	return p, nil
}

// SavePrefs writes prefs to path, a no-op if path is empty.
func SavePrefs(path string, p Prefs) error {
	if path == "" {
		return nil
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}
