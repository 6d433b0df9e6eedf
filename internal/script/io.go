package script

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Write writes a script to a YAML file
func Write(s *Script, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Read reads a script from a YAML file. Gestures are validated and
// returned sorted by start time.
func Read(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	for i, g := range s.Gestures {
		switch g.Kind {
		case KindDrag, KindWheel, KindPress, KindRelease:
		default:
			return nil, fmt.Errorf("gesture %d: unknown kind %q", i, g.Kind)
		}
		if g.At < 0 {
			return nil, fmt.Errorf("gesture %d: negative start time %.3f", i, g.At)
		}
		if g.Kind == KindDrag && g.Duration <= 0 {
			return nil, fmt.Errorf("gesture %d: drag needs a positive duration", i)
		}
	}

	sort.SliceStable(s.Gestures, func(i, j int) bool {
		return s.Gestures[i].At < s.Gestures[j].At
	})

	return &s, nil
}
