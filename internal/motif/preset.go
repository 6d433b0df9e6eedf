package motif

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Motif variants selectable in a preset file.
const (
	VariantWave = "wave"
	VariantWipe = "wipe"
)

// Preset is the on-disk motif description: which variant to use and, for
// waves, the per-element tuning table.
type Preset struct {
	Version  string        `yaml:"version"`
	Variant  string        `yaml:"variant"`
	Elements []WaveElement `yaml:"elements,omitempty"`
}

// WaveElement is one row of the wave tuning table. Values are fractions of
// the viewport unless noted; the table is treated as immutable once loaded.
type WaveElement struct {
	Stagger    float64 `yaml:"stagger"`     // personal progress lag, [0,1)
	Opacity    float64 `yaml:"opacity"`     // base opacity, [0,1]
	Phase      float64 `yaml:"phase"`       // undulation phase offset, radians
	OffsetY    float64 `yaml:"offset_y"`    // vertical rest offset, viewport heights
	StartScale float64 `yaml:"start_scale"` // scale at transition start
	EndScale   float64 `yaml:"end_scale"`   // scale at transition end
	Slope      float64 `yaml:"slope"`       // linear vertical drift over the travel
}

// DefaultPreset returns the built-in five-wave table: staggered back-to-front
// waves with alternating phase, growing slightly as they cross.
func DefaultPreset() Preset {
	return Preset{
		Version: "1.0",
		Variant: VariantWave,
		Elements: []WaveElement{
			{Stagger: 0.00, Opacity: 0.35, Phase: 0.0, OffsetY: -0.06, StartScale: 1.00, EndScale: 1.10, Slope: 0.02},
			{Stagger: 0.08, Opacity: 0.50, Phase: 1.6, OffsetY: -0.02, StartScale: 0.98, EndScale: 1.12, Slope: -0.015},
			{Stagger: 0.16, Opacity: 0.65, Phase: 3.1, OffsetY: 0.02, StartScale: 1.02, EndScale: 1.15, Slope: 0.01},
			{Stagger: 0.24, Opacity: 0.80, Phase: 4.7, OffsetY: 0.05, StartScale: 1.00, EndScale: 1.18, Slope: -0.02},
			{Stagger: 0.32, Opacity: 1.00, Phase: 6.1, OffsetY: 0.08, StartScale: 1.05, EndScale: 1.22, Slope: 0.025},
		},
	}
}

// WritePreset writes a preset to a YAML file.
func WritePreset(preset *Preset, path string) error {
	data, err := yaml.Marshal(preset)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPreset reads a preset from a YAML file.
func ReadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var preset Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, err
	}

	switch preset.Variant {
	case VariantWave, VariantWipe, "":
	default:
		return nil, fmt.Errorf("unknown motif variant: %s", preset.Variant)
	}

	return &preset, nil
}
