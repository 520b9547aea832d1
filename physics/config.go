// Package physics simulates a controllable body moving through a voxel map.
//
// Collision detection and resolution is done by a Separating Axis Theorem
// implementation for concave shapes decomposed into Axis-Aligned Bounding
// Boxes. This isn't totally equivalent to vanilla behavior, but it's faster
// and close enough.
package physics

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Tuning bundles every constant of the motion model. It is immutable after
// construction; a Body keeps its own copy.
type Tuning struct {
	// BaseDrag is applied to all axes before forces are added and to the
	// vertical axis again after gravity. The double application matches the
	// vanilla two-phase friction model and is intentional.
	BaseDrag          float32 `yaml:"base_drag"`
	GravityAccel      float32 `yaml:"gravity_accel"`
	JumpSpeed         float32 `yaml:"jump_speed"`
	JumpForwardBoost  float32 `yaml:"jump_forward_boost"`
	AirAcceleration   float32 `yaml:"air_acceleration"`
	GroundSlipBase    float32 `yaml:"ground_slip_base"`
	HorizontalDragMul float32 `yaml:"horizontal_drag_multiplier"`
}

func DefaultTuning() Tuning {
	var tuning Tuning
	if err := yaml.Unmarshal(defaultsYAML, &tuning); err != nil {
		panic(errors.Wrap(err, "embedded defaults are broken"))
	}
	return tuning
}

// LoadTuning reads a yaml file on top of the embedded defaults, so a config
// file only needs to name the constants it wants to change.
func LoadTuning(filename string) (Tuning, error) {
	tuning := DefaultTuning()
	data, err := os.ReadFile(filename)
	if err != nil {
		return tuning, errors.Wrap(err, "could not read tuning file")
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return tuning, errors.Wrap(err, "could not parse tuning file")
	}
	return tuning, nil
}
