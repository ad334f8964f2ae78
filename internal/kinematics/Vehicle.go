package kinematics

import (
	"encoding/json"
	"fmt"
)

// Vehicle holds the static parameters of the vehicle following the track.
// The physics of acceleration, braking and cornering are encapsulated by the Kinem
// field; adding a new model only requires implementing MotionModel and registering it
// in DecodeModel below.
type Vehicle struct {
	Name  string      `json:"name"`
	Width float64     `json:"width,omitempty"` // body width; half of it is the default path inset
	Kinem MotionModel `json:"-"`               // set by UnmarshalJSON
}

// modelDisc is the minimum JSON structure needed to read the model discriminator.
type modelDisc struct {
	Model string `json:"model"`
}

// vehicleJSON is the raw JSON shape of a Vehicle, before the kinematics model is resolved.
type vehicleJSON struct {
	Name  string          `json:"name"`
	Width float64         `json:"width,omitempty"`
	Kinem json.RawMessage `json:"kinematics"`
}

// DecodeModel resolves a kinematics object by its "model" discriminator and forwards the
// rest of the object to that implementation's unmarshaler.
//
// Supported models:
//   - "constant": fixed a_acc / a_dcc / a_lat rates.
func DecodeModel(data []byte) (MotionModel, error) {
	var disc modelDisc
	if err := json.Unmarshal(data, &disc); err != nil {
		return nil, fmt.Errorf("reading kinematics model discriminator: %w", err)
	}

	switch disc.Model {
	case ConstantModelName:
		var k ConstantAcceleration
		if err := json.Unmarshal(data, &k); err != nil {
			return nil, fmt.Errorf("parsing constant kinematics: %w", err)
		}
		return k, nil
	default:
		return nil, fmt.Errorf("unknown kinematics model %q", disc.Model)
	}
}

// UnmarshalJSON implements json.Unmarshaler for Vehicle.
// The "kinematics" field must contain a "model" discriminator key.
func (v *Vehicle) UnmarshalJSON(data []byte) error {
	var aux vehicleJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.Name = aux.Name
	v.Width = aux.Width

	if len(aux.Kinem) == 0 {
		return fmt.Errorf("vehicle %q: missing \"kinematics\" field", v.Name)
	}
	m, err := DecodeModel(aux.Kinem)
	if err != nil {
		return fmt.Errorf("vehicle %q: %w", v.Name, err)
	}
	v.Kinem = m
	return nil
}

// MarshalJSON implements json.Marshaler for Vehicle, writing the discriminator back out.
func (v Vehicle) MarshalJSON() ([]byte, error) {
	var kinem json.RawMessage
	switch m := v.Kinem.(type) {
	case nil:
	case ConstantAcceleration:
		raw, err := json.Marshal(struct {
			Model string `json:"model"`
			ConstantAcceleration
		}{ConstantModelName, m})
		if err != nil {
			return nil, err
		}
		kinem = raw
	default:
		return nil, fmt.Errorf("vehicle %q: cannot encode kinematics model %T", v.Name, v.Kinem)
	}
	return json.Marshal(vehicleJSON{Name: v.Name, Width: v.Width, Kinem: kinem})
}
