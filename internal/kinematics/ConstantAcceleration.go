package kinematics

import "math"

// ConstantModelName is the JSON discriminator string for the Constant model.
const ConstantModelName = "constant"

// ConstantAcceleration implements MotionModel using fixed acceleration, braking and
// lateral rates.
//
// JSON discriminator: "model": "constant"
type ConstantAcceleration struct {
	AAcc    float64 `json:"a_acc"`           // traction acceleration, units/s²
	ADcc    float64 `json:"a_dcc"`           // braking deceleration, units/s² (positive)
	ALat    float64 `json:"a_lat,omitempty"` // cornering limit, units/s²; 0 = AAcc
	VMaxVal float64 `json:"v_max"`           // maximum speed, units/s
}

func (c ConstantAcceleration) VMax() float64 { return c.VMaxVal }

func (c ConstantAcceleration) lateral() float64 {
	if c.ALat > 0 {
		return c.ALat
	}
	return c.AAcc
}

func (c ConstantAcceleration) capped(v float64) float64 {
	return math.Min(v, c.VMaxVal)
}

func (c ConstantAcceleration) StraightSpeed(length float64) float64 {
	if length <= 0 || c.AAcc <= 0 {
		return 0
	}
	return c.capped(math.Sqrt(2 * c.AAcc * length))
}

func (c ConstantAcceleration) CorneringSpeed(radius float64) float64 {
	if radius <= 0 || c.lateral() <= 0 {
		return 0
	}
	return c.capped(math.Sqrt(c.lateral() * radius))
}

func (c ConstantAcceleration) ReachableSpeed(v0, dist float64) float64 {
	if c.AAcc <= 0 || dist <= 0 {
		return v0
	}
	return math.Sqrt(v0*v0 + 2*c.AAcc*dist)
}

func (c ConstantAcceleration) EntrySpeed(vEnd, dist float64) float64 {
	if c.ADcc <= 0 || dist <= 0 {
		return vEnd
	}
	return math.Sqrt(vEnd*vEnd + 2*c.ADcc*dist)
}

func (c ConstantAcceleration) PeakSpeed(vStart, vEnd, vTop, dist float64) float64 {
	floor := math.Max(vStart, vEnd)
	if c.AAcc <= 0 || c.ADcc <= 0 {
		return math.Min(floor, vTop)
	}
	// Where the acceleration ramp from vStart meets the braking ramp into vEnd.
	meet := (2*c.AAcc*c.ADcc*dist + c.ADcc*vStart*vStart + c.AAcc*vEnd*vEnd) / (c.AAcc + c.ADcc)
	return math.Min(math.Max(math.Sqrt(meet), floor), vTop)
}

func (c ConstantAcceleration) AccelerationDistance(v, targetV float64) float64 {
	if v >= targetV {
		return 0
	}
	if c.AAcc <= 0 {
		return math.Inf(1)
	}
	return (targetV*targetV - v*v) / (2 * c.AAcc)
}

func (c ConstantAcceleration) BrakingDistanceTo(v, targetV float64) float64 {
	if v <= targetV {
		return 0
	}
	if c.ADcc <= 0 {
		return math.Inf(1)
	}
	return (v*v - targetV*targetV) / (2 * c.ADcc)
}

func (c ConstantAcceleration) AccelerationTime(v, targetV float64) float64 {
	if v >= targetV {
		return 0
	}
	if c.AAcc <= 0 {
		return math.Inf(1)
	}
	return (targetV - v) / c.AAcc
}

func (c ConstantAcceleration) BrakingTimeTo(v, targetV float64) float64 {
	if v <= targetV {
		return 0
	}
	if c.ADcc <= 0 {
		return math.Inf(1)
	}
	return (v - targetV) / c.ADcc
}

func (c ConstantAcceleration) AccelerateStep(v, targetV, dt float64) (float64, float64) {
	if c.AAcc <= 0 || v >= targetV {
		return targetV * dt, targetV
	}
	tToTarget := (targetV - v) / c.AAcc
	if tToTarget <= dt {
		// Reaches targetV mid-step: accelerate, then hold for the remainder.
		s1 := v*tToTarget + 0.5*c.AAcc*tToTarget*tToTarget
		s2 := targetV * (dt - tToTarget)
		return s1 + s2, targetV
	}
	return v*dt + 0.5*c.AAcc*dt*dt, v + c.AAcc*dt
}

func (c ConstantAcceleration) DecelerateStep(v, targetV, dt float64) (float64, float64) {
	if c.ADcc <= 0 || v <= targetV {
		return targetV * dt, targetV
	}
	tToTarget := (v - targetV) / c.ADcc
	if tToTarget <= dt {
		// Reaches targetV mid-step: brake, then hold for the remainder.
		s1 := v*tToTarget - 0.5*c.ADcc*tToTarget*tToTarget
		s2 := targetV * (dt - tToTarget)
		return math.Max(0, s1) + s2, targetV
	}
	return math.Max(0, v*dt-0.5*c.ADcc*dt*dt), v - c.ADcc*dt
}
