// Package kinematics defines the MotionModel interface describing how fast a vehicle can
// speed up, slow down and corner, along with built-in implementations.
//
// The speed profiler only talks to MotionModel, so a new traction or braking model needs
// an implementation here and a case in the JSON discriminator in DecodeModel.
package kinematics

// MotionModel is the physics contract every kinematics implementation must satisfy.
// Distances share the unit of the track samples; velocities are distance per second.
type MotionModel interface {
	// VMax returns the global top speed.
	VMax() float64

	// StraightSpeed returns the speed bound for a straight of the given length,
	// capped at VMax.
	StraightSpeed(length float64) float64

	// CorneringSpeed returns the centripetal speed bound for an arc of the given radius,
	// capped at VMax.
	CorneringSpeed(radius float64) float64

	// ReachableSpeed returns the speed reached by accelerating from v0 over dist.
	ReachableSpeed(v0, dist float64) float64

	// EntrySpeed returns the highest speed from which the vehicle can still brake to vEnd
	// within dist.
	EntrySpeed(vEnd, dist float64) float64

	// PeakSpeed returns the highest speed reachable on a stretch of length dist entered at
	// vStart and left at vEnd, capped at vTop. Below vTop the profile is triangular.
	PeakSpeed(vStart, vEnd, vTop, dist float64) float64

	// AccelerationDistance returns the distance needed to speed up from v to targetV.
	// Returns 0 if v ≥ targetV.
	AccelerationDistance(v, targetV float64) float64

	// BrakingDistanceTo returns the distance needed to decelerate from v to targetV.
	// Returns 0 if v ≤ targetV.
	BrakingDistanceTo(v, targetV float64) float64

	// AccelerationTime returns the time needed to speed up from v to targetV.
	AccelerationTime(v, targetV float64) float64

	// BrakingTimeTo returns the time needed to slow down from v to targetV.
	BrakingTimeTo(v, targetV float64) float64

	// AccelerateStep advances the vehicle toward targetV over dt seconds.
	// If targetV is reached before dt expires, the vehicle holds targetV for the
	// remainder of the step. Returns (distance travelled, new velocity).
	AccelerateStep(v, targetV, dt float64) (dist, newV float64)

	// DecelerateStep brakes the vehicle toward targetV (≥ 0) over dt seconds.
	// If targetV is reached before dt expires, the vehicle holds targetV for the
	// remainder. Returns (distance travelled, new velocity).
	DecelerateStep(v, targetV, dt float64) (dist, newV float64)
}
