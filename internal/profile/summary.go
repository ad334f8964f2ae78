package profile

import "gonum.org/v1/gonum/floats"

// Summary condenses a profile into a few headline numbers.
type Summary struct {
	Segments  int     `json:"segments"`
	Samples   int     `json:"samples"`
	Distance  float64 `json:"distance"`   // planned path length
	Duration  float64 `json:"duration"`   // time of the last sample
	Analytic  float64 `json:"analytic"`   // sum of analytic segment durations
	Residual  float64 `json:"residual"`   // Duration drift accumulated by sampling
	PeakSpeed float64 `json:"peak_speed"` // highest sampled velocity
	MeanSpeed float64 `json:"mean_speed"` // arithmetic mean of sampled velocities
}

// Summarize computes the Summary of p.
func (p *Profile) Summarize() Summary {
	s := Summary{Segments: len(p.Segments), Samples: len(p.Samples)}
	if len(p.Samples) == 0 {
		return s
	}
	vel := p.Velocities()
	s.PeakSpeed = floats.Max(vel)
	s.MeanSpeed = floats.Sum(vel) / float64(len(vel))
	s.Duration = p.Samples[len(p.Samples)-1].Time
	for _, sp := range p.Segments {
		s.Distance += sp.Length
		s.Analytic += sp.Duration
		s.Residual += sp.Residual
	}
	return s
}

// Velocities returns the sampled velocities in order.
func (p *Profile) Velocities() []float64 {
	v := make([]float64, len(p.Samples))
	for i, smp := range p.Samples {
		v[i] = smp.Velocity
	}
	return v
}

// Times returns the sample times in order.
func (p *Profile) Times() []float64 {
	t := make([]float64, len(p.Samples))
	for i, smp := range p.Samples {
		t[i] = smp.Time
	}
	return t
}
