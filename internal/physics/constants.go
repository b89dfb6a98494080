package physics

import "math"

const (
	// GravitationalConstant in km Msun^-1 (km/s)^2.
	GravitationalConstant = 4.3e-3 * 3.1e13
	// SpeedOfLight in km/s.
	SpeedOfLight = 3e5

	twoPi = 2 * math.Pi
)

// ChirpMass returns (m1 m2)^(3/5) / (m1+m2)^(1/5).
func ChirpMass(m1, m2 float64) float64 {
	return math.Pow(m1*m2, 3.0/5) / math.Pow(m1+m2, 1.0/5)
}

// chirpCoefficient is (8π)^(8/3)/5 · (G Mc/c³)^(5/3).
func chirpCoefficient(mc float64) float64 {
	c3 := SpeedOfLight * SpeedOfLight * SpeedOfLight
	return math.Pow(8*math.Pi, 8.0/3) / 5 * math.Pow(GravitationalConstant*mc/c3, 5.0/3)
}

// CoalescenceTime returns the model time until the separation formally
// reaches zero, starting from orbital angular frequency omega0.
func CoalescenceTime(mc, omega0 float64) float64 {
	c3 := SpeedOfLight * SpeedOfLight * SpeedOfLight
	return math.Pow(2*omega0, -8.0/3) *
		(5 / math.Pow(8*math.Pi, 8.0/3)) *
		math.Pow(c3/(GravitationalConstant*mc), 5.0/3)
}

// ChirpOmega evaluates the leading-order frequency law at elapsed time t.
// The result is NaN once t passes tc and +Inf at t == tc.
func ChirpOmega(mc, tc, t float64) float64 {
	return 0.5 * math.Pow(chirpCoefficient(mc)*(tc-t), -3.0/8)
}

// KeplerRadius returns the separation of a circular orbit of total mass m
// at angular frequency omega.
func KeplerRadius(m, omega float64) float64 {
	return math.Cbrt(GravitationalConstant * m / (omega * omega))
}

// MergerSeparation is twice the Schwarzschild radius of the combined mass.
func MergerSeparation(m1, m2 float64) float64 {
	return 2 * GravitationalConstant / (SpeedOfLight * SpeedOfLight) * (m1 + m2)
}

// MergerOmega is the Keplerian angular frequency at [MergerSeparation].
func MergerOmega(m1, m2 float64) float64 {
	r := MergerSeparation(m1, m2)
	return math.Sqrt(GravitationalConstant * (m1 + m2) / (r * r * r))
}
