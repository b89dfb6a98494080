package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// DominantFrequency returns the frequency of the strongest spectral peak,
// refined by parabolic interpolation between neighbouring bins.
func DominantFrequency(samples []float64, rate int) float64 {
	if len(samples) < 4 || rate <= 0 {
		return 0
	}
	n := len(samples)
	windowed := make([]float64, n)
	for i, v := range samples {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = v * window
	}
	spectrum := fft.FFTReal(windowed)

	best, bestMag := 0, 0.0
	for k := 1; k < n/2; k++ {
		if m := cmplx.Abs(spectrum[k]); m > bestMag {
			best, bestMag = k, m
		}
	}
	if best == 0 {
		return 0
	}

	shift := 0.0
	if best+1 < n/2 {
		a := cmplx.Abs(spectrum[best-1])
		b := bestMag
		c := cmplx.Abs(spectrum[best+1])
		if d := a - 2*b + c; d != 0 {
			shift = 0.5 * (a - c) / d
		}
	}
	return (float64(best) + shift) * float64(rate) / float64(n)
}

// FreqShift moves every spectral component of a real signal up by shift Hz.
// Bins that would wrap around are zeroed. The result is complex: the real
// part is the shifted signal and the imaginary part its quadrature.
func FreqShift(samples []float64, shift float64, rate int) []complex128 {
	n := len(samples)
	if n == 0 || rate <= 0 {
		return nil
	}
	x := fft.FFTReal(samples)
	df := float64(rate) / float64(n)
	bins := int(shift / df)
	if bins < 0 {
		bins = 0
	}
	if bins > n {
		bins = n
	}

	y := make([]complex128, n)
	for i := range x {
		y[(i+bins)%n] = x[i]
	}
	for i := 0; i < bins; i++ {
		y[i] = 0
	}
	return fft.IFFT(y)
}

// Split returns the real and imaginary parts of z.
func Split(z []complex128) (re, im []float64) {
	re = make([]float64, len(z))
	im = make([]float64, len(z))
	for i, v := range z {
		re[i], im[i] = real(v), imag(v)
	}
	return re, im
}
