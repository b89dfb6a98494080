package chirp

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Match is the normalised overlap of a against b, maximised over a time
// shift and over the coalescence phase. The result lies in [0, 1] and is 1
// for identical waveforms.
func Match(a, b Waveform) float64 {
	m, _ := Overlap(a.Plus, a.Cross, b.Plus, b.Cross)
	return m
}

// Overlap correlates the complex signals a = aPlus + i·aCross and
// b = bPlus + i·bCross for every lag of a zero-padded buffer long enough to
// avoid wrap-around. The modulus of the correlation absorbs the phase. It
// returns the best overlap normalised by both energies and the lag, in
// samples, by which b has to be delayed to line up with a.
func Overlap(aPlus, aCross, bPlus, bCross []float64) (float64, int) {
	if len(aPlus) == 0 || len(bPlus) == 0 || len(aCross) != len(aPlus) || len(bCross) != len(bPlus) {
		return 0, 0
	}
	na := math.Sqrt(dot(aPlus, aPlus) + dot(aCross, aCross))
	nb := math.Sqrt(dot(bPlus, bPlus) + dot(bCross, bCross))
	if na == 0 || nb == 0 {
		return 0, 0
	}

	n := nextPow2(len(aPlus) + len(bPlus))
	A := fft.FFT(toComplex(aPlus, aCross, n))
	B := fft.FFT(toComplex(bPlus, bCross, n))
	prod := make([]complex128, n)
	for i := range prod {
		prod[i] = A[i] * cmplx.Conj(B[i])
	}
	corr := fft.IFFT(prod)

	best, lag := 0.0, 0
	for k, c := range corr {
		if m := cmplx.Abs(c); m > best {
			best, lag = m, k
		}
	}
	if lag > n/2 {
		lag -= n
	}

	m := best / (na * nb)
	return math.Min(1, math.Max(0, m)), lag
}

func toComplex(re, im []float64, n int) []complex128 {
	out := make([]complex128, n)
	for i := range re {
		out[i] = complex(re[i], im[i])
	}
	return out
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
