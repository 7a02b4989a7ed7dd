package analysis

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is a one-sided magnitude spectrum of a uniformly sampled
// series.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// Peak is a local spectral maximum.
type Peak struct {
	Freq  float64
	Power float64
}

// PowerSpectrum computes the one-sided magnitude spectrum of a series
// sampled at rate samples per second. The input is Hann-windowed and
// truncated to the largest power-of-two length.
func PowerSpectrum(series []float64, rate float64) *Spectrum {
	n := 1
	for n*2 <= len(series) {
		n *= 2
	}
	if n < 4 {
		return &Spectrum{}
	}

	buf := make([]float64, n)
	for i := 0; i < n; i++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = series[i] * w
	}

	sp := fft.FFTReal(buf)

	out := &Spectrum{
		Freqs: make([]float64, n/2),
		Power: make([]float64, n/2),
	}
	for k := 0; k < n/2; k++ {
		out.Freqs[k] = float64(k) * rate / float64(n)
		out.Power[k] = cmplx.Abs(sp[k])
	}
	return out
}

// Peaks returns up to count local maxima, strongest first. The zero
// bin never qualifies, so a constant offset does not mask real peaks.
func (s *Spectrum) Peaks(count int) []Peak {
	peaks := make([]Peak, 0)
	for k := 1; k+1 < len(s.Power); k++ {
		if s.Power[k] > s.Power[k-1] && s.Power[k] >= s.Power[k+1] {
			peaks = append(peaks, Peak{Freq: s.Freqs[k], Power: s.Power[k]})
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].Power > peaks[j].Power })
	if len(peaks) > count {
		peaks = peaks[:count]
	}
	return peaks
}
