package audio

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/mjibson/go-dsp/fft"
)

const (
	SampleRate = 44100
	BufferSize = 1024
	maxVoices  = 24
)

// voice is one struck tone: a decaying sine spawned by a collision.
type voice struct {
	freq, phase, amp float64
}

// Processor sonifies a running simulation. A low pad breathes under
// everything, its filter opening with total energy, and every collision
// impulse strikes a short tone whose pitch tracks the impulse strength.
type Processor struct {
	Stream *portaudio.Stream

	// Output analysis for the HUD level meter
	ComplexBuffer   []complex128
	Bass, Mid, High float64

	// Synthesis
	Time        float64
	FilterState [2]float64   // Stereo LPF state
	DelayLine   [2][]float64 // Stereo Delay Buffer (Reverb-ish)
	DelayHead   int
	voices      []voice

	// Simulation Inputs
	mu           sync.Mutex
	TotalEnergy  float64
	EnergySmooth float64 // For slow morphing
	pending      []voice

	Active bool
}

func NewProcessor() *Processor {
	// 0.6 second delay for larger space
	delayLen := int(float64(SampleRate) * 0.6)

	return &Processor{
		ComplexBuffer: make([]complex128, BufferSize),
		DelayLine:     [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (a *Processor) Start() error {
	portaudio.Initialize()

	// Output Only (0 In, 2 Out). Duplex often fails on Linux if devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		return fmt.Errorf("audio: start stream: %w", err)
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
}

// UpdatePhysics hands the current total energy to the audio thread.
func (a *Processor) UpdatePhysics(energy float64) {
	a.mu.Lock()
	a.TotalEnergy = energy
	a.mu.Unlock()
}

// Pulse queues a struck tone for a collision of the given impulse
// strength, measured as the speed change of the faster body.
func (a *Processor) Pulse(intensity float64) {
	if intensity <= 0 {
		return
	}
	capped := math.Min(intensity, 16)
	v := voice{
		freq: 240 + 55*capped,
		amp:  math.Min(0.2+0.05*capped, 0.7),
	}
	a.mu.Lock()
	if len(a.pending) < maxVoices {
		a.pending = append(a.pending, v)
	}
	a.mu.Unlock()
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (a *Processor) ProcessAudio(in []float32, out [][]float32) {
	// Pad harmony: G2, D3, G3
	freqs := []float64{98.00, 146.83, 196.00}

	a.mu.Lock()
	targetEnergy := a.TotalEnergy
	a.voices = append(a.voices, a.pending...)
	a.pending = a.pending[:0]
	a.mu.Unlock()
	if len(a.voices) > maxVoices {
		a.voices = a.voices[len(a.voices)-maxVoices:]
	}

	// Slow Morphing of Energy to prevent jumps
	a.EnergySmooth = a.EnergySmooth*0.995 + targetEnergy*0.005

	// Dynamic Cutoff: Energy opens the filter. Base 260Hz -> Max 2000Hz
	cutoff := 260.0 + math.Min(a.EnergySmooth*8.0, 1740.0)
	dt := 1.0 / float64(SampleRate)

	// A struck tone rings for about 150ms
	strikeDecay := math.Exp(-1.0 / (0.15 * SampleRate))

	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		sampleL := 0.0
		sampleR := 0.0

		for j, f := range freqs {
			// Slight Detune between channels
			oscL := triangle(a.Time * (f * 0.999))
			oscR := triangle(a.Time * (f * 1.001))

			g := 1.0 / float64(len(freqs))

			// Very Slow LFO (Breathing)
			lfo := math.Sin(a.Time*0.2 + float64(j))

			sampleL += oscL * g * (0.7 + 0.3*lfo)
			sampleR += oscR * g * (0.7 + 0.3*lfo)
		}

		// Collision strikes, centered in the stereo field
		strike := 0.0
		for k := range a.voices {
			v := &a.voices[k]
			strike += math.Sin(2*math.Pi*v.phase) * v.amp
			v.phase += v.freq * dt
			v.amp *= strikeDecay
		}
		sampleL += strike
		sampleR += strike

		// Filter (Smoothes triangles into pure sine-ish tones)
		var outL, outR float64
		outL, a.FilterState[0] = lpf(sampleL, cutoff, dt, a.FilterState[0])
		outR, a.FilterState[1] = lpf(sampleR, cutoff, dt, a.FilterState[1])

		// Delay/Reverb with Feedback Cross-Talk (Ping Pong)
		delayL := a.DelayLine[0][a.DelayHead]
		delayR := a.DelayLine[1][a.DelayHead]

		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		a.DelayLine[0][a.DelayHead] = mixL * 0.7
		a.DelayLine[1][a.DelayHead] = mixR * 0.7

		a.DelayHead = (a.DelayHead + 1) % len(a.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		a.Time += dt
	}

	// Drop silent voices
	live := a.voices[:0]
	for _, v := range a.voices {
		if v.amp > 1e-4 {
			live = append(live, v)
		}
	}
	a.voices = live

	a.analyze(out)
}

// analyze buckets the rendered output into bass/mid/high levels for the
// HUD meter.
func (a *Processor) analyze(out [][]float32) {
	n := len(out[0])
	if n > BufferSize {
		n = BufferSize
	}
	for i := 0; i < BufferSize; i++ {
		if i >= n {
			a.ComplexBuffer[i] = 0
			continue
		}
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(BufferSize-1)))
		mono := float64(out[0][i]+out[1][i]) / 2
		a.ComplexBuffer[i] = complex(mono*window, 0)
	}
	spectrum := fft.FFT(a.ComplexBuffer)

	bassSum, midSum, highSum := 0.0, 0.0, 0.0
	for i := 0; i < BufferSize/2; i++ {
		mag := cmplx.Abs(spectrum[i])
		if i < 5 {
			bassSum += mag
		} else if i < 46 {
			midSum += mag
		} else {
			highSum += mag
		}
	}

	a.Bass = a.Bass*0.9 + math.Min(bassSum/40.0, 1.0)*0.1
	a.Mid = a.Mid*0.9 + math.Min(midSum/60.0, 1.0)*0.1
	a.High = a.High*0.9 + math.Min(highSum/80.0, 1.0)*0.1
}
