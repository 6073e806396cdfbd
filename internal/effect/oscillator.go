package effect

// Oscillator ping-pongs a progress value across [0,1] at a fixed rate.
type Oscillator struct {
	Progress float64
	Dir      float64 // +1 rising, -1 falling
	Speed    float64
}

func NewOscillator(speed float64) Oscillator {
	return Oscillator{Dir: 1, Speed: speed}
}

// Step advances one frame and reverses direction at either bound.
func (o *Oscillator) Step() float64 {
	if o.Dir == 0 {
		o.Dir = 1
	}
	o.Progress += o.Speed * o.Dir
	if o.Progress >= 1 {
		o.Progress = 1
		o.Dir = -1
	} else if o.Progress <= 0 {
		o.Progress = 0
		o.Dir = 1
	}
	return o.Progress
}

// Eased is the half-cosine shaped value fed to the column shader.
func (o *Oscillator) Eased() float64 {
	return EaseInOutSine(clampF(o.Progress, 0, 1))
}

func (o *Oscillator) Reset() {
	o.Progress = 0
	o.Dir = 1
}
