package stage

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	sampleRate   = 44100
	channelCount = 2
	sampleFormat = oto.FormatFloat32LE
	cueVolume    = 0.35
)

type cueKind int

const (
	cueOpen cueKind = iota
	cueClose
	cueHover
)

// cues plays short synthesized UI sounds. A nil *cues is silent.
type cues struct {
	ctx   *oto.Context
	ready chan struct{}
	bank  map[cueKind][]byte
}

func newCues() (*cues, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, sampleFormat)
	if err != nil {
		return nil, err
	}
	return &cues{
		ctx:   ctx,
		ready: ready,
		bank: map[cueKind][]byte{
			cueOpen:  genSweep(220, 660, 0.28),
			cueClose: genSweep(660, 220, 0.22),
			cueHover: genTick(),
		},
	}, nil
}

func (c *cues) play(kind cueKind) {
	if c == nil {
		return
	}
	select {
	case <-c.ready:
	default:
		return
	}
	samples := c.bank[kind]
	if len(samples) == 0 {
		return
	}
	go func() {
		player := c.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(cueVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// genSweep is an FM glide from f0 to f1 over dur seconds.
func genSweep(f0, f1, dur float64) []byte {
	n := int(dur * sampleRate)
	buf := makeBuf(n)
	phase := 0.0
	for i := range n {
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.3, 0.5, 0.4)
		freq := f0 + (f1-f0)*p*p
		phase += 2 * math.Pi * freq / sampleRate
		s := math.Sin(phase+0.8*env*math.Sin(phase*1.5)) * env * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

func genTick() []byte {
	n := sampleRate * 40 / 1000
	buf := makeBuf(n)
	for i := range n {
		t := float64(i) / sampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.5, 0.0, 0.1)
		s := fm(t, 1800-600*p, 1.0, 0.4) * env * 0.2
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := range channelCount {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns the envelope at normalized progress; attack, decay and
// release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }
