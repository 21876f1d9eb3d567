// Package diagnostics measures frame timing and shows it on screen.
package diagnostics

// DefaultHistory is the number of measurements each diagnostic keeps.
const DefaultHistory = 20

// Diagnostic keeps a bounded history of one measurement and an exponential
// moving average over it.
type Diagnostic struct {
	Name   string
	Suffix string

	history []float64 // ring buffer
	next    int
	full    bool
	sum     float64

	smoothing float64
	ema       float64
	hasValue  bool
	last      float64
}

func NewDiagnostic(name, suffix string, maxHistory int) *Diagnostic {
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &Diagnostic{
		Name:      name,
		Suffix:    suffix,
		history:   make([]float64, 0, maxHistory),
		smoothing: 2 / float64(maxHistory+1),
	}
}

func (d *Diagnostic) Add(value float64) {
	if len(d.history) < cap(d.history) {
		d.history = append(d.history, value)
	} else {
		d.sum -= d.history[d.next]
		d.history[d.next] = value
		d.full = true
	}
	d.next = (d.next + 1) % cap(d.history)
	d.sum += value

	if d.hasValue {
		d.ema += d.smoothing * (value - d.ema)
	} else {
		d.ema = value
	}
	d.last = value
	d.hasValue = true
}

// Value returns the latest measurement.
func (d *Diagnostic) Value() (float64, bool) {
	return d.last, d.hasValue
}

// Smoothed returns the exponential moving average.
func (d *Diagnostic) Smoothed() (float64, bool) {
	return d.ema, d.hasValue
}

// Average returns the mean of the kept history.
func (d *Diagnostic) Average() (float64, bool) {
	if len(d.history) == 0 {
		return 0, false
	}
	return d.sum / float64(len(d.history)), true
}

// History returns the kept measurements, oldest first.
func (d *Diagnostic) History() []float64 {
	out := make([]float64, 0, len(d.history))
	if d.full {
		out = append(out, d.history[d.next:]...)
		out = append(out, d.history[:d.next]...)
		return out
	}
	return append(out, d.history...)
}

// FrameTime tracks frames per second, frame duration and frame count.
type FrameTime struct {
	FPS        *Diagnostic
	FrameTime  *Diagnostic // milliseconds
	FrameCount uint64
}

func NewFrameTime(maxHistory int) *FrameTime {
	return &FrameTime{
		FPS:       NewDiagnostic("fps", "fps", maxHistory),
		FrameTime: NewDiagnostic("frame_time", "ms/frame", maxHistory),
	}
}

// Update records one frame that took delta seconds. Frames with no elapsed
// time count but are not measured.
func (f *FrameTime) Update(delta float32) {
	f.FrameCount++
	if delta <= 0 {
		return
	}
	f.FPS.Add(1 / float64(delta))
	f.FrameTime.Add(float64(delta) * 1000)
}
