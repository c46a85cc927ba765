package state

import (
	"math"
	"time"
)

// PlaybackState moves a playhead over the discrete steps of a schedule.
// CurrentTime is fractional between steps so motion can be interpolated.
type PlaybackState struct {
	CurrentTime float64 // in steps
	MaxTime     float64 // schedule makespan
	Speed       float64 // steps per second
	Playing     bool
	lastUpdate  time.Time
}

// NewPlaybackState creates a paused playhead at t=0.
func NewPlaybackState(makespan int) *PlaybackState {
	return &PlaybackState{
		MaxTime:    float64(makespan),
		Speed:      2,
		lastUpdate: time.Now(),
	}
}

// Step returns the last whole step reached.
func (p *PlaybackState) Step() int {
	return int(math.Floor(p.CurrentTime))
}

// TogglePlay starts or pauses; playing at the end restarts from t=0.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Pause stops playback.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to t=0 and pauses.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves the playhead by the wall time since the last call.
func (p *PlaybackState) Advance() {
	now := time.Now()
	elapsed := now.Sub(p.lastUpdate)
	p.lastUpdate = now
	p.AdvanceBy(elapsed)
}

// AdvanceBy moves the playhead by elapsed wall time and stops at the end.
func (p *PlaybackState) AdvanceBy(elapsed time.Duration) {
	if !p.Playing {
		return
	}
	p.CurrentTime += elapsed.Seconds() * p.Speed
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime moves the playhead, clamped to [0, MaxTime].
func (p *PlaybackState) SetTime(t float64) {
	p.CurrentTime = math.Max(0, math.Min(t, p.MaxTime))
}

// StepForward pauses and jumps to the next whole step.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetTime(math.Floor(p.CurrentTime) + 1)
}

// StepBack pauses and jumps to the previous whole step.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetTime(math.Ceil(p.CurrentTime) - 1)
}

// SetSpeed sets steps per second, clamped to [0.25, 20].
func (p *PlaybackState) SetSpeed(speed float64) {
	p.Speed = math.Max(0.25, math.Min(speed, 20))
}

// Progress returns the playhead position as 0-1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
