package frame

import "go.uber.org/zap"

// sampleWindow is how much frame time is averaged into one FPS reading.
const sampleWindow = 1.0 // seconds

// Stats holds frame counters. FPS is refreshed once per sample window.
type Stats struct {
	Frames uint64
	FPS    float64

	windowFrames int
	windowTime   float64
}

// Stats returns a copy of the frame counters.
func (o *Orchestrator) Stats() Stats {
	return o.stats
}

func (o *Orchestrator) sample(dt float64) {
	s := &o.stats
	s.Frames++
	s.windowFrames++
	s.windowTime += dt
	if s.windowTime < sampleWindow {
		return
	}
	s.FPS = float64(s.windowFrames) / s.windowTime
	s.windowFrames = 0
	s.windowTime = 0
	o.log.Debug("frame rate", zap.Float64("fps", s.FPS), zap.Uint64("frames", s.Frames))
}
