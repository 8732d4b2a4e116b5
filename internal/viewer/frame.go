package viewer

import "time"

// FrameStats tracks frame timing. The reported rate is averaged over the
// frames completed in the last full window.
type FrameStats struct {
	Window time.Duration

	frames   int
	elapsed  time.Duration
	fps      float64
	frameDur time.Duration
}

// NewFrameStats averages over one-second windows.
func NewFrameStats() *FrameStats {
	return &FrameStats{Window: time.Second}
}

// Tick records one frame of length dt and reports whether a new average
// became available.
func (f *FrameStats) Tick(dt time.Duration) bool {
	f.frames++
	f.elapsed += dt
	if f.elapsed < f.Window {
		return false
	}
	f.fps = float64(f.frames) / f.elapsed.Seconds()
	f.frameDur = f.elapsed / time.Duration(f.frames)
	f.frames = 0
	f.elapsed = 0
	return true
}

// FPS returns the last averaged frame rate.
func (f *FrameStats) FPS() float64 { return f.fps }

// FrameTime returns the last averaged frame duration.
func (f *FrameStats) FrameTime() time.Duration { return f.frameDur }

// Milliseconds returns the averaged frame duration in milliseconds.
func (f *FrameStats) Milliseconds() float64 {
	return float64(f.frameDur) / float64(time.Millisecond)
}
