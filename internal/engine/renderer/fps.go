package renderer

import "time"

// FPSCounter counts frames over one-second windows.
type FPSCounter struct {
	frames int
	start  time.Time
}

// Tick records a frame. Once a second has passed since the window opened it
// returns the frame count of that window and starts a new one.
func (c *FPSCounter) Tick(now time.Time) (int, bool) {
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	if now.Sub(c.start) < time.Second {
		return 0, false
	}
	fps := c.frames
	c.frames = 0
	c.start = now
	return fps, true
}
